package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/mahjong-scorebook/docs"
	"github.com/Dosada05/mahjong-scorebook/handlers"
	"github.com/Dosada05/mahjong-scorebook/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	logger *slog.Logger,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	settingsHandler *handlers.SettingsHandler,
	statisticsHandler *handlers.StatisticsHandler,
	exportHandler *handlers.ExportHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Route("/{userID}", func(r chi.Router) {
			r.Patch("/", userHandler.RenameUser)
			r.Delete("/", userHandler.DeleteUser)
			r.Post("/archive", userHandler.ArchiveUser)
			r.Post("/unarchive", userHandler.UnarchiveUser)
		})
	})

	router.Route("/sessions", func(r chi.Router) {
		r.Get("/", sessionHandler.ListSessions)
		r.Post("/", sessionHandler.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", sessionHandler.GetSession)
			r.Put("/", sessionHandler.UpdateSession)
			r.Delete("/", sessionHandler.DeleteSession)
		})
	})

	router.Post("/rounds/resolve", sessionHandler.ResolveRound)

	router.Route("/settings", func(r chi.Router) {
		r.Get("/", settingsHandler.GetSettings)
		r.Put("/", settingsHandler.UpdateSettings)
	})

	router.Route("/statistics", func(r chi.Router) {
		r.Get("/users/{userID}", statisticsHandler.GetPlayerStatistics)
		r.Get("/ranking", statisticsHandler.GetRanking)
		r.Get("/years", statisticsHandler.GetAvailableYears)
	})

	router.Post("/exports", exportHandler.CreateExport)
	router.Get("/dashboard", dashboardHandler.Stats)

	router.Get("/ws", webSocketHandler.ServeWs)
}
