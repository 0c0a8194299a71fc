package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/mahjong-scorebook/models"
	"github.com/Dosada05/mahjong-scorebook/services"
)

const dateLayout = "2006-01-02"

type SessionHandler struct {
	sessionService services.SessionService
	userService    services.UserService
}

func NewSessionHandler(ss services.SessionService, us services.UserService) *SessionHandler {
	return &SessionHandler{
		sessionService: ss,
		userService:    us,
	}
}

// saveSessionRequest - тело POST/PUT /sessions. Дата в формате YYYY-MM-DD.
type saveSessionRequest struct {
	Date     string           `json:"date"`
	Mode     models.GameMode  `json:"mode"`
	Settings *models.Settings `json:"settings,omitempty"`
	Memo     *string          `json:"memo,omitempty"`
	Rounds   []models.Round   `json:"rounds"`
}

func (req saveSessionRequest) toInput(id int) (services.SaveSessionInput, error) {
	input := services.SaveSessionInput{
		ID:       id,
		Mode:     req.Mode,
		Settings: req.Settings,
		Memo:     req.Memo,
		Rounds:   req.Rounds,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return input, fmt.Errorf("date must be in %s format", dateLayout)
		}
		input.Date = date
	}
	return input, nil
}

// CreateSession godoc
// @Summary Сохранить новую сессию
// @Tags sessions
// @Description Проверяет сессию, удаляет пустые ханчаны, расставляет бонусы и сохраняет сводку основного пользователя.
// @Accept json
// @Produce json
// @Param input body saveSessionRequest true "Сессия"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string "Сессия не прошла проверку"
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	h.saveSession(w, r, 0, http.StatusCreated)
}

// UpdateSession godoc
// @Summary Перезаписать сессию
// @Tags sessions
// @Accept json
// @Produce json
// @Param sessionID path int true "Session ID"
// @Param input body saveSessionRequest true "Сессия"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{sessionID} [put]
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.saveSession(w, r, sessionID, http.StatusOK)
}

func (h *SessionHandler) saveSession(w http.ResponseWriter, r *http.Request, sessionID int, status int) {
	var req saveSessionRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input, err := req.toInput(sessionID)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	mainUser, err := h.userService.GetMainUser(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	session, err := h.sessionService.SaveSessionWithSummary(r.Context(), input, mainUser.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, status, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSession godoc
// @Summary Сессия с итогами игроков
// @Tags sessions
// @Produce json
// @Param sessionID path int true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /sessions/{sessionID} [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	details, err := h.sessionService.GetSession(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": details}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSessions godoc
// @Summary Список сессий, новые первыми
// @Tags sessions
// @Produce json
// @Param period query string false "this-month | this-year | year-YYYY | all-time"
// @Param mode query string false "three-player | four-player | all"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /sessions [get]
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sessions, err := h.sessionService.ListSessions(r.Context(), services.ListSessionsFilter{
		Period: q.Get("period"),
		Mode:   q.Get("mode"),
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"sessions": sessions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResolveRound godoc
// @Summary Пересчитать черновик ханчана
// @Tags rounds
// @Description Автосчёт последнего игрока, бонусные отметки и места. Ничего не сохраняет.
// @Accept json
// @Produce json
// @Param input body services.ResolveRoundInput true "Ханчан"
// @Success 200 {object} services.ResolveRoundResult
// @Failure 422 {object} map[string]string
// @Router /rounds/resolve [post]
func (h *SessionHandler) ResolveRound(w http.ResponseWriter, r *http.Request) {
	var input services.ResolveRoundInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.sessionService.ResolveRound(input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
