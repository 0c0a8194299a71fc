package handlers

import (
	"net/http"

	"github.com/Dosada05/mahjong-scorebook/services"
)

type StatisticsHandler struct {
	statisticsService services.StatisticsService
}

func NewStatisticsHandler(ss services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: ss,
	}
}

func statisticsQuery(r *http.Request) services.StatisticsQuery {
	q := r.URL.Query()
	return services.StatisticsQuery{
		Period: q.Get("period"),
		Mode:   q.Get("mode"),
		Sample: q.Get("sample"),
	}
}

// GetPlayerStatistics godoc
// @Summary Статистика игрока
// @Tags statistics
// @Produce json
// @Param userID path int true "User ID"
// @Param period query string false "this-month | this-year | year-YYYY | all-time"
// @Param mode query string false "three-player | four-player | all"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /statistics/users/{userID} [get]
func (h *StatisticsHandler) GetPlayerStatistics(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.statisticsService.GetPlayerStatistics(r.Context(), userID, statisticsQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"statistics": stats}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRanking godoc
// @Summary Рейтинг пользователей по метрикам
// @Tags statistics
// @Produce json
// @Param period query string false "this-month | this-year | year-YYYY | all-time"
// @Param mode query string false "three-player | four-player | all"
// @Param sample query string false "last-5 | last-10 | all"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /statistics/ranking [get]
func (h *StatisticsHandler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.statisticsService.GetRanking(r.Context(), statisticsQuery(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": ranking}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatisticsHandler) GetAvailableYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.statisticsService.AvailableYears(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"years": years}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
