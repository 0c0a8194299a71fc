package handlers

import (
	"net/http"

	"github.com/Dosada05/mahjong-scorebook/services"
)

type ExportHandler struct {
	exportService services.ExportService
}

func NewExportHandler(es services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: es,
	}
}

type exportRequest struct {
	Format services.ExportFormat `json:"format"`
}

// CreateExport godoc
// @Summary Выгрузить все сессии в хранилище
// @Tags exports
// @Accept json
// @Produce json
// @Param input body exportRequest true "json | csv"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Router /exports [post]
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.exportService.Export(r.Context(), req.Format)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
