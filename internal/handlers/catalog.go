package handlers

import (
	"log"
	"net/http"

	"github.com/samber/lo"

	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/quiz"
)

// WineryListResponse represents the catalog winery list
type WineryListResponse struct {
	Wineries []models.Winery `json:"wineries"`
	Total    int             `json:"total"`
}

// HandleHealthCheck handles GET /api/v1/health
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "connected"

	if err := h.DB.HealthCheck(r.Context()); err != nil {
		log.Printf("[ERROR] Health check failed: %v", err)
		status = "degraded"
		dbStatus = "error"
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"version":  "1.0.0",
		"database": dbStatus,
		"sessions": h.Sessions.Len(),
	})
}

// HandleQuizQuestions handles GET /api/v1/quiz/questions
func (h *Handler) HandleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	questions := quiz.Questions()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
	})
}

// HandleListWineries handles GET /api/v1/catalog/wineries
func (h *Handler) HandleListWineries(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")

	wineries := h.Catalog.Wineries
	if region != "" {
		wineries = lo.Filter(wineries, func(w models.Winery, _ int) bool {
			return w.Region == region
		})
	}

	log.Printf("[HTTP] Listed wineries: region=%q count=%d", region, len(wineries))
	h.writeJSON(w, http.StatusOK, WineryListResponse{
		Wineries: wineries,
		Total:    len(wineries),
	})
}

// HandleGetWinery handles GET /api/v1/catalog/wineries/{wineryID}
func (h *Handler) HandleGetWinery(w http.ResponseWriter, r *http.Request) {
	id, err := parseWineryID(r.PathValue("wineryID"))
	if err != nil {
		h.handleValidationError(w, err.Error())
		return
	}

	winery, err := h.Catalog.Winery(id)
	if h.checkNotFound(err) {
		h.handleNotFound(w, "Winery not found")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, winery)
}

// HandleListRegions handles GET /api/v1/catalog/regions
func (h *Handler) HandleListRegions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"regions": h.Catalog.Regions,
		"total":   len(h.Catalog.Regions),
	})
}
