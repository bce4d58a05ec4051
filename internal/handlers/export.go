package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"wine-trip-planner/internal/export"
	"wine-trip-planner/internal/profile"
)

// HandleExport handles GET /api/v1/sessions/{id}/export?format=json|markdown|html|xlsx
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Get(r.PathValue("id"))
	if session == nil {
		h.handleNotFound(w, "Session not found")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatMarkdown
	}

	now := h.now()
	var (
		body     []byte
		filename = export.ItineraryFilename(now, format)
		err      error
	)

	switch format {
	case export.FormatJSON:
		p := profile.LoadOrDefault(r.Context(), h.DB.Profiles(), session.ProfileID, now)
		p.Preferences = session.Answers
		body, err = export.ProfileJSON(p, session.Itinerary, now)
		filename = export.ProfileFilename(now)
	case export.FormatMarkdown:
		body, err = export.ItineraryMarkdown(session.Itinerary, now)
	case export.FormatHTML:
		body, err = export.ItineraryHTML(session.Itinerary, now)
	case export.FormatXLSX:
		var buf bytes.Buffer
		err = export.ItineraryXLSX(session.Itinerary, h.Estimator, &buf)
		body = buf.Bytes()
	default:
		h.handleValidationError(w, fmt.Sprintf("Unsupported export format %q", format))
		return
	}

	if errors.Is(err, export.ErrEmptyItinerary) {
		h.writeError(w, http.StatusUnprocessableEntity, CodeEmptyItinerary, "No itinerary to export. Create one first!", nil)
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] Exported session: id=%s format=%s bytes=%d", session.ID, format, len(body))
	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
