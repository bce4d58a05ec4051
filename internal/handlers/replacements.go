package handlers

import (
	"errors"
	"log"
	"net/http"

	"wine-trip-planner/internal/replacement"
)

var errNoItinerary = errors.New("no itinerary has been generated for this session")

// ReplacementResponse reports the replacement flow of a session
type ReplacementResponse struct {
	SessionID   string           `json:"session_id"`
	Replacement replacement.View `json:"replacement"`
}

// HandleBeginReplacement handles POST /api/v1/sessions/{id}/replacements
func (h *Handler) HandleBeginReplacement(w http.ResponseWriter, r *http.Request) {
	var target replacement.Target
	if err := decodeJSON(r, &target); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	session, err := h.Sessions.Update(r.PathValue("id"), func(s *TripSession) error {
		if s.Itinerary == nil {
			return errNoItinerary
		}
		if err := replacement.Validate(s.Itinerary, target); err != nil {
			return err
		}
		candidates := replacement.Candidates(h.Catalog.Wineries, s.Answers, s.Itinerary, target.CurrentID)
		s.Replacement.Begin(target, candidates)
		return nil
	})
	if err != nil {
		h.handleReplacementError(w, err)
		return
	}

	view := session.Replacement.View()
	log.Printf("[REPLACE] Offered candidates: session=%s day=%d slot=%d current=%d count=%d",
		session.ID, target.Day, target.Slot, target.CurrentID, len(view.Candidates))
	h.writeJSON(w, http.StatusOK, ReplacementResponse{SessionID: session.ID, Replacement: view})
}

// HandleSelectReplacement handles POST /api/v1/sessions/{id}/replacements/select
func (h *Handler) HandleSelectReplacement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WineryID int64 `json:"winery_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	session, err := h.Sessions.Update(r.PathValue("id"), func(s *TripSession) error {
		_, err := s.Replacement.Select(req.WineryID)
		return err
	})
	if err != nil {
		h.handleReplacementError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ReplacementResponse{SessionID: session.ID, Replacement: session.Replacement.View()})
}

// HandleConfirmReplacement handles POST /api/v1/sessions/{id}/replacements/confirm
func (h *Handler) HandleConfirmReplacement(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.Update(r.PathValue("id"), func(s *TripSession) error {
		if s.Itinerary == nil {
			return errNoItinerary
		}
		updated, err := s.Replacement.Confirm(s.Itinerary)
		if err != nil {
			return err
		}
		s.Itinerary = updated
		return nil
	})
	if err != nil {
		h.handleReplacementError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, h.newItineraryResponse(session))
}

// HandleCancelReplacement handles POST /api/v1/sessions/{id}/replacements/cancel
func (h *Handler) HandleCancelReplacement(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.Update(r.PathValue("id"), func(s *TripSession) error {
		return s.Replacement.Cancel()
	})
	if err != nil {
		h.handleReplacementError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ReplacementResponse{SessionID: session.ID, Replacement: session.Replacement.View()})
}

// handleReplacementError maps replacement failures onto the error envelope
func (h *Handler) handleReplacementError(w http.ResponseWriter, err error) {
	var conflict *replacement.ConflictError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.handleNotFound(w, "Session not found")
	case errors.Is(err, errNoItinerary):
		h.handleNotFound(w, err.Error())
	case errors.As(err, &conflict):
		h.writeError(w, http.StatusConflict, CodeReplacementConflict, conflict.Error(), map[string]interface{}{
			"winery_id": conflict.WineryID,
			"day":       conflict.Day,
			"slot":      conflict.Slot,
		})
	case errors.Is(err, replacement.ErrSlotOutOfRange),
		errors.Is(err, replacement.ErrSlotMismatch),
		errors.Is(err, replacement.ErrNotACandidate),
		errors.Is(err, replacement.ErrInvalidTransition):
		h.handleValidationError(w, err.Error())
	default:
		h.handleInternalError(w, err)
	}
}
