package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/profile"
	"wine-trip-planner/internal/quiz"
	"wine-trip-planner/internal/replacement"
)

// SessionResponse is the wire form of a trip session
type SessionResponse struct {
	ID          string                 `json:"id"`
	ProfileID   string                 `json:"profile_id"`
	Answers     map[string]interface{} `json:"answers"`
	Answered    int                    `json:"answered"`
	Total       int                    `json:"total_questions"`
	Itinerary   *models.Itinerary      `json:"itinerary,omitempty"`
	Replacement replacement.View       `json:"replacement"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func newSessionResponse(s *TripSession) SessionResponse {
	return SessionResponse{
		ID:          s.ID,
		ProfileID:   s.ProfileID,
		Answers:     quiz.Encode(s.Answers),
		Answered:    quiz.Answered(s.Answers),
		Total:       len(quiz.Questions()),
		Itinerary:   s.Itinerary,
		Replacement: s.Replacement.View(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// HandleCreateSession handles POST /api/v1/sessions
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string                 `json:"profile_id"`
		Answers   map[string]interface{} `json:"answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}
	if req.ProfileID == "" {
		req.ProfileID = profile.DefaultID
	}

	var answers models.QuizAnswers
	if req.Answers != nil {
		decoded, err := quiz.Decode(req.Answers)
		if err != nil {
			h.handleValidationError(w, err.Error())
			return
		}
		answers = decoded
	} else {
		// Resume from the stored preferences
		p := profile.LoadOrDefault(r.Context(), h.DB.Profiles(), req.ProfileID, h.now())
		answers = p.Preferences
	}

	session := h.Sessions.Create(req.ProfileID, answers)
	h.writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

// HandleGetSession handles GET /api/v1/sessions/{id}
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Get(r.PathValue("id"))
	if session == nil {
		h.handleNotFound(w, "Session not found")
		return
	}
	h.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

// HandleDeleteSession handles DELETE /api/v1/sessions/{id}
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if h.Sessions.Get(id) == nil {
		h.handleNotFound(w, "Session not found")
		return
	}
	h.Sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetAnswers handles PUT /api/v1/sessions/{id}/answers
func (h *Handler) HandleSetAnswers(w http.ResponseWriter, r *http.Request) {
	var raw map[string]interface{}
	if err := decodeJSON(r, &raw); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	answers, err := quiz.Decode(raw)
	if err != nil {
		h.handleValidationError(w, err.Error())
		return
	}

	session, err := h.Sessions.Update(r.PathValue("id"), func(s *TripSession) error {
		s.Answers = answers
		s.Candidates = nil
		return nil
	})
	if h.checkNotFound(err) {
		h.handleNotFound(w, "Session not found")
		return
	}
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] Replaced answers: session=%s answered=%d", session.ID, quiz.Answered(answers))
	h.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

// HandleSelectAnswer handles POST /api/v1/sessions/{id}/answers/select
func (h *Handler) HandleSelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID string `json:"question_id"`
		Value      string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	session, err := h.Sessions.Update(r.PathValue("id"), func(s *TripSession) error {
		updated, err := quiz.Select(s.Answers, req.QuestionID, req.Value)
		if err != nil {
			return err
		}
		s.Answers = updated
		s.Candidates = nil
		return nil
	})
	switch {
	case errors.Is(err, ErrSessionNotFound):
		h.handleNotFound(w, "Session not found")
		return
	case errors.Is(err, quiz.ErrUnknownQuestion), errors.Is(err, quiz.ErrUnknownOption):
		h.handleValidationError(w, err.Error())
		return
	case err != nil:
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

// HandleSaveSession handles POST /api/v1/sessions/{id}/save
func (h *Handler) HandleSaveSession(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Get(r.PathValue("id"))
	if session == nil {
		h.handleNotFound(w, "Session not found")
		return
	}

	p, err := h.saveSession(r.Context(), session)
	if err != nil {
		h.Sessions.MarkDirty(session.ID)
		h.handleInternalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// SaveDirtySessions persists every session changed since the last call.
// Sessions that fail to save stay dirty and are retried next time.
func (h *Handler) SaveDirtySessions(ctx context.Context) (int, error) {
	var errs []error
	saved := 0
	for _, session := range h.Sessions.TakeDirty() {
		if _, err := h.saveSession(ctx, session); err != nil {
			log.Printf("[ERROR] Autosave failed: session=%s profile=%s err=%v", session.ID, session.ProfileID, err)
			h.Sessions.MarkDirty(session.ID)
			errs = append(errs, err)
			continue
		}
		saved++
	}
	if saved > 0 {
		log.Printf("[STORE] Autosaved sessions: count=%d", saved)
	}
	return saved, errors.Join(errs...)
}

// saveSession folds the session's answers and itinerary into its stored profile
func (h *Handler) saveSession(ctx context.Context, s *TripSession) (*models.Profile, error) {
	h.profileMu.Lock()
	defer h.profileMu.Unlock()

	p, err := profile.LoadForUpdate(ctx, h.DB.Profiles(), s.ProfileID, h.now())
	if err != nil {
		return nil, err
	}
	p.Preferences = s.Answers.Clone()
	if s.Itinerary != nil {
		p.Itinerary = s.Itinerary.Clone()
		profile.RecordVisits(p, s.Itinerary)
	}

	if err := h.DB.Profiles().Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return p, nil
}
