package handlers

import (
	"log"
	"net/http"
	"time"

	"wine-trip-planner/internal/catalog"
	"wine-trip-planner/internal/itinerary"
	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/replacement"
	"wine-trip-planner/internal/scoring"
)

// ItineraryResponse is a built itinerary with its display extras
type ItineraryResponse struct {
	SessionID string              `json:"session_id"`
	Itinerary *models.Itinerary   `json:"itinerary"`
	Legs      []itinerary.DayLegs `json:"legs"`
	Summary   itinerary.Summary   `json:"summary"`
	Map       catalog.MapView     `json:"map"`
	Answers   models.QuizAnswers  `json:"answers"`
}

func (h *Handler) newItineraryResponse(s *TripSession) ItineraryResponse {
	var scheduled []models.Winery
	for _, day := range s.Itinerary.Days {
		scheduled = append(scheduled, day.Wineries...)
	}
	return ItineraryResponse{
		SessionID: s.ID,
		Itinerary: s.Itinerary,
		Legs:      itinerary.Legs(h.Estimator, s.Itinerary),
		Summary:   itinerary.Summarize(s.Itinerary),
		Map:       catalog.BuildMapView(scheduled),
		Answers:   s.Answers,
	}
}

// HandleGenerateItinerary handles POST /api/v1/sessions/{id}/itinerary
func (h *Handler) HandleGenerateItinerary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	session := h.Sessions.Get(id)
	if session == nil {
		h.handleNotFound(w, "Session not found")
		return
	}

	if h.GenerationDelay > 0 {
		timer := time.NewTimer(h.GenerationDelay)
		select {
		case <-timer.C:
		case <-r.Context().Done():
			timer.Stop()
			log.Printf("[ITINERARY] Generation cancelled: session=%s err=%v", id, r.Context().Err())
			return
		}
	}

	// Answers are read under the session lock so edits made during the delay
	// are the ones the itinerary is built from.
	session, err := h.Sessions.Update(id, func(s *TripSession) error {
		scored := scoring.Score(h.Catalog.Wineries, s.Answers)
		s.Itinerary = h.Builder.Build(scored, s.Answers)
		s.Candidates = scored
		s.Replacement = replacement.NewFlow()
		return nil
	})
	if err != nil {
		h.handleNotFound(w, "Session not found")
		return
	}

	log.Printf("[HTTP] Generated itinerary: session=%s days=%d wineries=%d",
		id, len(session.Itinerary.Days), session.Itinerary.TotalWineries())
	h.writeJSON(w, http.StatusOK, h.newItineraryResponse(session))
}

// HandleGetItinerary handles GET /api/v1/sessions/{id}/itinerary
func (h *Handler) HandleGetItinerary(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Get(r.PathValue("id"))
	if session == nil {
		h.handleNotFound(w, "Session not found")
		return
	}
	if session.Itinerary == nil {
		h.handleNotFound(w, "No itinerary has been generated for this session")
		return
	}
	h.writeJSON(w, http.StatusOK, h.newItineraryResponse(session))
}

// RecommendationsResponse lists dining and lodging matched to the answers
type RecommendationsResponse struct {
	Restaurants    []models.Restaurant    `json:"restaurants"`
	Accommodations []models.Accommodation `json:"accommodations"`
	Wineries       []models.ScoredWinery  `json:"wineries"`
	Map            catalog.MapView        `json:"map"`
}

// HandleRecommendations handles GET /api/v1/sessions/{id}/recommendations
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	session := h.Sessions.Get(r.PathValue("id"))
	if session == nil {
		h.handleNotFound(w, "Session not found")
		return
	}

	candidates := session.Candidates
	if candidates == nil {
		candidates = scoring.Score(h.Catalog.Wineries, session.Answers)
	}

	h.writeJSON(w, http.StatusOK, RecommendationsResponse{
		Restaurants:    scoring.MatchRestaurants(h.Catalog.Restaurants, session.Answers),
		Accommodations: scoring.MatchAccommodations(h.Catalog.Accommodations, session.Answers),
		Wineries:       candidates,
		Map:            catalog.BuildMapView(scoring.Wineries(candidates)),
	})
}
