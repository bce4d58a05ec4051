package handlers

import (
	"log"
	"net/http"

	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/profile"
)

// FavoriteResponse reports the outcome of a favorite toggle
type FavoriteResponse struct {
	WineryID  int64   `json:"winery_id"`
	Favorite  bool    `json:"favorite"`
	Favorites []int64 `json:"favorites"`
}

// ProfileResponse is a stored profile with its favorite wineries resolved
type ProfileResponse struct {
	*models.Profile
	FavoriteWineries []models.Winery `json:"favorite_wineries"`
}

// HandleGetProfile handles GET /api/v1/profiles/{id}
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p := profile.LoadOrDefault(r.Context(), h.DB.Profiles(), r.PathValue("id"), h.now())
	h.writeJSON(w, http.StatusOK, ProfileResponse{
		Profile:          p,
		FavoriteWineries: h.Catalog.WineriesByIDs(p.Favorites),
	})
}

// HandleProfileStats handles GET /api/v1/profiles/{id}/stats
func (h *Handler) HandleProfileStats(w http.ResponseWriter, r *http.Request) {
	p := profile.LoadOrDefault(r.Context(), h.DB.Profiles(), r.PathValue("id"), h.now())
	h.writeJSON(w, http.StatusOK, profile.Stats(p, h.Catalog.Winery))
}

// HandleToggleFavorite handles POST /api/v1/profiles/{id}/favorites/{wineryID}
func (h *Handler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := h.requireWinery(w, r)
	if !ok {
		return
	}

	var favorite bool
	p, err := h.updateProfile(r, func(p *models.Profile) {
		favorite = profile.ToggleFavorite(p, wineryID)
	})
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] Toggled favorite: profile=%s winery=%d favorite=%t", p.ID, wineryID, favorite)
	h.writeJSON(w, http.StatusOK, FavoriteResponse{
		WineryID:  wineryID,
		Favorite:  favorite,
		Favorites: p.Favorites,
	})
}

// HandleSetNote handles PUT /api/v1/profiles/{id}/notes/{wineryID}
func (h *Handler) HandleSetNote(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := h.requireWinery(w, r)
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		h.handleValidationError(w, "Invalid request body")
		return
	}

	p, err := h.updateProfile(r, func(p *models.Profile) {
		profile.SetNote(p, wineryID, req.Note)
	})
	if err != nil {
		h.handleInternalError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"winery_id": wineryID,
		"note":      p.TastingNotes[wineryID],
	})
}

// HandleResetProfile handles DELETE /api/v1/profiles/{id}
func (h *Handler) HandleResetProfile(w http.ResponseWriter, r *http.Request) {
	h.profileMu.Lock()
	defer h.profileMu.Unlock()

	current, err := profile.LoadForUpdate(r.Context(), h.DB.Profiles(), r.PathValue("id"), h.now())
	if err != nil {
		h.handleInternalError(w, err)
		return
	}
	cleared := profile.Reset(current, h.now())
	if err := h.DB.Profiles().Save(r.Context(), cleared); err != nil {
		h.handleInternalError(w, err)
		return
	}

	log.Printf("[HTTP] Reset profile: id=%s", cleared.ID)
	h.writeJSON(w, http.StatusOK, cleared)
}

// requireWinery parses the wineryID path value and checks the catalog for it
func (h *Handler) requireWinery(w http.ResponseWriter, r *http.Request) (int64, bool) {
	wineryID, err := parseWineryID(r.PathValue("wineryID"))
	if err != nil {
		h.handleValidationError(w, err.Error())
		return 0, false
	}
	if _, err := h.Catalog.Winery(wineryID); err != nil {
		h.handleNotFound(w, "Winery not found")
		return 0, false
	}
	return wineryID, true
}

// updateProfile loads the profile named in the path, applies fn and saves it
func (h *Handler) updateProfile(r *http.Request, fn func(*models.Profile)) (*models.Profile, error) {
	h.profileMu.Lock()
	defer h.profileMu.Unlock()

	p, err := profile.LoadForUpdate(r.Context(), h.DB.Profiles(), r.PathValue("id"), h.now())
	if err != nil {
		return nil, err
	}
	fn(p)
	if err := h.DB.Profiles().Save(r.Context(), p); err != nil {
		return nil, err
	}
	return p, nil
}
