package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"wine-trip-planner/internal/database"
	"wine-trip-planner/internal/models"
)

// DefaultID is the profile used when the caller does not name one
const DefaultID = "default"

// LoadOrDefault returns the stored profile for id. Any load failure, whether a
// missing snapshot, an unavailable store or corrupted data, yields a fresh
// default profile instead of an error.
func LoadOrDefault(ctx context.Context, repo database.ProfileRepository, id string, now time.Time) *models.Profile {
	if id == "" {
		id = DefaultID
	}
	if repo == nil {
		return models.NewProfile(id, now)
	}

	p, err := repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("[ERROR] Failed to load profile id=%s, using defaults: %v", id, err)
		}
		return models.NewProfile(id, now)
	}
	if p == nil {
		return models.NewProfile(id, now)
	}
	return p
}

// LoadForUpdate returns the stored profile for id, or a fresh one when none has
// been saved yet. Unlike LoadOrDefault it returns every other load error, so a
// read-modify-write never saves defaults over a profile it failed to read.
func LoadForUpdate(ctx context.Context, repo database.ProfileRepository, id string, now time.Time) (*models.Profile, error) {
	if id == "" {
		id = DefaultID
	}

	p, err := repo.Get(ctx, id)
	if errors.Is(err, database.ErrNotFound) || (err == nil && p == nil) {
		return models.NewProfile(id, now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", id, err)
	}
	return p, nil
}

// ToggleFavorite adds the winery to favorites, or removes it when already present.
// It reports whether the winery is a favorite afterwards.
func ToggleFavorite(p *models.Profile, wineryID int64) bool {
	if p.IsFavorite(wineryID) {
		p.Favorites = slices.DeleteFunc(p.Favorites, func(id int64) bool { return id == wineryID })
		return false
	}
	p.Favorites = append(p.Favorites, wineryID)
	return true
}

// SetNote stores a tasting note for the winery. A blank note removes it.
func SetNote(p *models.Profile, wineryID int64, note string) {
	if p.TastingNotes == nil {
		p.TastingNotes = make(map[int64]string)
	}
	if strings.TrimSpace(note) == "" {
		delete(p.TastingNotes, wineryID)
		return
	}
	p.TastingNotes[wineryID] = note
}

// RecordVisits appends newly scheduled wineries to the visit history, keeping it unique
func RecordVisits(p *models.Profile, itin *models.Itinerary) {
	if itin == nil {
		return
	}
	for _, day := range itin.Days {
		for _, w := range day.Wineries {
			if !slices.Contains(p.VisitHistory, w.ID) {
				p.VisitHistory = append(p.VisitHistory, w.ID)
			}
		}
	}
}

// Stats summarises the profile. Regions are those of favorite wineries, in favorite order.
func Stats(p *models.Profile, lookup func(id int64) (models.Winery, error)) models.ProfileStats {
	stats := models.ProfileStats{
		FavoriteCount:   len(p.Favorites),
		RegionsExplored: []string{},
		MemberSince:     p.CreatedDate.Year(),
	}

	for _, note := range p.TastingNotes {
		if strings.TrimSpace(note) != "" {
			stats.NotesCount++
		}
	}

	for _, id := range p.Favorites {
		w, err := lookup(id)
		if err != nil {
			continue
		}
		if !slices.Contains(stats.RegionsExplored, w.Region) {
			stats.RegionsExplored = append(stats.RegionsExplored, w.Region)
		}
	}

	return stats
}

// Reset returns a cleared profile that keeps the id and gets a new creation date
func Reset(p *models.Profile, now time.Time) *models.Profile {
	return models.NewProfile(p.ID, now)
}
