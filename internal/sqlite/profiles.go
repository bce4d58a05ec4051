package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wine-trip-planner/internal/database"
	"wine-trip-planner/internal/models"
)

type profileRepository struct {
	store *Store
}

func (r *profileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var (
		prefsJSON            string
		itinJSON             sql.NullString
		createdAt, updatedAt string
	)
	err := r.store.db.QueryRowContext(ctx,
		`SELECT preferences, itinerary, created_at, updated_at FROM profiles WHERE id = ?`, id,
	).Scan(&prefsJSON, &itinJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p := &models.Profile{
		ID:           id,
		Favorites:    []int64{},
		TastingNotes: make(map[int64]string),
		VisitHistory: []int64{},
	}
	if err := json.Unmarshal([]byte(prefsJSON), &p.Preferences); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if itinJSON.Valid && itinJSON.String != "" {
		p.Itinerary = &models.Itinerary{}
		if err := json.Unmarshal([]byte(itinJSON.String), p.Itinerary); err != nil {
			return nil, fmt.Errorf("failed to parse itinerary: %w", err)
		}
	}
	if p.CreatedDate, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	if p.Favorites, err = r.queryIDs(ctx, `SELECT winery_id FROM profile_favorites WHERE profile_id = ? ORDER BY position`, id); err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	if p.VisitHistory, err = r.queryIDs(ctx, `SELECT winery_id FROM visit_history WHERE profile_id = ? ORDER BY position`, id); err != nil {
		return nil, fmt.Errorf("failed to get visit history: %w", err)
	}

	rows, err := r.store.db.QueryContext(ctx, `SELECT winery_id, note FROM tasting_notes WHERE profile_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasting notes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var wineryID int64
		var note string
		if err := rows.Scan(&wineryID, &note); err != nil {
			return nil, fmt.Errorf("failed to scan tasting note: %w", err)
		}
		p.TastingNotes[wineryID] = note
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasting notes: %w", err)
	}

	return p, nil
}

func (r *profileRepository) queryIDs(ctx context.Context, query, profileID string) ([]int64, error) {
	rows, err := r.store.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *profileRepository) List(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows, err := r.store.db.QueryContext(ctx, `SELECT id FROM profiles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *profileRepository) Save(ctx context.Context, p *models.Profile) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("profile id is required")
	}

	prefsJSON, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	var itinJSON sql.NullString
	if p.Itinerary != nil {
		data, err := json.Marshal(p.Itinerary)
		if err != nil {
			return fmt.Errorf("failed to marshal itinerary: %w", err)
		}
		itinJSON = sql.NullString{String: string(data), Valid: true}
	}

	created := p.CreatedDate
	if created.IsZero() {
		created = time.Now()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, preferences, itinerary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			preferences = excluded.preferences,
			itinerary = excluded.itinerary,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		p.ID, string(prefsJSON), itinJSON,
		created.UTC().Format(time.RFC3339Nano), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	for _, table := range []string{"profile_favorites", "tasting_notes", "visit_history"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE profile_id = ?`, p.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, id := range uniqueIDs(p.Favorites) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profile_favorites (profile_id, winery_id, position) VALUES (?, ?, ?)`, p.ID, id, i); err != nil {
			return fmt.Errorf("failed to save favorite: %w", err)
		}
	}
	for i, id := range uniqueIDs(p.VisitHistory) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO visit_history (profile_id, winery_id, position) VALUES (?, ?, ?)`, p.ID, id, i); err != nil {
			return fmt.Errorf("failed to save visit: %w", err)
		}
	}
	for wineryID, note := range p.TastingNotes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasting_notes (profile_id, winery_id, note) VALUES (?, ?, ?)`, p.ID, wineryID, note); err != nil {
			return fmt.Errorf("failed to save tasting note: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result, err := r.store.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return database.ErrNotFound
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
