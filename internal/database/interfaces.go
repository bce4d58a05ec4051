package database

import (
	"context"

	"wine-trip-planner/internal/models"
)

// DataStore is the interface for data persistence
type DataStore interface {
	Close() error
	HealthCheck(ctx context.Context) error
	Profiles() ProfileRepository
}

// ProfileRepository handles traveller profile snapshots
type ProfileRepository interface {
	// Get returns ErrNotFound when no snapshot exists for id
	Get(ctx context.Context, id string) (*models.Profile, error)
	List(ctx context.Context) ([]string, error)
	Save(ctx context.Context, p *models.Profile) error
	Delete(ctx context.Context, id string) error
}
