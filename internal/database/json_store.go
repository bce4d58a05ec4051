package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"wine-trip-planner/internal/models"
)

const jsonDataVersion = 1

// JSONData represents the structure of the JSON file
type JSONData struct {
	Version  int                        `json:"version"`
	Profiles map[string]*models.Profile `json:"profiles"`
}

// JSONStore is a JSON file-based data store
type JSONStore struct {
	filePath string
	data     *JSONData
	mu       sync.RWMutex

	profileRepository ProfileRepository
}

func (s *JSONStore) Profiles() ProfileRepository { return s.profileRepository }

// NewJSONStore opens the JSON data file at filePath, creating it when missing.
// A corrupted file is moved aside to <file>.corrupt-<unix> and the store starts empty.
func NewJSONStore(filePath string) (*JSONStore, error) {
	log.Printf("[STORE] Using JSON data file: %s", filePath)

	store := &JSONStore{
		filePath: filePath,
		data:     emptyJSONData(),
	}

	if err := store.load(); err != nil {
		return nil, err
	}

	store.profileRepository = &jsonProfileRepository{store: store}
	return store, nil
}

func emptyJSONData() *JSONData {
	return &JSONData{
		Version:  jsonDataVersion,
		Profiles: make(map[string]*models.Profile),
	}
}

func (s *JSONStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.data = emptyJSONData()
		return s.saveUnlocked()
	}
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	parsed := emptyJSONData()
	if err := json.Unmarshal(data, parsed); err != nil {
		backup := fmt.Sprintf("%s.corrupt-%d", s.filePath, time.Now().Unix())
		log.Printf("[ERROR] Data file is corrupted, moving to %s: %v", backup, err)
		if rerr := os.Rename(s.filePath, backup); rerr != nil {
			return fmt.Errorf("failed to move corrupted data file: %w", rerr)
		}
		s.data = emptyJSONData()
		return s.saveUnlocked()
	}

	if parsed.Profiles == nil {
		parsed.Profiles = make(map[string]*models.Profile)
	}
	s.data = parsed

	log.Printf("[STORE] Loaded data: %d profiles", len(s.data.Profiles))
	return nil
}

func (s *JSONStore) saveUnlocked() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	// Write to temp file first, then rename (atomic)
	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpFile, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Close is a no-op for JSON store (data is saved after each operation)
func (s *JSONStore) Close() error {
	return nil
}

// HealthCheck verifies the data file is still reachable
func (s *JSONStore) HealthCheck(ctx context.Context) error {
	if _, err := os.Stat(s.filePath); err != nil {
		return fmt.Errorf("data file unavailable: %w", err)
	}
	return nil
}

// ==================== Profile Repository ====================

type jsonProfileRepository struct {
	store *JSONStore
}

func (r *jsonProfileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.data.Profiles[id]
	if !ok || p == nil {
		return nil, ErrNotFound
	}
	return normalizeProfile(p.Clone()), nil
}

func (r *jsonProfileRepository) List(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.data.Profiles))
	for id := range r.store.data.Profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *jsonProfileRepository) Save(ctx context.Context, p *models.Profile) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("profile id is required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	saved := p.Clone()
	saved.UpdatedAt = time.Now()
	r.store.data.Profiles[p.ID] = saved

	if err := r.store.saveUnlocked(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *jsonProfileRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.data.Profiles[id]; !ok {
		return ErrNotFound
	}
	delete(r.store.data.Profiles, id)

	if err := r.store.saveUnlocked(); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// normalizeProfile replaces nil collections left by older snapshots
func normalizeProfile(p *models.Profile) *models.Profile {
	if p.Favorites == nil {
		p.Favorites = []int64{}
	}
	if p.VisitHistory == nil {
		p.VisitHistory = []int64{}
	}
	if p.TastingNotes == nil {
		p.TastingNotes = make(map[int64]string)
	}
	return p
}
