package replacement

import (
	"errors"
	"fmt"
	"log"

	"github.com/samber/lo"

	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/scoring"
)

// MaxCandidates caps the alternatives offered for one slot
const MaxCandidates = 6

var (
	// ErrSlotOutOfRange is returned when day or slot does not exist in the itinerary
	ErrSlotOutOfRange = errors.New("slot out of range")
	// ErrSlotMismatch is returned when the slot no longer holds the expected winery
	ErrSlotMismatch = errors.New("slot does not hold the expected winery")
	// ErrDuplicateEntry is an internal-consistency failure: the replacement is already scheduled
	ErrDuplicateEntry = errors.New("winery already scheduled in itinerary")
)

// ConflictError is returned when applying a replacement would schedule a winery twice
type ConflictError struct {
	WineryID int64
	Day      int
	Slot     int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("replacement conflict: winery %d is already scheduled (day %d slot %d)", e.WineryID, e.Day, e.Slot)
}

func (e *ConflictError) Unwrap() error {
	return ErrDuplicateEntry
}

// Target identifies the slot being replaced. Day is 1-based, Slot 0-based.
type Target struct {
	Day       int   `json:"day"`
	Slot      int   `json:"slot"`
	CurrentID int64 `json:"current_id"`
}

// Candidates re-scores the catalog with the stored answers and returns the best
// alternatives that are neither the current winery nor scheduled anywhere else.
func Candidates(wineries []models.Winery, answers models.QuizAnswers, itin *models.Itinerary, currentID int64) []models.ScoredWinery {
	used := itin.UsedIDs()
	used[currentID] = true

	candidates := lo.Filter(scoring.Score(wineries, answers), func(c models.ScoredWinery, _ int) bool {
		return !used[c.ID]
	})
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	log.Printf("[REPLACE] Candidates for winery=%d: %d available", currentID, len(candidates))
	return candidates
}

// Validate checks that target addresses an existing slot holding target.CurrentID
func Validate(itin *models.Itinerary, target Target) error {
	if itin == nil || target.Day < 1 || target.Day > len(itin.Days) {
		return fmt.Errorf("day %d: %w", target.Day, ErrSlotOutOfRange)
	}
	day := itin.Days[target.Day-1]
	if target.Slot < 0 || target.Slot >= len(day.Wineries) {
		return fmt.Errorf("day %d slot %d: %w", target.Day, target.Slot, ErrSlotOutOfRange)
	}
	if got := day.Wineries[target.Slot].ID; got != target.CurrentID {
		return fmt.Errorf("day %d slot %d holds %d, expected %d: %w", target.Day, target.Slot, got, target.CurrentID, ErrSlotMismatch)
	}
	return nil
}

// Apply substitutes the winery at target with replacement and returns the new
// itinerary. The input is left untouched. Only the targeted slot changes; the
// day's driving estimate and ordering are kept as they were.
func Apply(itin *models.Itinerary, target Target, replacement models.Winery) (*models.Itinerary, error) {
	if err := Validate(itin, target); err != nil {
		return nil, err
	}

	for d, day := range itin.Days {
		for s, w := range day.Wineries {
			if w.ID != replacement.ID {
				continue
			}
			if d == target.Day-1 && s == target.Slot {
				continue
			}
			log.Printf("[ERROR] Replacement would duplicate winery=%d at day=%d slot=%d", replacement.ID, d+1, s)
			return nil, &ConflictError{WineryID: replacement.ID, Day: d + 1, Slot: s}
		}
	}

	result := itin.Clone()
	result.Days[target.Day-1].Wineries[target.Slot] = replacement

	log.Printf("[REPLACE] Replaced winery=%d with winery=%d on day=%d slot=%d",
		target.CurrentID, replacement.ID, target.Day, target.Slot)
	return result, nil
}
