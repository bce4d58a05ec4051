package replacement

import (
	"errors"
	"fmt"

	"wine-trip-planner/internal/models"
)

// State is a step of the replacement flow
type State string

const (
	StateIdle              State = "idle"
	StateCandidatesShown   State = "candidates_shown"
	StateCandidateSelected State = "candidate_selected"
	StateConfirmed         State = "confirmed"
)

// ErrInvalidTransition is returned when an action is not allowed in the current state
var ErrInvalidTransition = errors.New("invalid replacement transition")

// ErrNotACandidate is returned when the selected winery was not offered
var ErrNotACandidate = errors.New("winery is not one of the offered candidates")

// Flow tracks one replacement interaction for a session.
// A confirmed or cancelled flow can be reused by calling Begin again.
type Flow struct {
	state      State
	target     Target
	candidates []models.ScoredWinery
	selected   *models.Winery
}

// NewFlow returns a flow in the idle state
func NewFlow() *Flow {
	return &Flow{state: StateIdle}
}

func (f *Flow) State() State                       { return f.state }
func (f *Flow) Target() Target                     { return f.target }
func (f *Flow) Candidates() []models.ScoredWinery { return f.candidates }

// Selected returns the tentative choice, or nil when none has been made
func (f *Flow) Selected() *models.Winery {
	if f.selected == nil {
		return nil
	}
	w := *f.selected
	return &w
}

// Begin shows candidates for a slot, discarding any flow that is still open
func (f *Flow) Begin(target Target, candidates []models.ScoredWinery) {
	f.state = StateCandidatesShown
	f.target = target
	f.candidates = candidates
	f.selected = nil
}

// Select records a tentative choice. Selecting again replaces the previous choice.
func (f *Flow) Select(wineryID int64) (models.Winery, error) {
	if f.state != StateCandidatesShown && f.state != StateCandidateSelected {
		return models.Winery{}, fmt.Errorf("select in state %s: %w", f.state, ErrInvalidTransition)
	}
	for _, c := range f.candidates {
		if c.ID == wineryID {
			w := c.Winery
			f.selected = &w
			f.state = StateCandidateSelected
			return w, nil
		}
	}
	return models.Winery{}, fmt.Errorf("winery %d: %w", wineryID, ErrNotACandidate)
}

// Confirm applies the tentative choice to itin and returns the updated itinerary.
// It is the only step that produces a changed itinerary. On error the flow stays
// in candidate_selected so the caller can pick again or cancel.
func (f *Flow) Confirm(itin *models.Itinerary) (*models.Itinerary, error) {
	if f.state != StateCandidateSelected || f.selected == nil {
		return nil, fmt.Errorf("confirm in state %s: %w", f.state, ErrInvalidTransition)
	}

	updated, err := Apply(itin, f.target, *f.selected)
	if err != nil {
		return nil, err
	}

	f.state = StateConfirmed
	f.candidates = nil
	f.selected = nil
	return updated, nil
}

// Cancel discards any tentative choice and returns to idle
func (f *Flow) Cancel() error {
	if f.state != StateCandidatesShown && f.state != StateCandidateSelected {
		return fmt.Errorf("cancel in state %s: %w", f.state, ErrInvalidTransition)
	}
	f.state = StateIdle
	f.target = Target{}
	f.candidates = nil
	f.selected = nil
	return nil
}

// View is the serialisable state of a flow
type View struct {
	State      State                 `json:"state"`
	Target     Target                `json:"target"`
	Candidates []models.ScoredWinery `json:"candidates"`
	Selected   *models.Winery        `json:"selected,omitempty"`
}

// View returns a snapshot of the flow for display
func (f *Flow) View() View {
	candidates := f.candidates
	if candidates == nil {
		candidates = []models.ScoredWinery{}
	}
	return View{
		State:      f.state,
		Target:     f.target,
		Candidates: candidates,
		Selected:   f.Selected(),
	}
}
