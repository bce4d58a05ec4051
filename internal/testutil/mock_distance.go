package testutil

import (
	"fmt"

	"wine-trip-planner/internal/models"
)

// EstimateCall tracks a call to the estimator
type EstimateCall struct {
	From models.Coordinates
	To   models.Coordinates
}

// MockEstimator is a deterministic driving estimator for tests.
// Every leg defaults to DefaultMins minutes unless an override is set for the pair.
type MockEstimator struct {
	DefaultMins int
	Overrides   map[string]models.DrivingEstimate
	Calls       []EstimateCall
}

func NewMockEstimator() *MockEstimator {
	return &MockEstimator{
		DefaultMins: 10,
		Overrides:   make(map[string]models.DrivingEstimate),
		Calls:       []EstimateCall{},
	}
}

func (m *MockEstimator) makeKey(from, to models.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}

// SetEstimate sets a custom estimate for a specific pair
func (m *MockEstimator) SetEstimate(from, to models.Coordinates, est models.DrivingEstimate) {
	m.Overrides[m.makeKey(from, to)] = est
}

// Estimate returns the override for the pair, zero for identical points, or the default
func (m *MockEstimator) Estimate(from, to models.Coordinates) models.DrivingEstimate {
	m.Calls = append(m.Calls, EstimateCall{From: from, To: to})

	if est, ok := m.Overrides[m.makeKey(from, to)]; ok {
		return est
	}
	if from == to {
		return models.DrivingEstimate{}
	}
	return models.DrivingEstimate{
		DistanceMiles:  float64(m.DefaultMins) * 0.75,
		DrivingMins:    m.DefaultMins,
		IsLongDistance: m.DefaultMins > 45,
	}
}

// ResetCalls clears the recorded calls
func (m *MockEstimator) ResetCalls() {
	m.Calls = []EstimateCall{}
}
