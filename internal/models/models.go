package models

import "time"

// Coordinates represents a geographic point
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Winery is an immutable catalog entry for a tasting room
type Winery struct {
	ID          int64       `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Region      string      `json:"region" yaml:"region"`
	Coords      Coordinates `json:"coords" yaml:"coords"`
	Specialty   string      `json:"specialty" yaml:"specialty"`
	Description string      `json:"description" yaml:"description"`
	SuitedFor   []string    `json:"suited_for" yaml:"suited_for"`
	WineTypes   []string    `json:"wine_types" yaml:"wine_types"`
	PriceLevel  string      `json:"price_level" yaml:"price_level"`
	TastingFee  float64     `json:"tasting_fee" yaml:"tasting_fee"`
	Hours       string      `json:"hours" yaml:"hours"`
	Phone       string      `json:"phone" yaml:"phone"`
	Website     string      `json:"website" yaml:"website"`
	Features    []string    `json:"features" yaml:"features"`
	Rating      float64     `json:"rating" yaml:"rating"`
}

// Restaurant is a catalog entry for dining near the wine regions
type Restaurant struct {
	ID           int64       `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Location     string      `json:"location" yaml:"location"`
	Coords       Coordinates `json:"coords" yaml:"coords"`
	Cuisine      string      `json:"cuisine" yaml:"cuisine"`
	Description  string      `json:"description" yaml:"description"`
	PriceLevel   string      `json:"price_level" yaml:"price_level"`
	Phone        string      `json:"phone" yaml:"phone"`
	Reservations string      `json:"reservations" yaml:"reservations"`
	DressCode    string      `json:"dress_code" yaml:"dress_code"`
	Features     []string    `json:"features" yaml:"features"`
	Rating       float64     `json:"rating" yaml:"rating"`
}

// Accommodation is a catalog entry for lodging
type Accommodation struct {
	ID          int64       `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Location    string      `json:"location" yaml:"location"`
	Coords      Coordinates `json:"coords" yaml:"coords"`
	Type        string      `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	PriceLevel  string      `json:"price_level" yaml:"price_level"`
	Amenities   []string    `json:"amenities" yaml:"amenities"`
	Rating      float64     `json:"rating" yaml:"rating"`
}

// WineRegion describes one of the wine-growing areas
type WineRegion struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	BestFor     []string `json:"best_for" yaml:"best_for"`
	KeyWineries []string `json:"key_wineries" yaml:"key_wineries"`
	DrivingTime string   `json:"driving_time" yaml:"driving_time"`
}

// QuizAnswers holds the traveller's answers keyed by question id.
// Unanswered fields stay at their zero value and contribute nothing to scoring.
type QuizAnswers struct {
	Experience  string   `json:"experience,omitempty" mapstructure:"experience"`
	WineTypes   []string `json:"wineTypes,omitempty" mapstructure:"wineTypes"`
	Duration    string   `json:"duration,omitempty" mapstructure:"duration"`
	TravelStyle string   `json:"travelStyle,omitempty" mapstructure:"travelStyle"`
	Regions     []string `json:"regions,omitempty" mapstructure:"regions"`
	Activities  []string `json:"activities,omitempty" mapstructure:"activities"`
}

// IsEmpty reports whether no question has been answered
func (a QuizAnswers) IsEmpty() bool {
	return a.Experience == "" && a.Duration == "" && a.TravelStyle == "" &&
		len(a.WineTypes) == 0 && len(a.Regions) == 0 && len(a.Activities) == 0
}

// Clone returns a copy that shares no slices with a
func (a QuizAnswers) Clone() QuizAnswers {
	out := a
	out.WineTypes = copySlice(a.WineTypes)
	out.Regions = copySlice(a.Regions)
	out.Activities = copySlice(a.Activities)
	return out
}

// ScoredWinery is a winery paired with its match score for one set of answers
type ScoredWinery struct {
	Winery
	Score int `json:"score"`
}

// Activity is a non-winery suggestion attached to a day
type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DayPlan is one day of the trip
type DayPlan struct {
	Day                  int        `json:"day"`
	Wineries             []Winery   `json:"wineries"`
	Region               string     `json:"region"`
	Activities           []Activity `json:"activities"`
	EstimatedDrivingMins int        `json:"estimated_driving_mins"`
}

// Itinerary is the ordered list of days produced for a traveller
type Itinerary struct {
	Days []DayPlan `json:"days"`
}

// Contains reports whether the winery is already scheduled on any day
func (it *Itinerary) Contains(wineryID int64) bool {
	if it == nil {
		return false
	}
	for _, day := range it.Days {
		for _, w := range day.Wineries {
			if w.ID == wineryID {
				return true
			}
		}
	}
	return false
}

// UsedIDs returns the set of scheduled winery ids
func (it *Itinerary) UsedIDs() map[int64]bool {
	used := make(map[int64]bool)
	if it == nil {
		return used
	}
	for _, day := range it.Days {
		for _, w := range day.Wineries {
			used[w.ID] = true
		}
	}
	return used
}

// TotalWineries counts scheduled slots across all days
func (it *Itinerary) TotalWineries() int {
	if it == nil {
		return 0
	}
	total := 0
	for _, day := range it.Days {
		total += len(day.Wineries)
	}
	return total
}

// Regions returns the distinct target regions in day order
func (it *Itinerary) Regions() []string {
	if it == nil {
		return nil
	}
	seen := make(map[string]bool)
	var regions []string
	for _, day := range it.Days {
		if day.Region == "" || seen[day.Region] {
			continue
		}
		seen[day.Region] = true
		regions = append(regions, day.Region)
	}
	return regions
}

// Clone deep-copies the itinerary so edits never leak into the source
func (it *Itinerary) Clone() *Itinerary {
	if it == nil {
		return nil
	}
	out := &Itinerary{Days: make([]DayPlan, len(it.Days))}
	for i, day := range it.Days {
		out.Days[i] = DayPlan{
			Day:                  day.Day,
			Wineries:             copySlice(day.Wineries),
			Region:               day.Region,
			Activities:           copySlice(day.Activities),
			EstimatedDrivingMins: day.EstimatedDrivingMins,
		}
	}
	return out
}

// DrivingEstimate is a straight-line proxy for road travel between two points
type DrivingEstimate struct {
	DistanceMiles  float64 `json:"distance_miles"`
	DrivingMins    int     `json:"driving_mins"`
	IsLongDistance bool    `json:"is_long_distance"`
}

// Leg is the estimated transition between two consecutive stops of a day
type Leg struct {
	FromID   int64           `json:"from_id"`
	ToID     int64           `json:"to_id"`
	Estimate DrivingEstimate `json:"estimate"`
}

// Profile is the persisted snapshot of a traveller's state
type Profile struct {
	ID           string           `json:"id"`
	Preferences  QuizAnswers      `json:"preferences"`
	Favorites    []int64          `json:"favorites"`
	TastingNotes map[int64]string `json:"tasting_notes"`
	VisitHistory []int64          `json:"visit_history"`
	Itinerary    *Itinerary       `json:"itinerary,omitempty"`
	CreatedDate  time.Time        `json:"created_date"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewProfile returns an empty profile created at now
func NewProfile(id string, now time.Time) *Profile {
	return &Profile{
		ID:           id,
		Favorites:    []int64{},
		TastingNotes: make(map[int64]string),
		VisitHistory: []int64{},
		CreatedDate:  now,
		UpdatedAt:    now,
	}
}

// IsFavorite reports whether the winery is in the favorites list
func (p *Profile) IsFavorite(wineryID int64) bool {
	for _, id := range p.Favorites {
		if id == wineryID {
			return true
		}
	}
	return false
}

// Clone deep-copies the profile
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Preferences = p.Preferences.Clone()
	out.Favorites = copySlice(p.Favorites)
	out.VisitHistory = copySlice(p.VisitHistory)
	out.TastingNotes = make(map[int64]string, len(p.TastingNotes))
	for k, v := range p.TastingNotes {
		out.TastingNotes[k] = v
	}
	out.Itinerary = p.Itinerary.Clone()
	return &out
}

// ProfileStats summarises a profile for display
type ProfileStats struct {
	FavoriteCount   int      `json:"favorite_count"`
	NotesCount      int      `json:"notes_count"`
	RegionsExplored []string `json:"regions_explored"`
	MemberSince     int      `json:"member_since"`
}

// copySlice keeps nil slices nil and copies everything else
func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
