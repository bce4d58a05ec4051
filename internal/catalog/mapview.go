package catalog

import (
	"fmt"

	"wine-trip-planner/internal/models"
)

// Default map framing over Washington wine country
const (
	DefaultCenterLat = 47.0379
	DefaultCenterLng = -120.8017
	DefaultZoom      = 7
)

// Pin is one marker for the external map renderer
type Pin struct {
	WineryID int64              `json:"winery_id"`
	Name     string             `json:"name"`
	Region   string             `json:"region"`
	Coords   models.Coordinates `json:"coords"`
	Popup    string             `json:"popup"`
}

// Bounds is the bounding box that contains every pin
type Bounds struct {
	SouthWest models.Coordinates `json:"south_west"`
	NorthEast models.Coordinates `json:"north_east"`
}

// MapView is the data a map widget needs to draw the recommended wineries
type MapView struct {
	Center models.Coordinates `json:"center"`
	Zoom   int                `json:"zoom"`
	Pins   []Pin              `json:"pins"`
	Bounds *Bounds            `json:"bounds,omitempty"`
}

// BuildMapView produces pins for the given wineries. Bounds is nil when there are no pins.
func BuildMapView(wineries []models.Winery) MapView {
	view := MapView{
		Center: models.Coordinates{Lat: DefaultCenterLat, Lng: DefaultCenterLng},
		Zoom:   DefaultZoom,
		Pins:   make([]Pin, 0, len(wineries)),
	}

	for _, w := range wineries {
		view.Pins = append(view.Pins, Pin{
			WineryID: w.ID,
			Name:     w.Name,
			Region:   w.Region,
			Coords:   w.Coords,
			Popup:    fmt.Sprintf("%s | %s | %s | $%.0f tasting", w.Name, w.Region, w.Specialty, w.TastingFee),
		})

		if view.Bounds == nil {
			view.Bounds = &Bounds{SouthWest: w.Coords, NorthEast: w.Coords}
			continue
		}
		view.Bounds.SouthWest.Lat = min(view.Bounds.SouthWest.Lat, w.Coords.Lat)
		view.Bounds.SouthWest.Lng = min(view.Bounds.SouthWest.Lng, w.Coords.Lng)
		view.Bounds.NorthEast.Lat = max(view.Bounds.NorthEast.Lat, w.Coords.Lat)
		view.Bounds.NorthEast.Lng = max(view.Bounds.NorthEast.Lng, w.Coords.Lng)
	}

	return view
}
