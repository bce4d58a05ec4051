package export

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"wine-trip-planner/internal/distance"
	"wine-trip-planner/internal/models"
)

// SheetName is the worksheet holding the itinerary rows
const SheetName = "Itinerary"

var xlsxHeader = []interface{}{
	"Day", "Region", "Stop", "Winery", "Specialty", "Tasting Fee",
	"Hours", "Phone", "Website", "Miles From Previous", "Minutes From Previous",
}

// ItineraryXLSX writes one spreadsheet row per scheduled winery. The first stop of
// each day has no leg columns.
func ItineraryXLSX(itin *models.Itinerary, est distance.Estimator, w io.Writer) error {
	if itin.TotalWineries() == 0 {
		return ErrEmptyItinerary
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[ERROR] Failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(xlsxHeader), 1)
	if err != nil {
		return fmt.Errorf("failed to resolve header range: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, day := range itin.Days {
		for i, winery := range day.Wineries {
			values := []interface{}{
				day.Day, day.Region, i + 1, winery.Name, winery.Specialty, winery.TastingFee,
				winery.Hours, winery.Phone, winery.Website,
			}
			if i > 0 {
				leg := est.Estimate(day.Wineries[i-1].Coords, winery.Coords)
				values = append(values, leg.DistanceMiles, leg.DrivingMins)
			}

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return fmt.Errorf("failed to resolve row %d: %w", row, err)
			}
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetColWidth(SheetName, "D", "D", 32); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
