package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/russross/blackfriday/v2"
	"github.com/tidwall/pretty"

	"wine-trip-planner/internal/models"
)

// ErrEmptyItinerary is returned when there is nothing to export
var ErrEmptyItinerary = errors.New("no itinerary to export")

// Format names accepted by the export endpoint
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatXLSX     = "xlsx"
)

const (
	itineraryTitle = "Washington Wine Country Itinerary"
	dayDivider     = "---"
	dateLayout     = "January 2, 2006"
	fileDateLayout = "2006-01-02"
)

type profileExport struct {
	*models.Profile
	ExportDate time.Time         `json:"export_date"`
	Itinerary  *models.Itinerary `json:"itinerary"`
}

// ProfileJSON renders the profile together with the current itinerary as indented JSON
func ProfileJSON(p *models.Profile, itin *models.Itinerary, now time.Time) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is required")
	}
	raw, err := json.Marshal(profileExport{
		Profile:    p,
		ExportDate: now.UTC(),
		Itinerary:  itin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return pretty.Pretty(raw), nil
}

// ItineraryMarkdown renders the itinerary as a printable Markdown document
func ItineraryMarkdown(itin *models.Itinerary, now time.Time) ([]byte, error) {
	if itin.TotalWineries() == 0 {
		return nil, ErrEmptyItinerary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", itineraryTitle)
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format(dateLayout))

	for _, day := range itin.Days {
		fmt.Fprintf(&b, "## Day %d - %s\n\n", day.Day, day.Region)
		fmt.Fprintf(&b, "Estimated driving: %d minutes\n\n", day.EstimatedDrivingMins)

		for _, w := range day.Wineries {
			fmt.Fprintf(&b, "### %s\n\n", w.Name)
			fmt.Fprintf(&b, "- Region: %s\n", w.Region)
			fmt.Fprintf(&b, "- Specialty: %s\n", w.Specialty)
			fmt.Fprintf(&b, "- Tasting fee: $%s\n", formatFee(w.TastingFee))
			fmt.Fprintf(&b, "- Hours: %s\n", w.Hours)
			fmt.Fprintf(&b, "- Phone: %s\n", w.Phone)
			fmt.Fprintf(&b, "- Website: %s\n\n", w.Website)
		}

		if len(day.Activities) > 0 {
			b.WriteString("**Activities**\n\n")
			for _, a := range day.Activities {
				fmt.Fprintf(&b, "- %s %s\n", a.Icon, a.Description)
			}
			b.WriteString("\n")
		}

		b.WriteString(dayDivider + "\n\n")
	}

	return []byte(b.String()), nil
}

// ItineraryHTML renders the Markdown export as an HTML fragment
func ItineraryHTML(itin *models.Itinerary, now time.Time) ([]byte, error) {
	md, err := ItineraryMarkdown(itin, now)
	if err != nil {
		return nil, err
	}
	return blackfriday.Run(md), nil
}

// ProfileFilename is the download name for a profile export
func ProfileFilename(now time.Time) string {
	return "wine-journey-profile-" + now.Format(fileDateLayout) + ".json"
}

// ItineraryFilename is the download name for an itinerary export in the given format
func ItineraryFilename(now time.Time, format string) string {
	ext := format
	if format == FormatMarkdown {
		ext = "md"
	}
	return "washington-wine-itinerary-" + now.Format(fileDateLayout) + "." + ext
}

// ContentType returns the MIME type served for a format
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

func formatFee(fee float64) string {
	if fee == float64(int64(fee)) {
		return fmt.Sprintf("%d", int64(fee))
	}
	return fmt.Sprintf("%.2f", fee)
}
