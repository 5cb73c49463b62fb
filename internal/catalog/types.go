package catalog

import (
	"strings"

	"github.com/neexbeast/petmap/internal/poi"
)

// FeedEvent is one record of an event feed, as produced by the CSV export.
type FeedEvent struct {
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	Location   string   `json:"location"`
	Venue      string   `json:"venue"`
	Address    string   `json:"address"`
	Prefecture string   `json:"prefecture"`
	City       string   `json:"city"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Source     string   `json:"source"`
	URL        string   `json:"url"`
}

// clean drops the "nan" placeholder the CSV export writes for empty cells.
func clean(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// ToPOI converts e to a real catalog point. It reports false when e has no
// name or no coordinates and cannot be placed on the map.
func (e FeedEvent) ToPOI() (poi.PointOfInterest, bool) {
	name := clean(e.Name)
	if name == "" || e.Lat == nil || e.Lon == nil {
		return poi.PointOfInterest{}, false
	}

	return poi.PointOfInterest{
		Name:       name,
		Latitude:   *e.Lat,
		Longitude:  *e.Lon,
		Category:   poi.ReservedCategory,
		Source:     poi.SourceReal,
		Date:       clean(e.Date),
		Address:    clean(e.Address),
		URL:        clean(e.URL),
		Venue:      clean(e.Venue),
		Prefecture: clean(e.Prefecture),
		City:       clean(e.City),
	}, true
}
