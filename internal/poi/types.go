package poi

import "strings"

// Category is the marker category a point is filtered by.
type Category string

const (
	CategoryEvent      Category = "event"
	CategoryRestaurant Category = "restaurant"
	CategoryHotel      Category = "hotel"
	CategoryActivity   Category = "activity"
	CategoryMuseum     Category = "museum"
	CategoryFacility   Category = "facility"
)

// ReservedCategory is assigned to every real catalog entry and never drawn
// for synthetic ones.
const ReservedCategory = CategoryEvent

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryEvent,
		CategoryRestaurant,
		CategoryHotel,
		CategoryActivity,
		CategoryMuseum,
		CategoryFacility,
	}
}

// SyntheticCategories is the default pool the sampler draws from.
func SyntheticCategories() []Category {
	return []Category{
		CategoryRestaurant,
		CategoryHotel,
		CategoryActivity,
		CategoryMuseum,
		CategoryFacility,
	}
}

// ParseCategory normalizes s and reports whether it is a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return c, false
}

// Source tags where a point came from.
type Source string

const (
	SourceReal      Source = "real"
	SourceSynthetic Source = "synthetic"
)

// GeoPoint is a WGS 84 coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a latitude/longitude box, edges inclusive.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// BoxAround returns the box extending halfDeg degrees from origin on both axes.
func BoxAround(origin GeoPoint, halfDeg float64) Bounds {
	return Bounds{
		MinLat: origin.Lat - halfDeg,
		MinLng: origin.Lng - halfDeg,
		MaxLat: origin.Lat + halfDeg,
		MaxLng: origin.Lng + halfDeg,
	}
}

// Contains reports whether p lies inside b.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// PointOfInterest is a mappable entity: a catalog event or a synthetic facility.
type PointOfInterest struct {
	Name       string   `json:"name"`
	Latitude   float64  `json:"lat"`
	Longitude  float64  `json:"lon"`
	Category   Category `json:"category"`
	Source     Source   `json:"source"`
	Date       string   `json:"date,omitempty"`
	Address    string   `json:"address,omitempty"`
	URL        string   `json:"url,omitempty"`
	Venue      string   `json:"venue,omitempty"`
	Prefecture string   `json:"prefecture,omitempty"`
	City       string   `json:"city,omitempty"`
}

// Position returns the point's coordinate.
func (p PointOfInterest) Position() GeoPoint {
	return GeoPoint{Lat: p.Latitude, Lng: p.Longitude}
}
