package poi

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	// KmPerDegree is the length of one degree of latitude.
	KmPerDegree = 111.32

	// clampMargin is the widest offset used when pulling a point back inside the box.
	clampMargin = 0.05

	syntheticVenue      = "dummy"
	syntheticPrefecture = "東京都"
)

// Sampler generates synthetic points uniformly over a disk around an origin.
type Sampler struct {
	origin     GeoPoint
	radiusKm   float64
	bounds     Bounds
	categories []Category
	rnd        *rand.Rand
}

// NewSampler constructs a Sampler. The reserved category is removed from
// categories; an empty pool falls back to SyntheticCategories.
func NewSampler(origin GeoPoint, radiusKm float64, bounds Bounds, categories []Category, rnd *rand.Rand) *Sampler {
	pool := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c != ReservedCategory && c != "" {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = SyntheticCategories()
	}

	return &Sampler{
		origin:     origin,
		radiusKm:   radiusKm,
		bounds:     bounds,
		categories: pool,
		rnd:        rnd,
	}
}

// Bounds returns the box every generated point lies in.
func (s *Sampler) Bounds() Bounds {
	return s.bounds
}

// Generate returns count synthetic points.
func (s *Sampler) Generate(count int) []PointOfInterest {
	if count <= 0 {
		return []PointOfInterest{}
	}

	lngKmPerDegree := KmPerDegree * math.Cos(s.origin.Lat*math.Pi/180)

	points := make([]PointOfInterest, 0, count)
	for i := 0; i < count; i++ {
		r := s.radiusKm * math.Sqrt(s.rnd.Float64())
		theta := 2 * math.Pi * s.rnd.Float64()

		lat := s.origin.Lat + r*math.Sin(theta)/KmPerDegree
		lng := s.origin.Lng + r*math.Cos(theta)/lngKmPerDegree

		lat = s.clamp(lat, s.bounds.MinLat, s.bounds.MaxLat)
		lng = s.clamp(lng, s.bounds.MinLng, s.bounds.MaxLng)

		points = append(points, PointOfInterest{
			Name:       fmt.Sprintf("Pet facility %d", i+1),
			Latitude:   lat,
			Longitude:  lng,
			Category:   s.categories[s.rnd.IntN(len(s.categories))],
			Source:     SourceSynthetic,
			Address:    "Pet facility near Tokyo",
			Venue:      syntheticVenue,
			Prefecture: syntheticPrefecture,
			URL:        "#",
		})
	}

	return points
}

// clamp pulls v back to a random offset strictly inside [lo, hi] when it
// falls outside. The offset lies in (0, margin], so the edge itself is never returned.
func (s *Sampler) clamp(v, lo, hi float64) float64 {
	if v >= lo && v <= hi {
		return v
	}

	margin := math.Min(clampMargin, (hi-lo)/2)
	offset := margin * (1 - s.rnd.Float64())

	if v < lo {
		return lo + offset
	}
	return hi - offset
}
