package favorites

import (
	"strings"

	"github.com/neexbeast/petmap/internal/poi"
)

// ListType names one of the user's saved lists.
type ListType string

const (
	ListFavorite ListType = "favorite"
	ListWant     ListType = "want"
	ListPlan     ListType = "plan"
	ListStar     ListType = "star"
)

// ListTypes returns every list in menu order.
func ListTypes() []ListType {
	return []ListType{ListFavorite, ListWant, ListPlan, ListStar}
}

// ParseListType normalizes s. An empty string means ListFavorite.
func ParseListType(s string) (ListType, bool) {
	lt := ListType(strings.ToLower(strings.TrimSpace(s)))
	if lt == "" {
		return ListFavorite, true
	}
	for _, known := range ListTypes() {
		if lt == known {
			return lt, true
		}
	}
	return lt, false
}

// OrDefault returns l, or ListFavorite when l is empty.
func (l ListType) OrDefault() ListType {
	if l == "" {
		return ListFavorite
	}
	return l
}

// MessageKey is the translation key for the list's menu label.
func (l ListType) MessageKey() string {
	return "save_" + string(l)
}

// Entry is a point snapshot saved to one list.
type Entry struct {
	poi.PointOfInterest
	ListType ListType `json:"listType"`
}

// Key identifies an entry; two entries with equal keys are duplicates.
type Key struct {
	Name      string   `json:"name"`
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lon"`
	ListType  ListType `json:"listType"`
}

// Key returns e's uniqueness key. An empty list type counts as ListFavorite.
func (e Entry) Key() Key {
	return Key{Name: e.Name, Latitude: e.Latitude, Longitude: e.Longitude, ListType: e.ListType.OrDefault()}
}

// Normalized returns e with an empty list type set to ListFavorite and an
// empty category set to the reserved catalog category.
func (e Entry) Normalized() Entry {
	e.ListType = e.ListType.OrDefault()
	if e.Category == "" {
		e.Category = poi.ReservedCategory
	}
	return e
}

// Append adds e, normalized, unless an entry with the same key exists.
// It returns the resulting list and whether e was added.
func Append(entries []Entry, e Entry) ([]Entry, bool) {
	e = e.Normalized()
	k := e.Key()
	for _, existing := range entries {
		if existing.Key() == k {
			return entries, false
		}
	}
	return append(entries, e), true
}

// Filter returns the entries on list lt, or all entries when lt is empty.
func Filter(entries []Entry, lt ListType) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if lt == "" || e.ListType.OrDefault() == lt {
			out = append(out, e)
		}
	}
	return out
}
