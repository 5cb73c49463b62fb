package poi

import "sort"

// FilterSet tracks the categories a user has switched on.
// An empty set shows everything. It is not safe for concurrent use.
type FilterSet struct {
	active map[Category]struct{}
}

// NewFilterSet returns a FilterSet with the given categories active.
func NewFilterSet(active ...Category) *FilterSet {
	f := &FilterSet{active: make(map[Category]struct{}, len(active))}
	for _, c := range active {
		f.active[c] = struct{}{}
	}
	return f
}

// Toggle adds c when absent and removes it when present.
func (f *FilterSet) Toggle(c Category) {
	if _, ok := f.active[c]; ok {
		delete(f.active, c)
		return
	}
	f.active[c] = struct{}{}
}

// IsVisible reports whether a marker of category c should be shown.
func (f *FilterSet) IsVisible(c Category) bool {
	if len(f.active) == 0 {
		return true
	}
	_, ok := f.active[c]
	return ok
}

// Len returns the number of active categories.
func (f *FilterSet) Len() int {
	return len(f.active)
}

// Active returns the active categories sorted by name.
func (f *FilterSet) Active() []Category {
	out := make([]Category, 0, len(f.active))
	for c := range f.active {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Visibility returns IsVisible for each category, in order.
func (f *FilterSet) Visibility(categories []Category) []bool {
	out := make([]bool, len(categories))
	for i, c := range categories {
		out[i] = f.IsVisible(c)
	}
	return out
}

// VisibleMarkers returns IsVisible for each point's category.
func (f *FilterSet) VisibleMarkers(points []PointOfInterest) []bool {
	out := make([]bool, len(points))
	for i, p := range points {
		out[i] = f.IsVisible(p.Category)
	}
	return out
}
