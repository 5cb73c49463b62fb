package poi

// Merge returns the real catalog followed by the synthetic points.
// Real entries without a category are tagged with the reserved category and
// marked as real; the inputs are not modified.
func Merge(catalog, synthetic []PointOfInterest) []PointOfInterest {
	out := make([]PointOfInterest, 0, len(catalog)+len(synthetic))
	for _, p := range catalog {
		if p.Category == "" {
			p.Category = ReservedCategory
		}
		if p.Source == "" {
			p.Source = SourceReal
		}
		out = append(out, p)
	}
	for _, p := range synthetic {
		if p.Category == "" {
			p.Category = CategoryFacility
		}
		out = append(out, p)
	}
	return out
}
