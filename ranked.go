package geosearch

// MaxResults caps every result sequence the engine returns.
const MaxResults = 100

// RankedTopSet is the catalog's top MaxResults cities by the ranking rule,
// computed once so the empty query never touches the index.
type RankedTopSet struct {
	top []City
}

// NewRankedTopSet ranks the whole catalog and keeps the first MaxResults.
func NewRankedTopSet(c *Catalog) *RankedTopSet {
	positions := make([]uint32, c.Len())
	for i := range positions {
		positions[i] = uint32(i)
	}
	c.rank(positions)
	return &RankedTopSet{top: c.resolve(positions, MaxResults)}
}

// Top returns a copy of the first limit ranked cities.
func (r *RankedTopSet) Top(limit int) []City {
	if limit > len(r.top) {
		limit = len(r.top)
	}
	if limit <= 0 {
		return nil
	}
	out := make([]City, limit)
	copy(out, r.top)
	return out
}

// Len returns the number of precomputed cities.
func (r *RankedTopSet) Len() int {
	return len(r.top)
}
