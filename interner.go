package geosearch

// stringInterner hands out one canonical copy of each distinct string.
//
// A catalog of a few hundred thousand cities repeats the same ~250 country
// codes and a few thousand region names over and over; interning lets every
// City share a single backing array per distinct value. The interner is owned
// by one catalog and only used while that catalog is built, so it needs no
// locking.
type stringInterner struct {
	index map[string]string
}

// newStringInterner creates an interner with the given capacity hint.
func newStringInterner(capacity int) *stringInterner {
	return &stringInterner{index: make(map[string]string, capacity)}
}

// intern returns the canonical copy of s. The empty string is returned as is.
func (si *stringInterner) intern(s string) string {
	if s == "" {
		return ""
	}
	if canonical, ok := si.index[s]; ok {
		return canonical
	}
	si.index[s] = s
	return s
}

// count returns the number of distinct non-empty strings seen.
func (si *stringInterner) count() int {
	return len(si.index)
}
