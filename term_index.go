package geosearch

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/text/unicode/norm"
)

// normalize composes s into NFC and lowercases it, so that precomposed and
// decomposed spellings ("Zürich") index and query identically.
func normalize(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// tokenize splits normalized text on whitespace.
func tokenize(s string) []string {
	return strings.Fields(normalize(s))
}

// searchTerms returns the deduplicated tokens of a city's searchable text in
// first-seen order. Empty fields contribute nothing.
func searchTerms(fields ...string) []string {
	var terms []string
	seen := make(map[string]struct{})
	for _, f := range fields {
		for _, tok := range tokenize(f) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			terms = append(terms, tok)
		}
	}
	return terms
}

// TermIndex is an inverted index from search term to the set of catalog
// positions whose searchable text contains that term. It is built once and
// never modified.
type TermIndex struct {
	postings map[string]*roaring.Bitmap
	terms    []string // sorted keys of postings
}

// NewTermIndex indexes every search term of every city in the catalog.
func NewTermIndex(c *Catalog) *TermIndex {
	idx := &TermIndex{postings: make(map[string]*roaring.Bitmap)}
	for pos, terms := range c.terms {
		for _, t := range terms {
			bm, ok := idx.postings[t]
			if !ok {
				bm = roaring.New()
				idx.postings[t] = bm
			}
			bm.Add(uint32(pos))
		}
	}

	idx.terms = make([]string, 0, len(idx.postings))
	for t, bm := range idx.postings {
		bm.RunOptimize()
		idx.terms = append(idx.terms, t)
	}
	sort.Strings(idx.terms)
	return idx
}

// Len returns the number of distinct terms.
func (idx *TermIndex) Len() int {
	return len(idx.terms)
}

// Postings returns a copy of the exact posting set for term, or nil.
func (idx *TermIndex) Postings(term string) *roaring.Bitmap {
	bm, ok := idx.postings[term]
	if !ok {
		return nil
	}
	return bm.Clone()
}

// MatchingSubstring returns the union of the posting sets of every indexed
// term containing term as a substring, so "ondon" matches "london". term must
// already be normalized. The result is owned by the caller.
//
// Cost is linear in the number of distinct terms.
func (idx *TermIndex) MatchingSubstring(term string) *roaring.Bitmap {
	var matched []*roaring.Bitmap
	for _, t := range idx.terms {
		if strings.Contains(t, term) {
			matched = append(matched, idx.postings[t])
		}
	}
	switch len(matched) {
	case 0:
		return roaring.New()
	case 1:
		return matched[0].Clone()
	}
	return roaring.FastOr(matched...)
}
