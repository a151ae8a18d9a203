package geosearch

import (
	"sync"
	"time"
)

// DefaultTypeaheadDelay is the quiet period after the last keystroke before a
// search runs.
const DefaultTypeaheadDelay = 300 * time.Millisecond

// Typeahead debounces search-as-you-type input in front of an Engine. Each
// call to Search supersedes any pending one; only the latest query's results
// are ever delivered. The engine itself stays synchronous and lock-free.
//
// Deliveries are serialized with Search and Stop: once either returns, no
// result set from an earlier query is delivered. A deliver callback must
// therefore not call Search or Stop on the same Typeahead synchronously.
type Typeahead struct {
	engine *Engine
	delay  time.Duration

	// deliverMu is held across the final sequence check and deliver, and
	// taken before mu whenever seq is bumped.
	deliverMu sync.Mutex

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64

	// searched runs between the search and its delivery. Tests only.
	searched func()
}

// NewTypeahead returns a Typeahead over e. A non-positive delay selects
// DefaultTypeaheadDelay.
func NewTypeahead(e *Engine, delay time.Duration) *Typeahead {
	if delay <= 0 {
		delay = DefaultTypeaheadDelay
	}
	return &Typeahead{engine: e, delay: delay}
}

// Search schedules a search after the debounce delay and calls deliver with
// the results on a separate goroutine. An empty countryCode searches globally.
func (t *Typeahead) Search(countryCode, query string, deliver func([]City)) {
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
	seq := t.seq

	t.timer = time.AfterFunc(t.delay, func() {
		if !t.current(seq) {
			return
		}
		var results []City
		if countryCode == "" {
			results = t.engine.SearchGlobal(query)
		} else {
			results = t.engine.SearchInCountry(countryCode, query)
		}
		if t.searched != nil {
			t.searched()
		}

		t.deliverMu.Lock()
		defer t.deliverMu.Unlock()
		if t.current(seq) {
			deliver(results)
		}
	})
}

// Stop cancels any pending search.
func (t *Typeahead) Stop() {
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
}

func (t *Typeahead) current(seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return seq == t.seq
}
