package audit

import "sync"

// History is the append-only, insertion-ordered record of audits. Readers get
// copies, so results held by the history never change.
type History struct {
	mu      sync.RWMutex
	results []Result
}

// NewHistory returns a history seeded with previously recorded results, oldest first.
func NewHistory(seed ...Result) *History {
	h := &History{results: make([]Result, 0, len(seed))}
	for _, r := range seed {
		h.results = append(h.results, r.clone())
	}
	return h
}

// Append records a result as the newest entry.
func (h *History) Append(r Result) {
	r = r.clone()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = append(h.results, r)
}

// Latest returns the most recently appended result.
func (h *History) Latest() (Result, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.results) == 0 {
		return Result{}, false
	}
	return h.results[len(h.results)-1].clone(), true
}

// All returns every result in insertion order.
func (h *History) All() []Result {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Result, len(h.results))
	for i, r := range h.results {
		out[i] = r.clone()
	}
	return out
}

// Find returns the result with the given id.
func (h *History) Find(id string) (Result, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for i := len(h.results) - 1; i >= 0; i-- {
		if h.results[i].ID == id {
			return h.results[i].clone(), true
		}
	}
	return Result{}, false
}

// Len returns the number of recorded results.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.results)
}
