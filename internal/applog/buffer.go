package applog

import "urlclient/internal/domain"

// ring is a fixed-capacity log buffer. Once full, every push overwrites the
// oldest entry.
type ring struct {
	entries []domain.LogEntry
	head    int
	size    int
}

func newRing(capacity int) *ring {
	return &ring{entries: make([]domain.LogEntry, capacity)}
}

func (r *ring) push(e domain.LogEntry) {
	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.size < len(r.entries) {
		r.size++
	}
}

// each visits entries newest first until fn returns false.
func (r *ring) each(fn func(domain.LogEntry) bool) {
	n := len(r.entries)
	for i := range r.size {
		idx := (r.head - 1 - i + n) % n
		if !fn(r.entries[idx]) {
			return
		}
	}
}

func (r *ring) reset() {
	clear(r.entries)
	r.head = 0
	r.size = 0
}

func (r *ring) len() int {
	return r.size
}
