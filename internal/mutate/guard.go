// ABOUTME: Per-entity in-flight guard for optimistic mutations
// ABOUTME: Drops overlapping mutations on the same record instead of queueing them

package mutate

import "sync"

// Guard tracks which records have a mutation outstanding. While one
// is in flight, further mutations on the same record are ignored so
// a rollback always restores a coherent value.
type Guard struct {
	mu       sync.Mutex
	inflight map[int]bool
}

// NewGuard creates an empty guard
func NewGuard() *Guard {
	return &Guard{inflight: make(map[int]bool)}
}

// Begin marks the record as busy. It returns false, and does nothing,
// if a mutation on the record is already in flight.
func (g *Guard) Begin(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inflight[id] {
		return false
	}
	g.inflight[id] = true
	return true
}

// End releases the record after its request settled
func (g *Guard) End(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, id)
}

// Busy reports whether the record has a mutation in flight
func (g *Guard) Busy(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inflight[id]
}
