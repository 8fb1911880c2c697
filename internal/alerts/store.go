package alerts

import (
	"sync"
	"time"
)

// Store keeps active and historical alerts in memory. Mutation is guarded
// by a single mutex; alerts themselves are immutable.
type Store struct {
	mu      sync.Mutex
	active  []Alert
	history []Alert
	now     func() time.Time
}

// NewStore returns an empty alert store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add inserts a flag unless a duplicate exists: same type, same title,
// same calendar day, in either the active set or history. Returns whether
// the alert was admitted.
func (s *Store) Add(a Alert) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.active {
		if isDuplicate(existing, a) {
			return false
		}
	}
	for _, existing := range s.history {
		if isDuplicate(existing, a) {
			return false
		}
	}
	s.active = append(s.active, a)
	return true
}

// AddAll inserts a batch and returns how many were admitted.
func (s *Store) AddAll(flags []Alert) int {
	added := 0
	for _, a := range flags {
		if s.Add(a) {
			added++
		}
	}
	return added
}

func isDuplicate(existing, candidate Alert) bool {
	if existing.Type != candidate.Type || existing.Title != candidate.Title {
		return false
	}
	ey, em, ed := existing.CreatedAt.Date()
	cy, cm, cd := candidate.CreatedAt.Date()
	return ey == cy && em == cm && ed == cd
}

// Active returns a copy of the active alerts, newest first.
func (s *Store) Active() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySorted(s.active)
}

// History returns a copy of the historical alerts, newest first.
func (s *Store) History() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySorted(s.history)
}

func copySorted(src []Alert) []Alert {
	out := make([]Alert, len(src))
	copy(out, src)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Prune applies the retention windows: active alerts past 7 days move to
// history, history past 30 days is discarded. Returns (moved, discarded).
func (s *Store) Prune() (moved, discarded int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()

	keep := s.active[:0]
	for _, a := range s.active {
		if now.Sub(a.CreatedAt) > activeRetention {
			s.history = append(s.history, a)
			moved++
		} else {
			keep = append(keep, a)
		}
	}
	s.active = keep

	kept := s.history[:0]
	for _, a := range s.history {
		if now.Sub(a.CreatedAt) > historyRetention {
			discarded++
		} else {
			kept = append(kept, a)
		}
	}
	s.history = kept
	return moved, discarded
}

// ClaimUrgent returns urgent alerts not yet dispatched and marks them
// dispatched. Used by the dispatch worker.
func (s *Store) ClaimUrgent() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var claimed []Alert
	for i := range s.active {
		if s.active[i].Priority.urgent() && !s.active[i].dispatched {
			s.active[i].dispatched = true
			claimed = append(claimed, s.active[i])
		}
	}
	return claimed
}
