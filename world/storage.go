package world

import (
	"sort"
	"sync"
)

// Storage holds the components of type T, keyed by entity. When tracking is
// enabled it additionally records which entities were inserted or modified
// since the last reset, and which entities had their component removed.
type Storage[T any] struct {
	mu       sync.RWMutex
	comps    map[EntityID]T
	tracking bool
	inserted map[EntityID]struct{}
	modified map[EntityID]struct{}
	removed  []EntityID
}

func newStorage[T any]() *Storage[T] {
	return &Storage[T]{comps: make(map[EntityID]T)}
}

// Set stores the component for id, inserting or overwriting.
func (s *Storage[T]) Set(id EntityID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.comps[id]
	s.comps[id] = v
	if !s.tracking {
		return
	}
	if existed {
		// An entity inserted since the last reset stays "inserted" even
		// when written again before the reset runs.
		if _, fresh := s.inserted[id]; !fresh {
			s.modified[id] = struct{}{}
		}
	} else {
		s.inserted[id] = struct{}{}
	}
}

// Get returns the component for id.
func (s *Storage[T]) Get(id EntityID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.comps[id]
	return v, ok
}

// Remove deletes the component for id. Under tracking the removal is
// recorded until the next reset drains it.
func (s *Storage[T]) Remove(id EntityID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comps[id]; !ok {
		return
	}
	delete(s.comps, id)
	if s.tracking {
		delete(s.inserted, id)
		delete(s.modified, id)
		s.removed = append(s.removed, id)
	}
}

// Len returns the number of stored components.
func (s *Storage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comps)
}

// Each calls fn for every (entity, component) pair in ascending entity order.
func (s *Storage[T]) Each(fn func(EntityID, T)) {
	s.mu.RLock()
	ids := make([]EntityID, 0, len(s.comps))
	for id := range s.comps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	comps := make([]T, len(ids))
	for i, id := range ids {
		comps[i] = s.comps[id]
	}
	s.mu.RUnlock()
	for i, id := range ids {
		fn(id, comps[i])
	}
}

// StartTracking switches the storage into change-tracking mode. It is a
// no-op if tracking is already on.
func (s *Storage[T]) StartTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracking {
		return
	}
	s.tracking = true
	s.inserted = make(map[EntityID]struct{})
	s.modified = make(map[EntityID]struct{})
}

// Tracking reports whether change tracking is enabled.
func (s *Storage[T]) Tracking() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracking
}

// Inserted returns the entities inserted since the last reset, ascending.
func (s *Storage[T]) Inserted() []EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.inserted)
}

// Modified returns the entities modified since the last reset, ascending.
func (s *Storage[T]) Modified() []EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.modified)
}

// Removed returns the entities whose component was removed since the last
// reset, in removal order.
func (s *Storage[T]) Removed() []EntityID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]EntityID, len(s.removed))
	copy(out, s.removed)
	return out
}

// ClearTracking clears all insertion and modification markers and drains
// the removal records. This is the body of the generated reset system.
func (s *Storage[T]) ClearTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tracking {
		return
	}
	s.inserted = make(map[EntityID]struct{})
	s.modified = make(map[EntityID]struct{})
	s.removed = nil
}

func sortedIDs(set map[EntityID]struct{}) []EntityID {
	ids := make([]EntityID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
