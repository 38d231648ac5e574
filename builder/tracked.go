package builder

import (
	"sort"

	"github.com/storyai/shipyard-app/typeid"
	"github.com/storyai/shipyard-app/world"
)

// registrar records which storages have been switched into change-tracking
// mode. The first request for a type flips the storage and schedules its
// reset system; every request, including the first, is kept as a
// (path, reason) bookkeeping entry for diagnostics.
type registrar struct {
	requests map[typeid.Key][]Requirement
	resets   []world.System // one per tracked type, in first-enable order
}

func newRegistrar() *registrar {
	return &registrar{requests: make(map[typeid.Key][]Requirement)}
}

// record adds the bookkeeping entry and reports whether this was the first
// request for key.
func (r *registrar) record(key typeid.Key, req Requirement) bool {
	first := len(r.requests[key]) == 0
	r.requests[key] = append(r.requests[key], req)
	return first
}

func (r *registrar) addReset(sys world.System) {
	r.resets = append(r.resets, sys)
}

// sortedKeys returns the tracked storage keys in name order.
func (r *registrar) sortedKeys() []typeid.Key {
	keys := make([]typeid.Key, 0, len(r.requests))
	for key := range r.requests {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
