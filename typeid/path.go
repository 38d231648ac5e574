package typeid

import "strings"

// Path is the ordered chain of plugin keys currently being built, outermost
// first. A Path never contains the same key twice while open; the builder
// checks Contains before every Push to keep that invariant.
type Path struct {
	keys []Key
}

// Push appends k to the end of the path.
func (p *Path) Push(k Key) {
	p.keys = append(p.keys, k)
}

// Pop removes the most recently pushed key. Popping an empty path is a
// programmer error and panics.
func (p *Path) Pop() {
	if len(p.keys) == 0 {
		panic("typeid: pop of empty path")
	}
	p.keys = p.keys[:len(p.keys)-1]
}

// Contains reports whether k is anywhere on the path.
func (p Path) Contains(k Key) bool {
	for _, have := range p.keys {
		if have == k {
			return true
		}
	}
	return false
}

// Len returns the current nesting depth.
func (p Path) Len() int {
	return len(p.keys)
}

// Snapshot returns an independent copy of the path as it is right now.
// Snapshots are stored as provenance tags alongside every registration, so
// they must not alias the live stack.
func (p Path) Snapshot() Path {
	keys := make([]Key, len(p.keys))
	copy(keys, p.keys)
	return Path{keys: keys}
}

// String renders the chain for diagnostics, e.g. "app -> physics.Plugin".
// The root (empty) path renders as "app".
func (p Path) String() string {
	if len(p.keys) == 0 {
		return "app"
	}
	parts := make([]string, 0, len(p.keys)+1)
	parts = append(parts, "app")
	for _, k := range p.keys {
		parts = append(parts, k.String())
	}
	return strings.Join(parts, " -> ")
}
