package typeid

import "reflect"

// Key is an opaque, comparable identity for a single Go type. Two Keys are
// equal if and only if they identify the same type.
type Key struct {
	rt reflect.Type
}

// Of returns the Key for the type parameter T.
func Of[T any]() Key {
	return Key{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// OfValue returns the Key for the dynamic type of v. A pointer and its
// element type yield distinct keys.
func OfValue(v any) Key {
	return Key{rt: reflect.TypeOf(v)}
}

// String returns the type's name, qualified by its package where one exists.
func (k Key) String() string {
	if k.rt == nil {
		return "<nil>"
	}
	return k.rt.String()
}

// Registry interns keys and keeps the display-name table used by
// diagnostics. Names are recorded the first time a key is observed.
type Registry struct {
	names map[Key]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[Key]string)}
}

// Intern records the display name for k if it has not been seen before and
// returns k unchanged.
func (r *Registry) Intern(k Key) Key {
	if _, ok := r.names[k]; !ok {
		r.names[k] = k.String()
	}
	return k
}

// Name returns the recorded display name for k, or k.String() if the key
// was never interned.
func (r *Registry) Name(k Key) string {
	if name, ok := r.names[k]; ok {
		return name
	}
	return k.String()
}

// Len reports how many distinct keys have been interned.
func (r *Registry) Len() int {
	return len(r.names)
}
