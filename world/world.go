package world

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/storyai/shipyard-app/typeid"
)

// EntityID identifies a single entity. IDs are never reused within one World.
type EntityID uint64

// World is the shared state container. All methods are safe for concurrent
// use; during the configuration phase the builder is expected to be the
// only writer.
type World struct {
	mu         sync.RWMutex
	logger     *slog.Logger
	nextEntity atomic.Uint64
	singletons map[typeid.Key]any
	storages   map[typeid.Key]any
	workloads  map[string][]Batch
}

// New creates an empty World logging through slog.Default().
func New() *World {
	return NewWithLogger(slog.Default())
}

// NewWithLogger creates an empty World with an explicit logger.
func NewWithLogger(logger *slog.Logger) *World {
	return &World{
		logger:     logger,
		singletons: make(map[typeid.Key]any),
		storages:   make(map[typeid.Key]any),
		workloads:  make(map[string][]Batch),
	}
}

// Spawn allocates a fresh entity ID.
func (w *World) Spawn() EntityID {
	return EntityID(w.nextEntity.Add(1))
}

// SetSingleton installs v as the singleton value for its dynamic type,
// overwriting any previous value of that type.
func (w *World) SetSingleton(v any) {
	key := typeid.OfValue(v)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.singletons[key]; exists {
		w.logger.Debug("Overwriting singleton.", "type", key.String())
	}
	w.singletons[key] = v
}

// Singleton returns the singleton value of type T, if one was installed.
func Singleton[T any](w *World) (T, bool) {
	key := typeid.Of[T]()
	w.mu.RLock()
	v, ok := w.singletons[key]
	w.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Exclusive returns the component storage for T, creating it on first use.
// The caller owns write access for the duration of its use; the storage
// itself guards concurrent readers.
func Exclusive[T any](w *World) *Storage[T] {
	key := typeid.Of[T]()
	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.storages[key]; ok {
		return s.(*Storage[T])
	}
	s := newStorage[T]()
	w.storages[key] = s
	return s
}
