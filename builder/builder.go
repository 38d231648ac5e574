package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storyai/shipyard-app/stage"
	"github.com/storyai/shipyard-app/typeid"
	"github.com/storyai/shipyard-app/world"
)

// DefaultWorkload is the name Finish installs the assembled workload under.
const DefaultWorkload = "update"

// Plugin is a composition unit. Build is invoked exactly once per distinct
// plugin type per builder; it may register systems, uniques, stages,
// dependency declarations, and further plugins on the same builder.
type Plugin interface {
	Build(b *Builder)
}

// Builder accumulates registrations from a tree of plugins and, on Finish,
// validates them and installs one ordered workload into the world.
//
// A Builder is single-threaded and used once; after Finish every
// registration method panics with ErrFinished.
type Builder struct {
	world    *world.World
	logger   *slog.Logger
	reg      *typeid.Registry
	path     typeid.Path
	stages   *stage.Assembler
	tracker  *tracker
	storages *registrar
	resets   []world.System // explicit reset systems, after tracked resets
	finished bool
}

// New creates a Builder over w with the default stage seeded, logging
// through slog.Default().
func New(w *world.World) *Builder {
	return NewWithLogger(w, slog.Default())
}

// NewWithLogger creates a Builder over w with an explicit logger.
func NewWithLogger(w *world.World, logger *slog.Logger) *Builder {
	b := &Builder{
		world:    w,
		logger:   logger,
		reg:      typeid.NewRegistry(),
		stages:   stage.NewAssembler(),
		tracker:  newTracker(),
		storages: newRegistrar(),
	}
	if err := b.stages.AddStage(stage.Default); err != nil {
		panic(err)
	}
	return b
}

// World returns the world this builder configures.
func (b *Builder) World() *world.World {
	return b.world
}

func (b *Builder) ensureOpen() {
	if b.finished {
		panic(ErrFinished)
	}
}

// intern registers the key's display name on first observation.
func (b *Builder) intern(key typeid.Key) typeid.Key {
	return b.reg.Intern(key)
}

// AddPlugin runs p.Build on this builder, recording p's type as added when
// the build returns. It panics with a DuplicatePluginError if p's type was
// already added anywhere in the tree, and with a PluginCycleError if p's
// type is already on the active nesting path. Both checks run before any
// side effect of p.Build.
//
// The plugin's identity is the dynamic type of p, so a value plugin and a
// pointer to it are distinct plugin types.
func (b *Builder) AddPlugin(p Plugin) *Builder {
	b.ensureOpen()
	key := b.intern(typeid.OfValue(p))

	if prev, ok := b.tracker.pluginAdded(key); ok {
		panic(&DuplicatePluginError{
			Plugin:   key.String(),
			Path:     b.path.Snapshot(),
			Previous: prev,
		})
	}
	if b.path.Contains(key) {
		cyclic := b.path.Snapshot()
		cyclic.Push(key)
		panic(&PluginCycleError{Plugin: key.String(), Path: cyclic})
	}

	b.path.Push(key)
	p.Build(b)
	b.tracker.recordPlugin(key, b.path.Snapshot())
	b.logger.Debug("Added plugin.", "plugin", b.path.String())
	b.path.Pop()
	return b
}

// AddUnique installs value as the singleton for its type in the world,
// overwriting any previous value, and records the current path as a
// provider for diagnostics and dependency resolution.
func (b *Builder) AddUnique(value any) *Builder {
	b.ensureOpen()
	key := b.intern(typeid.OfValue(value))
	b.world.SetSingleton(value)
	b.tracker.addUniqueProvider(key, b.path.Snapshot())
	return b
}

// DependsOnUnique declares that the current plugin needs a unique of type T
// to exist by the time Finish runs. The declaration is recorded now and
// validated at Finish, so a provider registered later still satisfies it.
func DependsOnUnique[T any](b *Builder, reason string) *Builder {
	b.ensureOpen()
	key := b.intern(typeid.Of[T]())
	b.tracker.addUniqueDependency(key, Requirement{Path: b.path.Snapshot(), Reason: reason})
	return b
}

// DependsOnPlugin declares that the current plugin requires plugin type T
// to have been fully added already. Unlike unique dependencies this is
// checked immediately; it panics with a MissingPluginDependencyError if T's
// build has not returned yet.
func DependsOnPlugin[T Plugin](b *Builder, reason string) *Builder {
	b.ensureOpen()
	key := b.intern(typeid.Of[T]())
	if err := b.tracker.addPluginDependency(key, b.path.Snapshot(), reason); err != nil {
		panic(err)
	}
	return b
}

// AddStage appends a new, empty stage after all existing stages. It panics
// with a DuplicateStageError if the name is already present.
func (b *Builder) AddStage(name string) *Builder {
	b.ensureOpen()
	if err := b.stages.AddStage(name); err != nil {
		panic(err)
	}
	return b
}

// AddSystem appends sys to the default stage.
func (b *Builder) AddSystem(sys world.System) *Builder {
	return b.AddSystemToStage(stage.Default, sys)
}

// AddSystemToStage appends sys to the named stage. It panics with an
// UnknownStageError if the stage was never added.
func (b *Builder) AddSystemToStage(name string, sys world.System) *Builder {
	b.ensureOpen()
	if err := b.stages.AddSystem(name, sys); err != nil {
		panic(err)
	}
	return b
}

// AddResetSystem appends sys to the explicit reset list. Explicit resets
// run after every stage system and after the tracked-storage resets.
func (b *Builder) AddResetSystem(sys world.System) *Builder {
	b.ensureOpen()
	b.resets = append(b.resets, sys)
	return b
}

// TrackStorage switches T's component storage into change-tracking mode and
// schedules one reset system for it. Only the first call for a given T
// flips the storage and schedules the reset; every call records its
// (path, reason) for diagnostics.
func TrackStorage[T any](b *Builder, reason string) *Builder {
	b.ensureOpen()
	key := b.intern(typeid.Of[T]())
	first := b.storages.record(key, Requirement{Path: b.path.Snapshot(), Reason: reason})
	if first {
		world.Exclusive[T](b.world).StartTracking()
		b.storages.addReset(world.System{
			Name: "reset:" + key.String(),
			Fn: func(ctx context.Context, w *world.World) error {
				world.Exclusive[T](w).ClearTracking()
				return nil
			},
		})
		b.logger.Debug("Tracking storage.", "type", key.String(), "enabledBy", b.path.String(), "reason", reason)
	}
	return b
}

// AppWorkload is an opaque handle to an installed workload.
type AppWorkload struct {
	name string
}

// Name returns the name the workload was installed under.
func (wk AppWorkload) Name() string { return wk.name }

// Run executes the workload against w.
func (wk AppWorkload) Run(ctx context.Context, w *world.World) error {
	return w.RunWorkload(ctx, wk.name)
}

// Finish validates all deferred dependencies, assembles the workload, and
// installs it under DefaultWorkload. The builder is consumed: any further
// registration panics with ErrFinished.
//
// On unmet unique dependencies it returns an UnmetUniqueDependencyError
// enumerating every missing type with every requester and reason.
func (b *Builder) Finish() (AppWorkload, *Report, error) {
	return b.FinishNamed(DefaultWorkload)
}

// FinishNamed is Finish with a caller-chosen workload name.
func (b *Builder) FinishNamed(name string) (AppWorkload, *Report, error) {
	b.ensureOpen()
	b.finished = true

	for _, key := range b.tracker.sortedProvidedKeys() {
		providers := b.tracker.providedBy[key]
		requirers := b.tracker.requiredBy[key]
		if len(providers) > 1 {
			b.logger.Warn("Unique provided by multiple plugins; only the last registered value is used at runtime.",
				"type", b.reg.Name(key),
				"providedBy", pathStrings(providers),
				"requiredBy", requirementStrings(requirers),
			)
		}
		b.logger.Debug("Unique.",
			"type", b.reg.Name(key),
			"providedBy", pathStrings(providers),
			"requiredBy", requirementStrings(requirers),
		)
	}

	if err := b.tracker.validateUniqueDependencies(); err != nil {
		return AppWorkload{}, nil, fmt.Errorf("finish workload %q: %w", name, err)
	}

	batches := b.stages.Assemble()
	batches = append(batches,
		world.Batch{Name: "tracked-resets", Systems: b.storages.resets},
		world.Batch{Name: "resets", Systems: b.resets},
	)
	b.world.InstallWorkload(name, batches)
	b.logger.Debug("Workload installed.", "name", name, "batches", len(batches))

	return AppWorkload{name: name}, b.buildReport(name), nil
}

// MustFinish is Finish for the fail-fast startup path: it panics on any
// validation error.
func (b *Builder) MustFinish() AppWorkload {
	wk, _, err := b.Finish()
	if err != nil {
		panic(err)
	}
	return wk
}

func pathStrings(paths []typeid.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

func requirementStrings(reqs []Requirement) []string {
	out := make([]string, len(reqs))
	for i, req := range reqs {
		out[i] = req.Path.String() + ": " + req.Reason
	}
	return out
}
