// Package lifetime provides the lifetime plugin: entities carrying a
// Lifetime component are despawned after their remaining frame budget runs
// out. The Lifetime storage is change-tracked so downstream systems can see
// expirations before the end-of-run reset clears them.
package lifetime

import (
	"context"

	"github.com/storyai/shipyard-app/builder"
	"github.com/storyai/shipyard-app/plugins/frame"
	"github.com/storyai/shipyard-app/world"
)

// Lifetime is the number of runs an entity has left before it is removed.
type Lifetime struct {
	Remaining int
}

// Plugin registers the tick system and switches the Lifetime storage into
// tracking mode. It requires the frame plugin: the expiry budget is counted
// in frames.
type Plugin struct{}

// Build implements builder.Plugin.
func (Plugin) Build(b *builder.Builder) {
	builder.DependsOnPlugin[frame.Plugin](b, "lifetimes are counted in frames")
	builder.DependsOnUnique[frame.Count](b, "tick reads the current frame")
	builder.TrackStorage[Lifetime](b, "expiry removals must be observable until reset")
	b.AddSystem(world.System{Name: "lifetime.tick", Fn: tick})
}

func tick(ctx context.Context, w *world.World) error {
	storage := world.Exclusive[Lifetime](w)
	storage.Each(func(id world.EntityID, lt Lifetime) {
		lt.Remaining--
		if lt.Remaining <= 0 {
			storage.Remove(id)
			return
		}
		storage.Set(id, lt)
	})
	return nil
}
