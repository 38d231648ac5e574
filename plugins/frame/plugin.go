// Package frame provides the frame counter plugin: a Count unique advanced
// once per workload run.
package frame

import (
	"context"

	"github.com/storyai/shipyard-app/builder"
	"github.com/storyai/shipyard-app/world"
)

// Count is the number of completed workload runs.
type Count struct {
	Value uint64
}

// Plugin registers the Count unique and the advance system.
type Plugin struct{}

// Build implements builder.Plugin.
func (Plugin) Build(b *builder.Builder) {
	b.AddUnique(Count{})
	b.AddSystem(world.System{Name: "frame.advance", Fn: advance})
}

func advance(ctx context.Context, w *world.World) error {
	c, _ := world.Singleton[Count](w)
	c.Value++
	w.SetSingleton(c)
	return nil
}
