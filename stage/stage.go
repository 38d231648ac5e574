// Package stage assembles named, ordered buckets of systems into the
// barrier-delimited batches of a workload. Stage names are unique; systems
// keep their registration order within a stage, and stages keep their
// insertion order in the assembled output.
package stage

import (
	"fmt"

	"github.com/storyai/shipyard-app/world"
)

// Default is the stage most systems belong to. The builder seeds it before
// any plugin code runs.
const Default = "default"

// DuplicateStageError reports an attempt to add a stage name twice.
type DuplicateStageError struct {
	Name string
}

func (e *DuplicateStageError) Error() string {
	return fmt.Sprintf("stage %q already exists", e.Name)
}

// UnknownStageError reports a system registration against a stage that was
// never added.
type UnknownStageError struct {
	Name string
}

func (e *UnknownStageError) Error() string {
	return fmt.Sprintf("unknown stage %q", e.Name)
}

// Assembler collects stages and their systems in insertion order.
type Assembler struct {
	order   []string
	systems map[string][]world.System
}

// NewAssembler creates an Assembler with no stages.
func NewAssembler() *Assembler {
	return &Assembler{systems: make(map[string][]world.System)}
}

// AddStage appends an empty stage after all existing stages.
func (a *Assembler) AddStage(name string) error {
	if _, exists := a.systems[name]; exists {
		return &DuplicateStageError{Name: name}
	}
	a.order = append(a.order, name)
	a.systems[name] = nil
	return nil
}

// AddSystem appends sys to the named stage.
func (a *Assembler) AddSystem(name string, sys world.System) error {
	if _, exists := a.systems[name]; !exists {
		return &UnknownStageError{Name: name}
	}
	a.systems[name] = append(a.systems[name], sys)
	return nil
}

// Stages returns the stage names in insertion order.
func (a *Assembler) Stages() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Systems returns the systems registered to the named stage, in
// registration order.
func (a *Assembler) Systems(name string) []world.System {
	return a.systems[name]
}

// Assemble emits one batch per stage, in stage order. Empty stages are kept
// so the batch list mirrors the declared stage structure.
func (a *Assembler) Assemble() []world.Batch {
	batches := make([]world.Batch, 0, len(a.order))
	for _, name := range a.order {
		batches = append(batches, world.Batch{Name: name, Systems: a.systems[name]})
	}
	return batches
}
