package world

import (
	"context"
	"fmt"
)

// System is a named schedulable unit of work. The world never inspects a
// system beyond running it; sequencing and labeling happen at build time.
type System struct {
	Name string
	Fn   func(ctx context.Context, w *World) error
}

// Batch is one barrier-delimited group of systems inside a workload.
// Systems within a batch may run concurrently; batches run strictly in
// order.
type Batch struct {
	Name    string
	Systems []System
}

// UnknownWorkloadError is returned by RunWorkload for a name that was never
// installed.
type UnknownWorkloadError struct {
	Name string
}

func (e *UnknownWorkloadError) Error() string {
	return fmt.Sprintf("unknown workload %q", e.Name)
}

// InstallWorkload registers the ordered batches under name, replacing any
// workload previously installed under the same name.
func (w *World) InstallWorkload(name string, batches []Batch) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.workloads[name]; exists {
		w.logger.Debug("Replacing installed workload.", "name", name)
	}
	w.workloads[name] = batches
}

// Workload returns the installed batches for name.
func (w *World) Workload(name string) ([]Batch, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	batches, ok := w.workloads[name]
	return batches, ok
}

// SystemNames flattens the installed workload into its full execution
// order. It exists for diagnostics and tests.
func (w *World) SystemNames(name string) ([]string, bool) {
	batches, ok := w.Workload(name)
	if !ok {
		return nil, false
	}
	var names []string
	for _, b := range batches {
		for _, sys := range b.Systems {
			names = append(names, sys.Name)
		}
	}
	return names, true
}
