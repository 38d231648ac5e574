package world

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/storyai/shipyard-app/ctxlog"
)

// RunWorkload executes a previously installed workload. Each batch runs to
// completion before the next begins; systems within a batch run
// concurrently and the first failure aborts the run with the failing
// system's name wrapped in the returned error.
func (w *World) RunWorkload(ctx context.Context, name string) error {
	batches, ok := w.Workload(name)
	if !ok {
		return &UnknownWorkloadError{Name: name}
	}

	logger := ctxlog.FromContext(ctx).With("workload", name, "runID", uuid.NewString())
	for _, batch := range batches {
		if len(batch.Systems) == 0 {
			continue
		}
		logger.Debug("Running workload batch.", "batch", batch.Name, "systems", len(batch.Systems))

		g, gctx := errgroup.WithContext(ctx)
		for _, sys := range batch.Systems {
			sys := sys
			g.Go(func() error {
				if err := sys.Fn(gctx, w); err != nil {
					return fmt.Errorf("system %q: %w", sys.Name, err)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			logger.Error("Workload batch failed.", "batch", batch.Name, "error", err)
			return fmt.Errorf("workload %q: %w", name, err)
		}
	}
	logger.Debug("Workload complete.")
	return nil
}
