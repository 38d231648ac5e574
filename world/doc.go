// Package world holds the shared state a built application runs against:
// singleton values, entity component storages, and installed workloads.
//
// During configuration the world has a single writer, the builder. Once a
// workload is installed, RunWorkload executes it batch by batch: systems
// inside one batch may run concurrently, and a batch never starts before
// the previous one has fully completed. That barrier is the ordering
// contract the builder's stages rely on.
package world
