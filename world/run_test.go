package world

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends system names in completion order, for barrier assertions.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) system(name string) System {
	return System{Name: name, Fn: func(ctx context.Context, w *World) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.names = append(r.names, name)
		return nil
	}}
}

func TestRunWorkloadUnknownName(t *testing.T) {
	w := New()
	err := w.RunWorkload(context.Background(), "missing")
	require.Error(t, err)
	var unknown *UnknownWorkloadError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func TestRunWorkloadBatchBarrier(t *testing.T) {
	w := New()
	rec := &recorder{}
	w.InstallWorkload("update", []Batch{
		{Name: "first", Systems: []System{rec.system("a"), rec.system("b")}},
		{Name: "second", Systems: []System{rec.system("c")}},
		{Name: "empty"},
		{Name: "third", Systems: []System{rec.system("d")}},
	})

	require.NoError(t, w.RunWorkload(context.Background(), "update"))
	require.Len(t, rec.names, 4)

	// a and b may complete in either order, but both precede c, and c
	// precedes d.
	pos := make(map[string]int, len(rec.names))
	for i, name := range rec.names {
		pos[name] = i
	}
	assert.Less(t, pos["a"], pos["c"])
	assert.Less(t, pos["b"], pos["c"])
	assert.Less(t, pos["c"], pos["d"])
}

func TestRunWorkloadFailureStopsLaterBatches(t *testing.T) {
	w := New()
	rec := &recorder{}
	boom := errors.New("boom")
	failing := System{Name: "explode", Fn: func(ctx context.Context, w *World) error {
		return boom
	}}
	w.InstallWorkload("update", []Batch{
		{Name: "first", Systems: []System{failing}},
		{Name: "second", Systems: []System{rec.system("never")}},
	})

	err := w.RunWorkload(context.Background(), "update")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `system "explode"`)
	assert.Empty(t, rec.names)
}

func TestSystemNames(t *testing.T) {
	w := New()
	rec := &recorder{}
	w.InstallWorkload("update", []Batch{
		{Name: "default", Systems: []System{rec.system("a"), rec.system("b")}},
		{Name: "resets", Systems: []System{rec.system("r")}},
	})

	names, ok := w.SystemNames("update")
	require.True(t, ok)
	if diff := cmp.Diff([]string{"a", "b", "r"}, names); diff != "" {
		t.Errorf("system order mismatch (-want +got):\n%s", diff)
	}

	_, ok = w.SystemNames("other")
	assert.False(t, ok)
}
