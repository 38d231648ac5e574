package stage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyai/shipyard-app/world"
)

func named(name string) world.System {
	return world.System{Name: name}
}

func TestAddStage(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.AddStage(Default))
	require.NoError(t, a.AddStage("render"))
	assert.Equal(t, []string{Default, "render"}, a.Stages())

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := a.AddStage("render")
		require.Error(t, err)
		var dup *DuplicateStageError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "render", dup.Name)
	})
}

func TestAddSystem(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.AddStage(Default))

	require.NoError(t, a.AddSystem(Default, named("a")))
	require.NoError(t, a.AddSystem(Default, named("b")))

	err := a.AddSystem("missing", named("c"))
	var unknown *UnknownStageError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func TestAssembleOrder(t *testing.T) {
	a := NewAssembler()
	require.NoError(t, a.AddStage(Default))
	require.NoError(t, a.AddStage("late"))

	require.NoError(t, a.AddSystem(Default, named("a")))
	require.NoError(t, a.AddSystem("late", named("c")))
	require.NoError(t, a.AddSystem(Default, named("b")))

	batches := a.Assemble()
	require.Len(t, batches, 2)

	var got []string
	for _, b := range batches {
		for _, sys := range b.Systems {
			got = append(got, sys.Name)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("assembled order mismatch (-want +got):\n%s", diff)
	}

	t.Run("empty stages are kept as batches", func(t *testing.T) {
		a := NewAssembler()
		require.NoError(t, a.AddStage(Default))
		batches := a.Assemble()
		require.Len(t, batches, 1)
		assert.Equal(t, Default, batches[0].Name)
		assert.Empty(t, batches[0].Systems)
	})
}
