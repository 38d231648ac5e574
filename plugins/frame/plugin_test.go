package frame

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyai/shipyard-app/builder"
	"github.com/storyai/shipyard-app/world"
)

func TestAdvance(t *testing.T) {
	w := world.New()
	b := builder.New(w)
	b.AddPlugin(Plugin{})
	wk, _, err := b.Finish()
	require.NoError(t, err)

	c, ok := world.Singleton[Count](w)
	require.True(t, ok)
	assert.Equal(t, uint64(0), c.Value)

	ctx := context.Background()
	require.NoError(t, wk.Run(ctx, w))
	require.NoError(t, wk.Run(ctx, w))

	c, _ = world.Singleton[Count](w)
	assert.Equal(t, uint64(2), c.Value)
}
