package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayGetSet(t *testing.T) {
	ctx := context.Background()
	gw := New()

	_, ok, err := gw.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, gw.Set(ctx, "users", "[]"))
	v, ok, err := gw.Get(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	assert.Equal(t, 1, gw.Len())
}
