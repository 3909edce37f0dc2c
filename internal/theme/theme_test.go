package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmorozov/testoria/internal/common"
	"github.com/dmorozov/testoria/internal/storage"
)

func TestCurrent_FallbackWhenUnset(t *testing.T) {
	m := NewManager(storage.NewMemory(), Dark)

	current, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Dark, current)
}

func TestCurrent_FallbackForGarbageValue(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, common.KeyTheme, []byte("sepia")))

	m := NewManager(store, Light)
	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, current)
}

func TestSet_RejectsUnknownTheme(t *testing.T) {
	m := NewManager(storage.NewMemory(), Light)
	assert.Error(t, m.Set(context.Background(), Theme("sepia")))
}

func TestToggle_FlipsAndPersists(t *testing.T) {
	store := storage.NewMemory()
	m := NewManager(store, Light)
	ctx := context.Background()

	next, err := m.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, next)

	// a fresh manager sees the persisted value
	m2 := NewManager(store, Light)
	current, err := m2.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, current)

	next, err = m2.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, next)
}
