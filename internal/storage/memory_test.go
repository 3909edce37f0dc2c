package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k1", []byte{0x01, 0x02}))

	v, err := m.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02}, v)
}

func TestMemory_Get_NotExists_ReturnsNilNil(t *testing.T) {
	m := NewMemory()

	v, err := m.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestMemory_Get_ReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("abc")))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	v[0] = 'X'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemory_ListAndClear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, m.Set(ctx, "b", []byte{0xBB}))

	all, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, m.Clear(ctx))

	all, err = m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemory_Delete_IsIdempotent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v")))
	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestMemory_SetManyAndDeleteMany(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SetMany(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	all, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": []byte("1"), "b": []byte("2")}, all)

	require.NoError(t, m.DeleteMany(ctx, "a", "b"))

	all, err = m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
