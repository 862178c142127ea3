package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPool_CreateDestroy(t *testing.T) {
	t.Parallel()

	p := NewEntityPool()
	a := p.Create()
	b := p.Create()

	assert.False(t, a.IsZero(), "first entity must not be the zero id")
	assert.NotEqual(t, a, b)
	assert.True(t, p.Alive(a))
	assert.Equal(t, 2, p.Live())

	require.True(t, p.Destroy(a))
	assert.False(t, p.Alive(a))
	assert.False(t, p.Destroy(a), "second destroy is a no-op")
	assert.Equal(t, 1, p.Live())
}

func TestEntityPool_RecycleBumpsGeneration(t *testing.T) {
	t.Parallel()

	p := NewEntityPool()
	old := p.Create()
	p.Destroy(old)

	reborn := p.Create()
	assert.Equal(t, old.Index(), reborn.Index(), "index is recycled")
	assert.Equal(t, old.Generation()+1, reborn.Generation())
	assert.False(t, p.Alive(old), "stale id stays dead")
	assert.True(t, p.Alive(reborn))
}

func TestEntityPool_UnknownIndex(t *testing.T) {
	t.Parallel()

	p := NewEntityPool()
	assert.False(t, p.Alive(NewEntityID(42, 1)))
	assert.False(t, p.Destroy(NewEntityID(42, 1)))
}
