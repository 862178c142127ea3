package ecs

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ N int }

func TestWorld_DestroyRemovesAllComponents(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	hs := Register[health](w)
	ts := Register[tag](w)

	id := w.CreateEntity()
	hs.Insert(id, health{HP: 1})
	ts.Insert(id, tag{})

	w.Destroy(id)
	assert.False(t, hs.Has(id))
	assert.False(t, ts.Has(id))
	assert.False(t, w.Alive(id))

	assert.NotPanics(t, func() { w.Destroy(id) }, "destroying a dead entity is idempotent")
}

func TestWorld_RegisterIsIdempotent(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	a := Register[health](w)
	b := Register[health](w)
	assert.Same(t, a, b)

	got, ok := StorageOf[health](w)
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = StorageOf[tag](w)
	assert.False(t, ok)
}

func TestWorld_Resources(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	c := &counter{N: 3}
	require.NoError(t, AddResource(w, c))

	err := AddResource(w, &counter{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrAlreadyRegistered))

	got, ok := ResourceOf[*counter](w)
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Same(t, c, MustResource[*counter](w))

	assert.Panics(t, func() { MustResource[*health](w) })
	assert.Panics(t, func() { Register[*counter](w) }, "resource type cannot become a storage")
}

func TestWorld_InsertHelper(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	Register[health](w)
	id := w.CreateEntity()

	assert.True(t, Insert(w, id, health{HP: 4}))
	assert.False(t, Insert(w, id, tag{}), "unregistered component")
}

func TestWorld_FlushDestroyQueue(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	hs := Register[health](w)
	a, b := w.CreateEntity(), w.CreateEntity()
	hs.Insert(a, health{})
	hs.Insert(b, health{})

	w.MarkForDestruction(a)
	w.MarkForDestruction(a)
	assert.Equal(t, 2, w.Pending())

	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.Equal(t, 0, w.Pending())
	assert.False(t, w.Alive(a))
	assert.True(t, w.Alive(b))
	assert.Equal(t, 1, hs.Len())
}
