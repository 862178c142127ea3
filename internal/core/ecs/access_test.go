package ecs

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessWorld(t *testing.T) *World {
	t.Helper()
	w := NewWorld()
	Register[health](w)
	Register[tag](w)
	require.NoError(t, AddResource(w, &counter{}))
	return w
}

func TestResolvedAccess_Conflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Access
		want bool
	}{
		{
			name: "two readers",
			a:    AccessOf(Reads[health]()),
			b:    AccessOf(Reads[health]()),
			want: false,
		},
		{
			name: "writer and reader",
			a:    AccessOf(Writes[health]()),
			b:    AccessOf(Reads[health]()),
			want: true,
		},
		{
			name: "reader and writer",
			a:    AccessOf(Reads[health]()),
			b:    AccessOf(Writes[health]()),
			want: true,
		},
		{
			name: "two writers",
			a:    AccessOf(Writes[*counter]()),
			b:    AccessOf(Writes[*counter]()),
			want: true,
		},
		{
			name: "disjoint writers",
			a:    AccessOf(Writes[health]()),
			b:    AccessOf(Writes[tag]()),
			want: false,
		},
		{
			name: "structural against storage reader",
			a:    AccessOf(Structural()),
			b:    AccessOf(Reads[tag]()),
			want: true,
		},
		{
			name: "structural against resource-only system",
			a:    AccessOf(Structural()),
			b:    AccessOf(Writes[*counter]()),
			want: false,
		},
		{
			name: "empty access",
			a:    AccessOf(),
			b:    AccessOf(Writes[health]()),
			want: false,
		},
	}

	w := newAccessWorld(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ra, err := w.Resolve(tt.a)
			require.NoError(t, err)
			rb, err := w.Resolve(tt.b)
			require.NoError(t, err)

			assert.Equal(t, tt.want, ra.Conflicts(rb))
			assert.Equal(t, tt.want, rb.Conflicts(ra), "conflict is symmetric")
		})
	}
}

func TestResolve_UnregisteredType(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	_, err := w.Resolve(AccessOf(Reads[health]()))
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotRegistered))
}

func TestScope_EnforcesAccess(t *testing.T) {
	t.Parallel()

	w := newAccessWorld(t)
	access, err := w.Resolve(AccessOf(Reads[health](), Writes[*counter]()))
	require.NoError(t, err)
	s := NewScope(w, "probe", access, 7)

	assert.Equal(t, "probe", s.System())
	assert.Equal(t, uint64(7), s.Tick())

	assert.NotPanics(t, func() { ReadStorage[health](s) })
	assert.NotPanics(t, func() { WriteResource[*counter](s) })
	assert.NotPanics(t, func() { ReadResource[*counter](s) }, "write implies read")

	var accessErr *AccessError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			e, ok := r.(*AccessError)
			require.True(t, ok)
			accessErr = e
		}()
		WriteStorage[health](s)
	}()
	assert.Equal(t, "probe", accessErr.System)
	assert.Equal(t, "write", accessErr.Mode)

	assert.Panics(t, func() { ReadStorage[tag](s) })
	assert.Panics(t, func() { s.CreateEntity() })
	assert.Panics(t, func() { s.MarkForDestruction(NewEntityID(0, 1)) })
}

func TestScope_Structural(t *testing.T) {
	t.Parallel()

	w := newAccessWorld(t)
	access, err := w.Resolve(AccessOf(Structural(), Writes[health]()))
	require.NoError(t, err)
	s := NewScope(w, "spawner", access, 1)

	id := s.CreateEntity()
	WriteStorage[health](s).Insert(id, health{HP: 1})
	assert.True(t, s.Alive(id))

	s.MarkForDestruction(id)
	assert.Equal(t, 1, s.FlushDestroyQueue())
	assert.False(t, s.Alive(id))
}

func TestScope_ReadResourceValueIsACopy(t *testing.T) {
	t.Parallel()

	w := newAccessWorld(t)
	MustResource[*counter](w).N = 5
	access, err := w.Resolve(AccessOf(Reads[*counter]()))
	require.NoError(t, err)
	s := NewScope(w, "viewer", access, 1)

	c := ReadResourceValue[counter](s)
	assert.Equal(t, 5, c.N)
	c.N = 99
	assert.Equal(t, 5, MustResource[*counter](w).N, "copy does not alias the resource")

	denied, err := w.Resolve(AccessOf())
	require.NoError(t, err)
	assert.Panics(t, func() { ReadResourceValue[counter](NewScope(w, "none", denied, 1)) })
}
