package space

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateLookup(t *testing.T) {
	r := NewRegistry()

	p, err := r.Create(7)
	require.NoError(t, err)
	require.Equal(t, 7, p.ID)
	require.True(t, p.Empty())

	got, err := r.Lookup(7)
	require.NoError(t, err)
	require.Same(t, p, got)

	_, err = r.Lookup(8)
	require.ErrorIs(t, err, ErrProcessNotFound)
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	first, err := r.Create(1)
	require.NoError(t, err)
	first.add(Extent{0, 10})

	_, err = r.Create(1)
	require.ErrorIs(t, err, ErrDuplicateProcess)

	// The original record and its extents survive.
	got, err := r.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, []Extent{{0, 10}}, got.Extents())
	require.Equal(t, 1, r.Len())
}

func TestRegistry_RemoveIfEmpty(t *testing.T) {
	r := NewRegistry()
	p, err := r.Create(3)
	require.NoError(t, err)
	p.add(Extent{0, 10})

	require.False(t, r.RemoveIfEmpty(3), "process still owns memory")
	require.Equal(t, 1, r.Len())

	_, ok := p.take(0)
	require.True(t, ok)
	require.True(t, r.RemoveIfEmpty(3))
	require.Zero(t, r.Len())

	require.False(t, r.RemoveIfEmpty(3), "already gone")
}

func TestRegistry_ProcessesSortedByID(t *testing.T) {
	r := NewRegistry()
	for _, pid := range []int{42, -1, 7, 100} {
		_, err := r.Create(pid)
		require.NoError(t, err)
	}

	var ids []int
	for _, p := range r.Processes() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []int{-1, 7, 42, 100}, ids)

	require.True(t, r.Remove(7))
	require.False(t, r.Remove(7))
	require.Equal(t, 3, r.Len())
}

func TestProcess_TakeAndPop(t *testing.T) {
	p := &Process{ID: 1}
	p.add(Extent{0, 10})
	p.add(Extent{50, 20})
	p.add(Extent{10, 5})
	require.Equal(t, 35, p.AllocatedBytes())

	_, ok := p.take(55)
	require.False(t, ok, "only start addresses identify an extent")
	require.Equal(t, 3, p.Len())

	e, ok := p.take(50)
	require.True(t, ok)
	require.Equal(t, Extent{50, 20}, e)
	require.Equal(t, []Extent{{0, 10}, {10, 5}}, p.Extents())

	e, ok = p.pop()
	require.True(t, ok)
	require.Equal(t, Extent{10, 5}, e, "pop returns the most recent allocation")

	_, ok = p.pop()
	require.True(t, ok)
	_, ok = p.pop()
	require.False(t, ok)
	require.True(t, p.Empty())
}
