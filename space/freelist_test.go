package space

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// newFreeListOf builds a free list holding exactly the given extents.
func newFreeListOf(t *testing.T, extents ...Extent) *FreeList {
	t.Helper()
	fl := NewFreeList(0)
	for _, e := range extents {
		fl.Insert(e)
	}
	require.Equal(t, len(extents), fl.Len())
	return fl
}

func requireExtents(t *testing.T, want, got []Extent) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extents mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFreeList_SingleExtent(t *testing.T) {
	fl := NewFreeList(65536)
	requireExtents(t, []Extent{{0, 65536}}, fl.Extents())
	require.Equal(t, 65536, fl.FreeBytes())
	require.Equal(t, 65536, fl.Largest())
}

func TestNewFreeList_NonPositiveIsEmpty(t *testing.T) {
	require.Zero(t, NewFreeList(0).Len())
	require.Zero(t, NewFreeList(-5).Len())

	_, ok := NewFreeList(0).FirstFit(1)
	require.False(t, ok, "empty free list must not satisfy any request")
}

// TestFirstFit_PrefersLowestAddress verifies first-fit picks the lowest
// qualifying extent even when a later one fits more tightly.
func TestFirstFit_PrefersLowestAddress(t *testing.T) {
	fl := newFreeListOf(t,
		Extent{0, 50},
		Extent{100, 500},
		Extent{700, 120},
	)

	got, ok := fl.FirstFit(100)
	require.True(t, ok)
	require.Equal(t, Extent{100, 500}, got, "must not skip to the tighter (700,120)")

	got, ok = fl.FirstFit(50)
	require.True(t, ok)
	require.Equal(t, Extent{0, 50}, got, "exact fit at the lowest address")

	_, ok = fl.FirstFit(501)
	require.False(t, ok)
}

func TestConsumeFront_Split(t *testing.T) {
	fl := NewFreeList(65536)
	fit, ok := fl.FirstFit(100)
	require.True(t, ok)

	got := fl.ConsumeFront(fit, 100)
	require.Equal(t, Extent{0, 100}, got)
	requireExtents(t, []Extent{{100, 65436}}, fl.Extents())
}

func TestConsumeFront_ExactRemovesExtent(t *testing.T) {
	fl := newFreeListOf(t, Extent{0, 64}, Extent{100, 36})

	got := fl.ConsumeFront(Extent{0, 64}, 64)
	require.Equal(t, Extent{0, 64}, got)
	requireExtents(t, []Extent{{100, 36}}, fl.Extents())
}

func TestInsert_KeepsOrderWithoutMerging(t *testing.T) {
	fl := newFreeListOf(t, Extent{300, 10}, Extent{0, 10})
	fl.Insert(Extent{10, 20})
	fl.Insert(Extent{200, 100})

	requireExtents(t, []Extent{{0, 10}, {10, 20}, {200, 100}, {300, 10}}, fl.Extents())
}

func TestMergeAdjacent(t *testing.T) {
	tests := []struct {
		name     string
		in       []Extent
		want     []Extent
		absorbed int
	}{
		{
			name: "nothing touches",
			in:   []Extent{{0, 10}, {20, 10}},
			want: []Extent{{0, 10}, {20, 10}},
		},
		{
			name:     "predecessor",
			in:       []Extent{{0, 10}, {10, 5}, {40, 10}},
			want:     []Extent{{0, 15}, {40, 10}},
			absorbed: 1,
		},
		{
			name:     "successor",
			in:       []Extent{{0, 10}, {30, 10}, {40, 10}},
			want:     []Extent{{0, 10}, {30, 20}},
			absorbed: 1,
		},
		{
			name:     "both sides",
			in:       []Extent{{0, 10}, {10, 10}, {20, 10}},
			want:     []Extent{{0, 30}},
			absorbed: 2,
		},
		{
			name:     "two separate runs",
			in:       []Extent{{0, 5}, {5, 5}, {50, 5}, {55, 5}, {60, 5}, {100, 1}},
			want:     []Extent{{0, 10}, {50, 15}, {100, 1}},
			absorbed: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fl := newFreeListOf(t, tt.in...)
			require.Equal(t, tt.absorbed, fl.MergeAdjacent())
			requireExtents(t, tt.want, fl.Extents())
		})
	}
}

// TestMergeAdjacent_Idempotent checks that a second pass changes nothing.
func TestMergeAdjacent_Idempotent(t *testing.T) {
	fl := newFreeListOf(t, Extent{0, 5}, Extent{5, 5}, Extent{20, 5}, Extent{25, 5})
	fl.MergeAdjacent()
	first := fl.Extents()

	require.Zero(t, fl.MergeAdjacent())
	requireExtents(t, first, fl.Extents())
}

func TestFreeList_Accounting(t *testing.T) {
	fl := newFreeListOf(t, Extent{0, 100}, Extent{150, 300}, Extent{500, 20})
	require.Equal(t, 420, fl.FreeBytes())
	require.Equal(t, 300, fl.Largest())
	require.Zero(t, NewFreeList(0).Largest())
}
