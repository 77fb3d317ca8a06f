package space

import "github.com/google/btree"

// freeListDegree is the B-tree degree for the free extent index. Free lists
// stay small (one extent per hole), so a low degree keeps nodes compact.
const freeListDegree = 8

// FreeList holds the free extents of an address space, ordered by start
// address.
//
// Between operations no two extents overlap or touch. Insert alone may leave
// touching neighbours behind; callers follow it with MergeAdjacent.
type FreeList struct {
	tree *btree.BTreeG[Extent]
}

// NewFreeList creates a free list holding the single extent [0, total).
// A non-positive total yields an empty list.
func NewFreeList(total int) *FreeList {
	fl := &FreeList{tree: btree.NewG(freeListDegree, byStart)}
	if total > 0 {
		fl.tree.ReplaceOrInsert(Extent{Start: 0, Size: total})
	}
	return fl
}

// FirstFit returns the lowest-addressed free extent with at least size units.
// Lower addresses always win over tighter fits.
func (fl *FreeList) FirstFit(size int) (Extent, bool) {
	var (
		found Extent
		ok    bool
	)
	fl.tree.Ascend(func(e Extent) bool {
		if e.Size >= size {
			found, ok = e, true
			return false
		}
		return true
	})
	return found, ok
}

// ConsumeFront removes size units from the front of e and returns them as a
// new extent. e must be a member of the list and 0 < size <= e.Size. When
// nothing is left of e it leaves the list.
func (fl *FreeList) ConsumeFront(e Extent, size int) Extent {
	// The key is the start address, so shrinking from the front is a
	// delete followed by a re-insert of the tail.
	fl.tree.Delete(e)
	if rem := e.Size - size; rem > 0 {
		fl.tree.ReplaceOrInsert(Extent{Start: e.Start + size, Size: rem})
	}
	return Extent{Start: e.Start, Size: size}
}

// Insert adds e in start order. It does not merge.
func (fl *FreeList) Insert(e Extent) {
	fl.tree.ReplaceOrInsert(e)
}

// MergeAdjacent joins every run of touching extents into one in a single
// forward pass and returns how many extents were absorbed. Calling it again
// without an intervening Insert is a no-op.
func (fl *FreeList) MergeAdjacent() int {
	var (
		grown    []Extent // run heads whose size changed
		absorbed []Extent // extents folded into a preceding head
		run      Extent
		inRun    bool
		changed  bool
	)
	fl.tree.Ascend(func(e Extent) bool {
		if inRun && run.Touches(e) {
			run.Size += e.Size
			absorbed = append(absorbed, e)
			changed = true
			return true
		}
		if changed {
			grown = append(grown, run)
		}
		run, inRun, changed = e, true, false
		return true
	})
	if changed {
		grown = append(grown, run)
	}

	for _, e := range absorbed {
		fl.tree.Delete(e)
	}
	// Heads keep their start address, so this replaces them in place.
	for _, e := range grown {
		fl.tree.ReplaceOrInsert(e)
	}
	return len(absorbed)
}

// Extents returns a copy of the free extents in ascending start order.
func (fl *FreeList) Extents() []Extent {
	out := make([]Extent, 0, fl.tree.Len())
	fl.tree.Ascend(func(e Extent) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Len returns the number of free extents.
func (fl *FreeList) Len() int { return fl.tree.Len() }

// FreeBytes returns the total size of all free extents.
func (fl *FreeList) FreeBytes() int {
	total := 0
	fl.tree.Ascend(func(e Extent) bool {
		total += e.Size
		return true
	})
	return total
}

// Largest returns the size of the biggest free extent, or 0 when the list is
// empty.
func (fl *FreeList) Largest() int {
	largest := 0
	fl.tree.Ascend(func(e Extent) bool {
		largest = max(largest, e.Size)
		return true
	})
	return largest
}
