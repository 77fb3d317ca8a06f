package space

import "fmt"

// Extent is the contiguous address range [Start, Start+Size).
type Extent struct {
	Start int
	Size  int
}

// End returns the first address past the extent.
func (e Extent) End() int { return e.Start + e.Size }

// Last returns the final address inside the extent.
func (e Extent) Last() int { return e.Start + e.Size - 1 }

// Overlaps reports whether the two extents share at least one address.
func (e Extent) Overlaps(o Extent) bool { return e.Start < o.End() && o.Start < e.End() }

// Touches reports whether o begins exactly where e ends.
func (e Extent) Touches(o Extent) bool { return e.End() == o.Start }

func (e Extent) String() string {
	return fmt.Sprintf("(%d,%d)", e.Start, e.Size)
}

// byStart orders extents by start address.
func byStart(a, b Extent) bool { return a.Start < b.Start }
