package verify

import (
	"fmt"
	"slices"

	"github.com/joshuapare/addrspace/space"
)

// ValidationError describes a violated invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at address %d: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Snapshot is the read-only view the checks need. *space.Engine satisfies it.
type Snapshot interface {
	TotalSize() int
	FreeExtents() []space.Extent
	Processes() []space.ProcessInfo
}

// AllInvariants validates every invariant in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(s Snapshot) error {
	free := s.FreeExtents()
	if err := FreeList(free); err != nil {
		return err
	}
	return Coverage(s.TotalSize(), free, s.Processes())
}

// FreeList checks that free extents are positive, strictly ascending and
// separated by at least one allocated address.
func FreeList(free []space.Extent) error {
	for i, e := range free {
		if e.Size <= 0 {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("extent %d has non-positive size %d", i, e.Size),
				Offset:  e.Start,
			}
		}
		if i == 0 {
			continue
		}
		prev := free[i-1]
		if e.Start <= prev.Start {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("extent %v not after %v", e, prev),
				Offset:  e.Start,
			}
		}
		if prev.Overlaps(e) {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("extent %v overlaps %v", prev, e),
				Offset:  e.Start,
			}
		}
		if prev.End() == e.Start {
			return &ValidationError{
				Type:    "FreeList",
				Message: fmt.Sprintf("extents %v and %v are adjacent and not merged", prev, e),
				Offset:  e.Start,
				Details: map[string]interface{}{"index": i},
			}
		}
	}
	return nil
}

type owned struct {
	space.Extent
	owner int
	free  bool
}

func (o owned) String() string {
	if o.free {
		return fmt.Sprintf("%v (free)", o.Extent)
	}
	return fmt.Sprintf("%v (process %d)", o.Extent, o.owner)
}

// Coverage checks that free and allocated extents exactly partition
// [0, total): no gaps, no overlap, nothing outside the space.
func Coverage(total int, free []space.Extent, procs []space.ProcessInfo) error {
	all := make([]owned, 0, len(free))
	sum := 0
	for _, e := range free {
		all = append(all, owned{Extent: e, free: true})
		sum += e.Size
	}
	for _, p := range procs {
		for _, e := range p.Extents {
			if e.Size <= 0 {
				return &ValidationError{
					Type:    "Coverage",
					Message: fmt.Sprintf("process %d owns empty extent %v", p.ID, e),
					Offset:  e.Start,
				}
			}
			all = append(all, owned{Extent: e, owner: p.ID})
			sum += e.Size
		}
	}

	if sum != total {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("extent sizes sum to %d, address space is %d", sum, total),
			Offset:  -1,
			Details: map[string]interface{}{"sum": sum, "total": total},
		}
	}

	slices.SortFunc(all, func(a, b owned) int { return a.Start - b.Start })

	next := 0
	for i, e := range all {
		if i > 0 && all[i-1].Overlaps(e.Extent) {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("%v overlaps %v", e, all[i-1]),
				Offset:  e.Start,
			}
		}
		if e.Start != next {
			return &ValidationError{
				Type:    "Coverage",
				Message: fmt.Sprintf("addresses [%d,%d) belong to nobody", next, e.Start),
				Offset:  next,
			}
		}
		next = e.End()
	}
	if next != total {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("extents end at %d, address space is %d", next, total),
			Offset:  next,
		}
	}
	return nil
}
