package space

import (
	"fmt"
	"slices"

	"github.com/google/btree"
)

const registryDegree = 8

// Process is a live process record and the extents it owns.
type Process struct {
	ID int

	// Allocation order; lookups are by start address.
	extents []Extent
}

// Extents returns a copy of the owned extents in allocation order.
func (p *Process) Extents() []Extent { return slices.Clone(p.extents) }

// Len returns the number of owned extents.
func (p *Process) Len() int { return len(p.extents) }

// Empty reports whether the process owns nothing.
func (p *Process) Empty() bool { return len(p.extents) == 0 }

// AllocatedBytes returns the total size of the owned extents.
func (p *Process) AllocatedBytes() int {
	total := 0
	for _, e := range p.extents {
		total += e.Size
	}
	return total
}

func (p *Process) index(addr int) int {
	return slices.IndexFunc(p.extents, func(e Extent) bool { return e.Start == addr })
}

func (p *Process) add(e Extent) {
	p.extents = append(p.extents, e)
}

// take removes and returns the owned extent starting at addr.
func (p *Process) take(addr int) (Extent, bool) {
	i := p.index(addr)
	if i < 0 {
		return Extent{}, false
	}
	e := p.extents[i]
	p.extents = slices.Delete(p.extents, i, i+1)
	return e, true
}

// pop removes and returns the most recently allocated extent.
func (p *Process) pop() (Extent, bool) {
	n := len(p.extents)
	if n == 0 {
		return Extent{}, false
	}
	e := p.extents[n-1]
	p.extents = p.extents[:n-1]
	return e, true
}

func byID(a, b *Process) bool { return a.ID < b.ID }

// Registry holds the live processes, ordered by id.
type Registry struct {
	tree *btree.BTreeG[*Process]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tree: btree.NewG(registryDegree, byID)}
}

// Create registers a process with no extents.
func (r *Registry) Create(pid int) (*Process, error) {
	if r.tree.Has(&Process{ID: pid}) {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateProcess, pid)
	}
	p := &Process{ID: pid}
	r.tree.ReplaceOrInsert(p)
	return p, nil
}

// Lookup returns the live process with the given id.
func (r *Registry) Lookup(pid int) (*Process, error) {
	p, ok := r.tree.Get(&Process{ID: pid})
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrProcessNotFound, pid)
	}
	return p, nil
}

// RemoveIfEmpty drops the record for pid if it owns no extents and reports
// whether it did.
func (r *Registry) RemoveIfEmpty(pid int) bool {
	p, ok := r.tree.Get(&Process{ID: pid})
	if !ok || !p.Empty() {
		return false
	}
	r.tree.Delete(p)
	return true
}

// Remove drops the record for pid regardless of what it owns.
func (r *Registry) Remove(pid int) bool {
	_, ok := r.tree.Delete(&Process{ID: pid})
	return ok
}

// Processes returns the live processes in ascending id order.
func (r *Registry) Processes() []*Process {
	out := make([]*Process, 0, r.tree.Len())
	r.tree.Ascend(func(p *Process) bool {
		out = append(out, p)
		return true
	})
	return out
}

// Len returns the number of live processes.
func (r *Registry) Len() int { return r.tree.Len() }
