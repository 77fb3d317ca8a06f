package space

import (
	"fmt"
	"slices"
)

// DefaultTotalSize is the address space size used when none is configured.
const DefaultTotalSize = 65536

// Engine allocates extents of one fixed address space to processes.
//
// Every method runs to completion before returning and a failing method
// leaves the engine unchanged.
type Engine struct {
	total int
	free  *FreeList
	procs *Registry
}

// Segment is one contiguous piece of the memory map: either free or owned by
// a single process.
type Segment struct {
	Extent
	Owner int // process id; meaningless when Free is set
	Free  bool
}

// ProcessInfo is a read-only view of a live process.
type ProcessInfo struct {
	ID      int
	Extents []Extent // allocation order
	Bytes   int
}

// Stats summarizes the engine state.
type Stats struct {
	TotalSize      int
	FreeBytes      int
	AllocatedBytes int
	FreeExtents    int
	LargestFree    int
	Processes      int
	Allocations    int
}

// New creates an engine managing [0, total).
func New(total int) (*Engine, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: address space of %d", ErrInvalidSize, total)
	}
	return &Engine{
		total: total,
		free:  NewFreeList(total),
		procs: NewRegistry(),
	}, nil
}

// TotalSize returns the size of the managed address space.
func (e *Engine) TotalSize() int { return e.total }

// CreateProcess registers pid with no memory.
func (e *Engine) CreateProcess(pid int) error {
	_, err := e.procs.Create(pid)
	return err
}

// Allocate gives pid the first free extent of size units and returns its
// start address.
func (e *Engine) Allocate(pid, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: allocation of %d", ErrInvalidSize, size)
	}
	p, err := e.procs.Lookup(pid)
	if err != nil {
		return 0, err
	}
	ext, ok := e.takeFirstFit(size)
	if !ok {
		return 0, fmt.Errorf("%w: need %d, largest free extent is %d",
			ErrOutOfMemory, size, e.free.Largest())
	}
	p.add(ext)
	return ext.Start, nil
}

// takeFirstFit finds the first free extent that can hold size units and splits
// them off its front.
func (e *Engine) takeFirstFit(size int) (Extent, bool) {
	fit, ok := e.free.FirstFit(size)
	if !ok {
		return Extent{}, false
	}
	return e.free.ConsumeFront(fit, size), true
}

// Free returns the extent starting at addr owned by pid to the free list.
// The process record is removed once it owns nothing.
func (e *Engine) Free(pid, addr int) error {
	p, err := e.procs.Lookup(pid)
	if err != nil {
		return err
	}
	ext, ok := p.take(addr)
	if !ok {
		return fmt.Errorf("%w: address %d, process %d", ErrAddressNotAllocated, addr, pid)
	}
	e.release(ext)
	e.procs.RemoveIfEmpty(pid)
	return nil
}

// Terminate frees every extent owned by pid, most recent first, and removes
// the process. It returns the number of units released.
func (e *Engine) Terminate(pid int) (int, error) {
	p, err := e.procs.Lookup(pid)
	if err != nil {
		return 0, err
	}
	freed := 0
	for {
		ext, ok := p.pop()
		if !ok {
			break
		}
		e.release(ext)
		freed += ext.Size
	}
	e.procs.Remove(pid)
	return freed, nil
}

func (e *Engine) release(ext Extent) {
	e.free.Insert(ext)
	e.free.MergeAdjacent()
}

// FreeExtents returns the free extents in ascending start order.
func (e *Engine) FreeExtents() []Extent { return e.free.Extents() }

// Processes returns every live process in ascending id order.
func (e *Engine) Processes() []ProcessInfo {
	procs := e.procs.Processes()
	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		out = append(out, infoOf(p))
	}
	return out
}

// Process returns the live process with the given id.
func (e *Engine) Process(pid int) (ProcessInfo, error) {
	p, err := e.procs.Lookup(pid)
	if err != nil {
		return ProcessInfo{}, err
	}
	return infoOf(p), nil
}

func infoOf(p *Process) ProcessInfo {
	return ProcessInfo{ID: p.ID, Extents: p.Extents(), Bytes: p.AllocatedBytes()}
}

// MemoryMap lists the whole address space in ascending address order, one
// segment per free extent and per allocated extent.
func (e *Engine) MemoryMap() []Segment {
	segs := make([]Segment, 0, e.free.Len()+e.procs.Len())
	for _, ext := range e.free.Extents() {
		segs = append(segs, Segment{Extent: ext, Free: true})
	}
	for _, p := range e.procs.Processes() {
		for _, ext := range p.extents {
			segs = append(segs, Segment{Extent: ext, Owner: p.ID})
		}
	}
	slices.SortFunc(segs, func(a, b Segment) int { return a.Start - b.Start })
	return segs
}

// Stats returns current totals.
func (e *Engine) Stats() Stats {
	st := Stats{
		TotalSize:   e.total,
		FreeBytes:   e.free.FreeBytes(),
		FreeExtents: e.free.Len(),
		LargestFree: e.free.Largest(),
		Processes:   e.procs.Len(),
	}
	for _, p := range e.procs.Processes() {
		st.AllocatedBytes += p.AllocatedBytes()
		st.Allocations += p.Len()
	}
	return st
}
