// Package space manages a single fixed-size linear address space on behalf of
// multiple logical processes.
//
// # Overview
//
// The address space [0, TotalSize) is always partitioned between a sorted list
// of free extents and the extents owned by live processes. Allocation uses a
// first-fit policy: the lowest-addressed free extent that is large enough is
// split from the front. Freed extents are returned to the free list and merged
// with any neighbour they touch, so no two free extents are ever adjacent.
//
// # Components
//
//   - FreeList: ordered free extents with first-fit search, front split,
//     sorted insertion and a single-pass adjacency merge
//   - Registry: live process records and the extents each one owns
//   - Engine: Allocate, Free, Terminate and the read-only views (MemoryMap,
//     FreeExtents, Processes, Stats) built on the two above
//
// # Usage Example
//
//	eng, err := space.New(65536)
//	if err != nil {
//	    return err
//	}
//
//	if err := eng.CreateProcess(1); err != nil {
//	    return err
//	}
//
//	addr, err := eng.Allocate(1, 100) // addr == 0
//	if errors.Is(err, space.ErrOutOfMemory) {
//	    // no single free extent can hold 100 units
//	}
//
//	err = eng.Free(1, addr) // process 1 owns nothing now and is removed
//
// # Errors
//
// Every failing operation returns an error wrapping one of the package
// sentinels (ErrProcessNotFound, ErrOutOfMemory, ErrAddressNotAllocated,
// ErrDuplicateProcess, ErrInvalidSize); test with errors.Is. A failed
// operation never mutates state. The engine does not log or print.
//
// # Thread Safety
//
// Engine instances are not thread-safe. Both allocation (scan then split) and
// deallocation (insert then merge) need a consistent view of the whole free
// list, so callers sharing an Engine must guard it with a single mutex.
//
// # Related Packages
//
//   - github.com/joshuapare/addrspace/space/verify: invariant checks over an Engine
//   - github.com/joshuapare/addrspace/internal/printer: memory map rendering
package space
