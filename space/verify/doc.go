// Package verify checks the structural invariants of an address space.
//
// # Overview
//
// It is primarily used in tests, and by the console's check command, to
// confirm that a sequence of operations kept the engine consistent.
//
// Validation categories:
//   - FreeList: free extents are non-empty, strictly ascending, and never touch
//   - Coverage: free and allocated extents together partition [0, TotalSize)
//     with no overlap and no gap
//
// # Quick Start
//
//	if err := verify.AllInvariants(eng); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// All validation functions return *ValidationError on failure. Offset is the
// address where the problem was found, or -1 when it has no single location.
package verify
