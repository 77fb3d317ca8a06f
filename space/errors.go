package space

import "errors"

var (
	// ErrProcessNotFound indicates that no live process has the given id.
	ErrProcessNotFound = errors.New("space: process not found")

	// ErrOutOfMemory indicates that no single free extent is large enough.
	// Free space split across several extents never satisfies one request.
	ErrOutOfMemory = errors.New("space: no free extent large enough")

	// ErrAddressNotAllocated indicates that the process owns no extent starting at the address.
	ErrAddressNotAllocated = errors.New("space: address not allocated to process")

	// ErrDuplicateProcess indicates an attempt to create a process id that is already live.
	ErrDuplicateProcess = errors.New("space: process already exists")

	// ErrInvalidSize indicates a zero or negative size.
	ErrInvalidSize = errors.New("space: size must be positive")
)
