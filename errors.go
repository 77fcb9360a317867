// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package radd

import "errors"

// Errors returned by the operations of a Manager. They are always wrapped
// with the name of the failing operation, so use errors.Is to test them.
var (
	// ErrInvalidArgument is returned when an operand is not a valid node of
	// the manager, when a cube is not a conjunction of positive literals, or
	// when a variable is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMemory is returned when a node cannot be allocated, even after
	// garbage collection, because the table reached its maximal size.
	ErrMemory = errors.New("unable to free memory or resize node table")

	// ErrTimeout is returned when the deadline of the manager expired during
	// a computation.
	ErrTimeout = errors.New("deadline exceeded")
)

// errReordered is returned by allocating calls when variables were reordered
// during the call. It never escapes from an exported method: the reorder
// guard restarts the computation instead.
var errReordered = errors.New("variables reordered during operation")
