package buddy

import "errors"

var (
	// ErrBadSize indicates a request for zero bytes or for more than the
	// maximum block size.
	ErrBadSize = errors.New("buddy: request size out of range")

	// ErrNoSpace indicates that no free block was large enough and the
	// arena could not supply another chunk.
	ErrNoSpace = errors.New("buddy: out of memory")
)
