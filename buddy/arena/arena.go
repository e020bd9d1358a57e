// Package arena provides the memory-growth primitive behind the buddy
// allocator: a flat byte region that grows one fixed-size chunk at a
// time, up to a capacity fixed at construction.
//
// Chunk offsets are exact multiples of the chunk size by construction
// (chunk k starts at k * ChunkSize), which is the alignment contract the
// buddy address arithmetic depends on. An arena never relocates already
// committed offsets, but Bytes may return a reissued slice after Grow.
//
// Two implementations are provided: Mapped reserves its whole capacity
// as anonymous virtual memory up front and commits chunks with mprotect
// (Unix; elsewhere it degrades to the slice arena), and Slice keeps the
// region in a Go slice, which is also the arena of choice for tests that
// need growth to fail after a fixed number of chunks.
package arena

import (
	"errors"
	"fmt"
)

// ErrExhausted indicates that the arena has committed every chunk of its
// capacity and cannot grow further.
var ErrExhausted = errors.New("arena: capacity exhausted")

// Arena hands out fixed-size chunks of process memory.
type Arena interface {
	// Grow commits one more chunk and returns its offset within Bytes.
	// The offset is always a multiple of ChunkSize. Fails with an error
	// wrapping ErrExhausted once the capacity is spent. The committed
	// memory is not guaranteed to be zeroed.
	Grow() (uint64, error)

	// Bytes returns the committed region. The slice must be re-fetched
	// after Grow; offsets within it remain stable.
	Bytes() []byte

	// ChunkSize returns the growth unit in bytes.
	ChunkSize() uint64

	// Close releases the backing memory. The arena is unusable
	// afterwards; calling Close again is a no-op.
	Close() error
}

// checkGeometry validates the chunkSize/maxChunks pair shared by every
// implementation.
func checkGeometry(chunkSize uint64, maxChunks int) error {
	if chunkSize == 0 {
		return fmt.Errorf("arena: chunk size must be positive")
	}
	if maxChunks < 1 {
		return fmt.Errorf("arena: max chunks must be at least 1, got %d", maxChunks)
	}
	return nil
}
