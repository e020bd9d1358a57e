// Package buddy implements a fixed-capacity, power-of-two buddy memory
// allocator over an arena of raw process memory.
//
// # Overview
//
// The allocator manages a set of power-of-two size classes (levels).
// A request is rounded up to the smallest class that fits, served from a
// per-class free list, and larger free blocks are split in half on demand.
// On release, a block is merged with its "buddy" (the other half produced
// by the same split) whenever that buddy is also free, reconstituting
// larger blocks and fighting fragmentation.
//
// Free blocks carry no bookkeeping of their own: each free list is an
// intrusive singly-linked list whose link word is written into the first
// eight bytes of the free memory itself. A free list therefore costs one
// head word per level and nothing else.
//
// # Size Classes
//
// With the default configuration the allocator maintains 8 levels:
//
//	Level 0:   32 bytes
//	Level 1:   64 bytes
//	Level 2:  128 bytes
//	Level 3:  256 bytes
//	Level 4:  512 bytes
//	Level 5: 1024 bytes
//	Level 6: 2048 bytes
//	Level 7: 4096 bytes (max block, also the arena chunk size)
//
// Requests larger than the max block fail with ErrBadSize. When no free
// block of any sufficient class exists, the allocator commits one fresh
// max-block chunk from its arena; if the arena is exhausted the
// allocation fails with an error wrapping ErrNoSpace and the free lists
// are left untouched.
//
// # Addresses
//
// Block addresses are byte offsets into the arena's backing region, not
// typed references. The arena hands out max-block chunks at offsets that
// are exact multiples of the chunk size, and every split preserves
// size-alignment of its children, so a block of size 2^k always sits on a
// 2^k boundary. That invariant is what makes the buddy arithmetic work:
// the buddy of a block differs from it in exactly bit k (addr XOR size),
// and the merged parent's base is the pair's lower address (addr AND NOT
// size).
//
// # Usage Example
//
//	mem, err := arena.NewMapped(4096, 256)
//	if err != nil {
//	    return err
//	}
//	defer mem.Close()
//
//	alloc, err := buddy.New(mem, nil)
//	if err != nil {
//	    return err
//	}
//
//	a, err := alloc.Allocate(100)
//	if err != nil {
//	    return err
//	}
//	defer a.Release()
//
//	copy(a.Bytes(), payload)
//
// # Ownership
//
// Allocate returns an Allocation handle that exclusively owns its block.
// Release returns the block and empties the handle; calling Release again
// is a no-op, so `defer a.Release()` pairs safely with an earlier
// explicit release. Move transfers ownership to a new handle and empties
// the source. Copying a handle instead of moving it, releasing an address
// the allocator never granted, or writing through a stale reference into
// freed memory are contract violations the allocator does not detect.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. The free lists are mutated
// non-atomically across multiple steps (pop-then-split, probe-then-merge),
// so callers needing concurrent access must serialize every call with
// external mutual exclusion.
//
// # Related Packages
//
//   - github.com/N00byEdge/buddykit/buddy/arena: the memory-growth
//     primitive supplying max-block chunks (mmap-backed or slice-backed)
package buddy
