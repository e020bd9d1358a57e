package buddy

import (
	"fmt"

	"github.com/N00byEdge/buddykit/buddy/arena"
)

// Stats holds internal allocator counters, for testing and
// instrumentation.
type Stats struct {
	AllocCalls     int   // Total Allocate() calls, including rejected ones
	AllocFastPath  int   // Allocations served from the free lists
	AllocSlowPath  int   // Allocations that required arena growth
	FreeCalls      int   // Blocks returned through handle release
	GrowCalls      int   // Successful arena Grow() calls
	SplitCount     int   // Block splits
	CoalesceCount  int   // Buddy merges
	BytesAllocated int64 // Total bytes granted (block sizes, not request sizes)
	BytesFreed     int64 // Total bytes returned
}

// Allocator is a buddy allocator over one arena. It owns an array of
// per-level intrusive free lists and nothing else; the lists' link words
// live inside the free memory itself.
//
// Not safe for concurrent use.
type Allocator struct {
	mem       arena.Arena
	table     *sizeClassTable
	freeLists []freeList
	stats     Stats
}

// New creates an allocator over mem. A nil config selects DefaultConfig.
// The arena's chunk size must equal the configuration's max block size:
// growth happens in max-block units, and the buddy address arithmetic
// needs every chunk to sit on a max-block boundary, which the arena
// guarantees for its own chunk size.
func New(mem arena.Arena, cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	table, err := newSizeClassTable(*cfg)
	if err != nil {
		return nil, err
	}
	if cs := mem.ChunkSize(); cs != table.maxBlock {
		return nil, fmt.Errorf("buddy: arena chunk size %d does not match max block size %d",
			cs, table.maxBlock)
	}
	lists := make([]freeList, table.numLevels)
	for i := range lists {
		lists[i].head = nilAddr
	}
	return &Allocator{
		mem:       mem,
		table:     table,
		freeLists: lists,
	}, nil
}

// MinBlock returns the level-0 block size.
func (b *Allocator) MinBlock() uint64 { return b.table.minBlock }

// MaxBlock returns the top-level block size.
func (b *Allocator) MaxBlock() uint64 { return b.table.maxBlock }

// NumLevels returns the number of size classes.
func (b *Allocator) NumLevels() int { return b.table.numLevels }

// LevelSize returns the block size of a level.
func (b *Allocator) LevelSize(level int) uint64 { return b.table.size(level) }

// Stats returns a snapshot of the allocator counters.
func (b *Allocator) Stats() Stats { return b.stats }

// Allocate grants a block of at least n bytes and returns the owning
// handle. The granted size is the requested size rounded up to its size
// class, and may exceed n.
//
// Fails with ErrBadSize when n is zero or exceeds MaxBlock, and with an
// error wrapping ErrNoSpace when no free block fits and the arena cannot
// grow; in the latter case the free lists are left exactly as they were.
func (b *Allocator) Allocate(n uint64) (Allocation, error) {
	b.stats.AllocCalls++
	if n == 0 || n > b.table.maxBlock {
		return Allocation{}, fmt.Errorf("%w: %d bytes (max %d)", ErrBadSize, n, b.table.maxBlock)
	}
	level := b.table.classify(n)
	data := b.mem.Bytes()

	// Find the lowest non-empty list at or above the target level.
	addr := nilAddr
	found := level
	for l := level; l < b.table.numLevels; l++ {
		if !b.freeLists[l].empty() {
			addr = b.freeLists[l].pop(data)
			found = l
			break
		}
	}

	if addr == nilAddr {
		off, err := b.mem.Grow()
		if err != nil {
			debugLogf("Allocate(%d): grow failed: %v", n, err)
			return Allocation{}, fmt.Errorf("%w: %w", ErrNoSpace, err)
		}
		b.stats.GrowCalls++
		b.stats.AllocSlowPath++
		data = b.mem.Bytes()
		addr = off
		found = b.table.numLevels - 1
		debugLogf("Allocate(%d): grew arena, chunk at %#x", n, off)
	} else {
		b.stats.AllocFastPath++
	}

	// Split down to the target level. The requester keeps the lower
	// half each time; the upper halves go onto the intermediate lists.
	// Keeping the lower address is what lets release recompute the
	// buddy of any granted block.
	for found > level {
		found--
		b.freeLists[found].push(data, addr+b.table.size(found))
		b.stats.SplitCount++
	}

	size := b.table.size(level)
	b.stats.BytesAllocated += int64(size)
	return Allocation{addr: addr, size: size, owner: b}, nil
}

// free returns a block to the allocator, merging it with its buddy at
// each level for as long as that buddy is also free. Only Allocation
// handles call this, with the exact (addr, size) pair they were granted.
func (b *Allocator) free(addr, size uint64) {
	b.stats.FreeCalls++
	b.stats.BytesFreed += int64(size)
	data := b.mem.Bytes()
	level := b.table.levelOf(size)

	// Bubble up while the buddy is free. A block of size 2^k sits on a
	// 2^k boundary, so its buddy differs from it in exactly bit k and
	// the merged pair's base has that bit clear.
	for size != b.table.maxBlock {
		buddy := addr ^ size
		if !b.freeLists[level].remove(data, buddy) {
			break
		}
		addr &^= size
		size <<= 1
		level++
		b.stats.CoalesceCount++
		debugLogf("free: merged with buddy %#x, now %d bytes at %#x", buddy, size, addr)
	}

	b.freeLists[level].push(data, addr)
}

// FreeBlocks returns an iterator over the free blocks currently held at
// one level, for diagnostics and testing only. The iterator is invalid
// after the next allocator operation, and absence from every free list
// does not mean an address is live.
func (b *Allocator) FreeBlocks(level int) *FreeIterator {
	return b.freeLists[level].blocks(b.mem.Bytes())
}

// FreeCounts reports the number of free blocks held at each level.
func (b *Allocator) FreeCounts() []int {
	counts := make([]int, b.table.numLevels)
	data := b.mem.Bytes()
	for l := range b.freeLists {
		for it := b.freeLists[l].blocks(data); ; {
			if _, ok := it.Next(); !ok {
				break
			}
			counts[l]++
		}
	}
	return counts
}
