package buddy

import (
	"fmt"
	"math/bits"
)

const (
	// minAllowedBlock is the smallest legal MinBlock. Free blocks double
	// as list nodes, so every block must hold at least one 8-byte link
	// word.
	minAllowedBlock = 8

	// maxAllowedLevels bounds NumLevels so that maxBlock fits a uint64
	// with any legal MinBlock.
	maxAllowedLevels = 48
)

// Config describes the size-class ladder of an allocator.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// MinBlock is the level-0 block size in bytes. Must be a power of
	// two and at least 8 (the intrusive link word).
	MinBlock uint64

	// NumLevels is the number of size classes. Level l serves blocks of
	// MinBlock << l bytes; the top level is the max block size, which is
	// also the unit the arena grows by.
	NumLevels int
}

// DefaultConfig matches the classic ladder: 32-byte minimum blocks over
// 8 levels, for a 4 KB max block.
var DefaultConfig = Config{
	MinBlock:  32,
	NumLevels: 8,
}

// Validate reports whether the configuration describes a legal ladder.
func (c Config) Validate() error {
	if c.MinBlock < minAllowedBlock || bits.OnesCount64(c.MinBlock) != 1 {
		return fmt.Errorf("buddy: MinBlock must be a power of two >= %d, got %d",
			minAllowedBlock, c.MinBlock)
	}
	if c.NumLevels < 1 || c.NumLevels > maxAllowedLevels {
		return fmt.Errorf("buddy: NumLevels must be in [1, %d], got %d",
			maxAllowedLevels, c.NumLevels)
	}
	if c.NumLevels-1 >= 64-bits.TrailingZeros64(c.MinBlock) {
		return fmt.Errorf("buddy: MinBlock %d with %d levels overflows the address space",
			c.MinBlock, c.NumLevels)
	}
	return nil
}

// MaxBlock returns the top-level block size, MinBlock << (NumLevels-1).
func (c Config) MaxBlock() uint64 {
	return c.MinBlock << (c.NumLevels - 1)
}

// sizeClassTable holds the derived size-class constants of one allocator.
// Construction is pure; the table is never mutated afterwards.
type sizeClassTable struct {
	minBlock  uint64
	maxBlock  uint64
	minShift  int // log2(minBlock)
	numLevels int
}

func newSizeClassTable(cfg Config) (*sizeClassTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &sizeClassTable{
		minBlock:  cfg.MinBlock,
		maxBlock:  cfg.MaxBlock(),
		minShift:  bits.TrailingZeros64(cfg.MinBlock),
		numLevels: cfg.NumLevels,
	}, nil
}

// size returns the block size of a level. Out-of-range levels are a
// programming error; the table is internal and callers pass only levels
// they derived from it.
func (t *sizeClassTable) size(level int) uint64 {
	return t.minBlock << level
}

// classify returns the smallest level whose block size is >= n.
// Valid for every n in [1, maxBlock]; computed with bit math rather than
// a truncated lookup array so there is no table-length edge to get wrong.
func (t *sizeClassTable) classify(n uint64) int {
	if n <= t.minBlock {
		return 0
	}
	return bits.Len64(n-1) - t.minShift
}

// levelOf maps an exact granted size back to its level. The argument must
// be size(l) for some level l; granted sizes never take any other value.
func (t *sizeClassTable) levelOf(sz uint64) int {
	return bits.TrailingZeros64(sz) - t.minShift
}
