package buddy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/N00byEdge/buddykit/buddy/arena"
)

// testConfig keeps test arenas tiny: 32-byte blocks over 4 levels, for a
// 256-byte max block.
var testConfig = Config{MinBlock: 32, NumLevels: 4}

// newTestAllocator builds an allocator over a slice arena holding
// maxChunks max-block chunks.
func newTestAllocator(t testing.TB, cfg Config, maxChunks int) *Allocator {
	t.Helper()

	mem, err := arena.NewSlice(cfg.MaxBlock(), maxChunks)
	require.NoError(t, err)

	b, err := New(mem, &cfg)
	require.NoError(t, err)
	return b
}

// freeListSnapshot captures the exact contents of every free list, in
// list order.
func freeListSnapshot(b *Allocator) [][]uint64 {
	snap := make([][]uint64, b.NumLevels())
	for l := range snap {
		for it := b.FreeBlocks(l); ; {
			addr, ok := it.Next()
			if !ok {
				break
			}
			snap[l] = append(snap[l], addr)
		}
	}
	return snap
}

// permutations returns every ordering of the ints in s.
func permutations(s []int) [][]int {
	if len(s) <= 1 {
		return [][]int{append([]int(nil), s...)}
	}
	var out [][]int
	for i := range s {
		rest := make([]int, 0, len(s)-1)
		rest = append(rest, s[:i]...)
		rest = append(rest, s[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]int{s[i]}, p...))
		}
	}
	return out
}
