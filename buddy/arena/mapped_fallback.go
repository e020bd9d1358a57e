//go:build !unix

package arena

// NewMapped degrades to the slice-backed arena on platforms without the
// Unix mmap/mprotect surface. The contract is identical.
func NewMapped(chunkSize uint64, maxChunks int) (Arena, error) {
	return NewSlice(chunkSize, maxChunks)
}
