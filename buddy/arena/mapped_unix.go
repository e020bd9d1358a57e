//go:build unix

package arena

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapped is an Arena over anonymous virtual memory. The full capacity is
// reserved inaccessible (PROT_NONE) at construction, so the base address
// never moves; Grow commits one chunk at a time with mprotect. Committed
// pages are zero-filled by the kernel, though callers must not rely on
// that (the Arena contract leaves chunk contents unspecified).
type Mapped struct {
	chunkSize uint64
	reserved  []byte
	committed uint64
}

// NewMapped reserves maxChunks chunks of chunkSize bytes each.
// chunkSize must be a multiple of the OS page size, since commit
// granularity is mprotect's.
func NewMapped(chunkSize uint64, maxChunks int) (Arena, error) {
	if err := checkGeometry(chunkSize, maxChunks); err != nil {
		return nil, err
	}
	if page := uint64(os.Getpagesize()); chunkSize%page != 0 {
		return nil, fmt.Errorf("arena: chunk size %d is not a multiple of the %d-byte page size",
			chunkSize, page)
	}
	total := chunkSize * uint64(maxChunks)
	mem, err := unix.Mmap(-1, 0, int(total), unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", total, err)
	}
	return &Mapped{chunkSize: chunkSize, reserved: mem}, nil
}

// Grow commits the next chunk and returns its offset.
func (m *Mapped) Grow() (uint64, error) {
	if m.reserved == nil || m.committed >= uint64(len(m.reserved)) {
		return 0, ErrExhausted
	}
	off := m.committed
	chunk := m.reserved[off : off+m.chunkSize]
	if err := unix.Mprotect(chunk, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return 0, fmt.Errorf("arena: commit chunk at %#x: %w", off, err)
	}
	m.committed += m.chunkSize
	return off, nil
}

// Bytes returns the committed prefix of the reservation.
func (m *Mapped) Bytes() []byte {
	if m.reserved == nil {
		return nil
	}
	return m.reserved[:m.committed]
}

// ChunkSize returns the growth unit.
func (m *Mapped) ChunkSize() uint64 {
	return m.chunkSize
}

// Close unmaps the whole reservation.
func (m *Mapped) Close() error {
	if m.reserved == nil {
		return nil
	}
	err := unix.Munmap(m.reserved)
	m.reserved = nil
	m.committed = 0
	return err
}

var _ Arena = (*Mapped)(nil)
