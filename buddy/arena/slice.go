package arena

// Slice is an Arena backed by an ordinary Go slice. It is fully portable
// and deterministic, which also makes it the arena used throughout the
// tests: construct it with the number of chunks you want growth to
// succeed for, and the next Grow fails with ErrExhausted.
type Slice struct {
	chunkSize uint64
	capacity  uint64
	data      []byte
	closed    bool
}

// NewSlice creates a slice-backed arena of maxChunks chunks of chunkSize
// bytes each. Nothing is committed until the first Grow.
func NewSlice(chunkSize uint64, maxChunks int) (*Slice, error) {
	if err := checkGeometry(chunkSize, maxChunks); err != nil {
		return nil, err
	}
	return &Slice{
		chunkSize: chunkSize,
		capacity:  chunkSize * uint64(maxChunks),
	}, nil
}

// Grow appends one chunk and returns its offset.
func (s *Slice) Grow() (uint64, error) {
	if s.closed || uint64(len(s.data)) >= s.capacity {
		return 0, ErrExhausted
	}
	off := uint64(len(s.data))
	s.data = append(s.data, make([]byte, s.chunkSize)...)
	return off, nil
}

// Bytes returns the committed region.
func (s *Slice) Bytes() []byte {
	return s.data
}

// ChunkSize returns the growth unit.
func (s *Slice) ChunkSize() uint64 {
	return s.chunkSize
}

// Close drops the backing slice.
func (s *Slice) Close() error {
	s.data = nil
	s.closed = true
	return nil
}

var _ Arena = (*Slice)(nil)
