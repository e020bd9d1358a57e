package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SliceGrow(t *testing.T) {
	a, err := NewSlice(256, 3)
	require.NoError(t, err)
	defer a.Close()

	require.Equal(t, uint64(256), a.ChunkSize())
	require.Empty(t, a.Bytes(), "nothing is committed before the first grow")

	for i, want := range []uint64{0, 256, 512} {
		off, err := a.Grow()
		require.NoError(t, err, "grow %d", i)
		require.Equal(t, want, off)
		require.Zero(t, off%a.ChunkSize(), "chunk offsets are chunk-aligned")
		require.Len(t, a.Bytes(), int(want)+256)
	}

	_, err = a.Grow()
	require.ErrorIs(t, err, ErrExhausted)
	require.Len(t, a.Bytes(), 768, "a failed grow must not commit anything")
}

func Test_SliceOffsetsStable(t *testing.T) {
	a, err := NewSlice(128, 2)
	require.NoError(t, err)
	defer a.Close()

	off, err := a.Grow()
	require.NoError(t, err)
	a.Bytes()[off] = 0xCD

	_, err = a.Grow()
	require.NoError(t, err)
	require.Equal(t, byte(0xCD), a.Bytes()[off],
		"growth must not disturb data at committed offsets")
}

func Test_SliceClose(t *testing.T) {
	a, err := NewSlice(128, 2)
	require.NoError(t, err)

	_, err = a.Grow()
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close(), "double close is a no-op")

	_, err = a.Grow()
	require.ErrorIs(t, err, ErrExhausted)
}

func Test_SliceGeometry(t *testing.T) {
	_, err := NewSlice(0, 1)
	require.Error(t, err)

	_, err = NewSlice(128, 0)
	require.Error(t, err)

	_, err = NewSlice(128, -3)
	require.Error(t, err)
}
