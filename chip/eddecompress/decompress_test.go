package eddecompress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecompressIdentityPoint(t *testing.T) {
	var yBytes [32]byte
	yBytes[0] = 1 // y = 1 (little-endian)

	x, err := Decompress(yBytes, false)
	require.NoError(t, err)
	require.Equal(t, [32]byte{}, x, "identity point decompresses to x = 0")
}

func TestDecompressZeroXIgnoresSign(t *testing.T) {
	var yBytes [32]byte
	yBytes[0] = 1

	xPos, err := Decompress(yBytes, false)
	require.NoError(t, err)
	xNeg, err := Decompress(yBytes, true)
	require.NoError(t, err)

	// x = 0 has no sign ambiguity: the only square root of 0 is 0 itself, so
	// both sign bits recover the same (zero) coordinate.
	require.Equal(t, xPos, xNeg)
}
