package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestForAsset_ProducesPNG(t *testing.T) {
	png, err := ForAsset(123456789)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestForAsset_StableForSameID(t *testing.T) {
	a, err := ForAsset(42)
	require.NoError(t, err)
	b, err := ForAsset(42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
