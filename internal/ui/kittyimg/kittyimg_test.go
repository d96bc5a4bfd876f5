package kittyimg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	// Noise keeps the PNG from compressing into a single chunk.
	rng := rand.New(rand.NewPCG(1, 2)) //nolint:gosec // test pixels
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(rng.UintN(256)), G: uint8(rng.UintN(256)), B: 200, A: 255}) //nolint:gosec // < 256
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncode_SingleChunk(t *testing.T) {
	seq, err := Encode(pngBytes(t, 4, 4), 20, 10)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(seq, "\x1b_Ga=T,f=100,c=20,r=10,m=0;"))
	assert.Equal(t, 1, strings.Count(seq, "\x1b_G"))
}

func TestEncode_Chunks(t *testing.T) {
	seq, err := Encode(pngBytes(t, 256, 256), 20, 10)
	require.NoError(t, err)
	n := strings.Count(seq, "\x1b_G")
	require.Greater(t, n, 1)
	assert.Contains(t, seq, ",m=1;")
	assert.Equal(t, 1, strings.Count(seq, "m=0;"), "only the last chunk ends the image")
}

func TestEncode_BadData(t *testing.T) {
	_, err := Encode([]byte("not an image"), 20, 10)
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 8, 8), 0o600))

	seq, err := File(path, 10, 5)
	require.NoError(t, err)
	assert.Contains(t, seq, "c=10,r=5")

	_, err = File(filepath.Join(t.TempDir(), "missing.png"), 10, 5)
	assert.Error(t, err)
}

func TestPlaceholder(t *testing.T) {
	lines := Placeholder(20, 10)
	require.Len(t, lines, 10)
	for i, l := range lines {
		assert.Equal(t, 20, lipgloss.Width(l), "line %d", i)
	}
	assert.Contains(t, lines[5], "♪")
	assert.Nil(t, Placeholder(3, 10))
}
