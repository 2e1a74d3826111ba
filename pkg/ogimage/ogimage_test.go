package ogimage

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	data, err := Render(Card{Title: "TraceField", Tagline: "Solutions digitales sur-mesure pour artisans et PME"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())

	// Corners keep the gradient colours; the centre row carries white text.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xDC), r>>8)
	assert.Equal(t, uint32(0x26), g>>8)
	assert.Equal(t, uint32(0x26), b>>8)

	bright := 0
	for x := 0; x < Width; x++ {
		for y := Height/2 - 60; y < Height/2-25; y++ {
			if _, g, _, _ := img.At(x, y).RGBA(); g>>8 > 0xC0 {
				bright++
			}
		}
	}
	assert.Positive(t, bright, "title pixels expected above the centre line")
}

func TestCache(t *testing.T) {
	c := NewCache(Card{Title: "TraceField"})
	first, err := c.PNG()
	require.NoError(t, err)
	second, err := c.PNG()
	require.NoError(t, err)
	assert.Same(t, &first[0], &second[0])
}
