// Package ogimage renders the social preview card shared by every page.
package ogimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Width       = 1200
	Height      = 630
	ContentType = "image/png"
	padding     = 80
)

var (
	gradientFrom = color.RGBA{R: 0xDC, G: 0x26, B: 0x26, A: 0xFF}
	gradientTo   = color.RGBA{R: 0x99, G: 0x1B, B: 0x1B, A: 0xFF}
)

// Card is the text of the preview.
type Card struct {
	Title   string
	Tagline string
}

// Render draws card onto a red diagonal gradient and encodes it as PNG.
func Render(card Card) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fillGradient(img)

	// Title at ~80px, tagline at ~40px, stacked around the centre line.
	titleHeight := drawCentered(img, card.Title, 6, Height/2-20, true)
	drawCentered(img, card.Tagline, 3, Height/2+titleHeight/2, false)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fillGradient paints top-left to bottom-right.
func fillGradient(img *image.RGBA) {
	span := float64(Width + Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			t := float64(x+y) / span
			img.SetRGBA(x, y, color.RGBA{
				R: lerp(gradientFrom.R, gradientTo.R, t),
				G: lerp(gradientFrom.G, gradientTo.G, t),
				B: lerp(gradientFrom.B, gradientTo.B, t),
				A: 0xFF,
			})
		}
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// drawCentered renders text with the 7x13 bitmap face on a small canvas and
// upscales it onto dst, shrinking the scale until it fits between the
// paddings. anchorBottom places the text above baselineY instead of below.
// It returns the drawn height.
func drawCentered(dst *image.RGBA, text string, scale, y int, anchorBottom bool) int {
	if text == "" {
		return 0
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Src: image.White, Face: face}
	w := d.MeasureString(text).Ceil()
	h := face.Height

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = small
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(text)

	for scale > 1 && w*scale > Width-2*padding {
		scale--
	}
	sw, sh := w*scale, h*scale

	x0 := (Width - sw) / 2
	y0 := y
	if anchorBottom {
		y0 = y - sh
	}
	target := image.Rect(x0, y0, x0+sw, y0+sh)
	draw.CatmullRom.Scale(dst, target, small, small.Bounds(), draw.Over, nil)
	return sh
}

// Cache renders a card once and serves the same bytes afterwards.
type Cache struct {
	card Card
	once sync.Once
	png  []byte
	err  error
}

func NewCache(card Card) *Cache {
	return &Cache{card: card}
}

func (c *Cache) PNG() ([]byte, error) {
	c.once.Do(func() {
		c.png, c.err = Render(c.card)
	})
	return c.png, c.err
}
