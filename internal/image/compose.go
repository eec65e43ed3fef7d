package imagepkg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Compositor draws ID cards. TrueType faces keep glyph caches, so drawing is
// serialized.
type Compositor struct {
	layout Layout
	faces  map[Weight]font.Face

	mu sync.Mutex
}

func NewCompositor(layout Layout, bold, regular FontHandle) *Compositor {
	return &Compositor{
		layout: layout,
		faces: map[Weight]font.Face{
			Bold:    bold.Face,
			Regular: regular.Face,
		},
	}
}

func (c *Compositor) Layout() Layout {
	return c.layout
}

// Placements resolves where each value would be drawn.
func (c *Compositor) Placements(values map[Field]string) []Placement {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.Place(values, c.faces)
}

// Compose resizes the template to the card size (aspect ratio is not kept),
// overlays the photo using its own alpha, then draws the text fields in black.
// Text is never wrapped.
func (c *Compositor) Compose(template, photo image.Image, values map[Field]string) image.Image {
	l := c.layout
	canvas := imaging.Resize(template, l.Width, l.Height, imaging.Lanczos)

	if photo != nil {
		p := imaging.Resize(photo, l.PhotoSize, l.PhotoSize, imaging.Lanczos)
		canvas = imaging.Overlay(canvas, p, l.PhotoAt, 1.0)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	dc := gg.NewContextForImage(canvas)
	dc.SetColor(color.Black)
	for _, p := range l.Place(values, c.faces) {
		dc.SetFontFace(p.Face)
		dc.DrawString(p.Text, p.X, p.Baseline())
	}
	return dc.Image()
}

func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
