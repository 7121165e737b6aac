// Package canvas holds the bitmap the studio draws into: a white layer of
// committed ink plus transparent layers for the stroke in progress and the
// live shape hint.
package canvas

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

type Layer int

const (
	Committed Layer = iota
	Wet
	Hint
	numLayers
)

type Canvas struct {
	width, height int
	layers        [numLayers]*image.RGBA
	raster        *vector.Rasterizer
}

// New returns a white canvas. Sizes below one pixel are raised to one.
func New(width, height int) *Canvas {
	width, height = max(width, 1), max(height, 1)
	c := &Canvas{
		width:  width,
		height: height,
		raster: vector.NewRasterizer(width, height),
	}
	for i := range c.layers {
		c.layers[i] = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	c.Clear(Committed)
	return c
}

func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// Layer gives direct access to one layer's pixels.
func (c *Canvas) Layer(l Layer) *image.RGBA {
	return c.layers[l]
}

// Clear paints the committed layer white, other layers transparent.
func (c *Canvas) Clear(l Layer) {
	img := c.layers[l]
	if l == Committed {
		draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
		return
	}
	clear(img.Pix)
}

// Snapshot returns a copy of the committed layer.
func (c *Canvas) Snapshot() *image.RGBA {
	src := c.layers[Committed]
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// Restore replaces the committed layer by img. A snapshot of a different
// size is anchored at the top-left corner on a white background.
func (c *Canvas) Restore(img *image.RGBA) {
	dst := c.layers[Committed]
	if img.Bounds() == dst.Bounds() {
		copy(dst.Pix, img.Pix)
		return
	}
	c.Clear(Committed)
	r := img.Bounds().Intersect(dst.Bounds())
	draw.Draw(dst, r, img, r.Min, draw.Src)
}

// Resize changes the canvas size, keeping existing content anchored at the
// top-left corner.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if width == c.width && height == c.height {
		return
	}
	old := c.layers
	c.width, c.height = width, height
	c.raster = vector.NewRasterizer(width, height)
	for i := range c.layers {
		c.layers[i] = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	c.Clear(Committed)
	for i, img := range old {
		r := img.Bounds().Intersect(c.layers[i].Bounds())
		draw.Draw(c.layers[i], r, img, r.Min, draw.Src)
	}
}

// Frame composites all layers into a new image for display.
func (c *Canvas) Frame() *image.RGBA {
	out := c.Snapshot()
	b := out.Bounds()
	draw.Draw(out, b, c.layers[Wet], b.Min, draw.Over)
	draw.Draw(out, b, c.layers[Hint], b.Min, draw.Over)
	return out
}
