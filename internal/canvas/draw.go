package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// MinWidth is the thinnest line the canvas draws, in pixels.
const MinWidth = 1.0

// capSteps is the number of straight pieces used for each round cap.
const capSteps = 8

// kappa places cubic Bézier control points for a quarter circle.
const kappa = 0.5522847498

// ContourPath turns a vertex list into a polyline path, closing it if asked.
func ContourPath(pts []vec.Vec2, closed bool) *path.Data {
	p := &path.Data{}
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	if closed && len(pts) > 2 {
		p.Close()
	}
	return p
}

// Segment draws a line from a to b with round caps.
func (c *Canvas) Segment(l Layer, a, b vec.Vec2, width float64, col color.Color) {
	c.fillPath(l, capsule(a, b, max(width, MinWidth)/2), col)
}

// Dot draws a filled disc.
func (c *Canvas) Dot(l Layer, center vec.Vec2, width float64, col color.Color) {
	c.fillPath(l, disc(center, max(width, MinWidth)/2), col)
}

// Polyline draws consecutive segments through pts. widths, when not nil,
// gives the width of the segment ending at each point; otherwise width is
// used throughout. A single point is drawn as a dot.
func (c *Canvas) Polyline(l Layer, pts []vec.Vec2, widths []float64, width float64, col color.Color) {
	widthAt := func(i int) float64 {
		if i < len(widths) {
			return widths[i]
		}
		return width
	}
	switch len(pts) {
	case 0:
		return
	case 1:
		c.Dot(l, pts[0], widthAt(0), col)
		return
	}
	for i := 1; i < len(pts); i++ {
		c.Segment(l, pts[i-1], pts[i], widthAt(i), col)
	}
}

// Outline strokes the straight segments of p, including closing segments.
func (c *Canvas) Outline(l Layer, p *path.Data, width float64, col color.Color) {
	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			c.Segment(l, current, p.Coords[k], width, col)
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			c.Segment(l, current, p.Coords[k+1], width, col)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			c.Segment(l, current, p.Coords[k+2], width, col)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				c.Segment(l, current, start, width, col)
			}
			current = start
		}
	}
}

// Circle strokes a circle outline.
func (c *Canvas) Circle(l Layer, center vec.Vec2, radius, width float64, col color.Color) {
	const steps = 64
	pts := make([]vec.Vec2, steps)
	for i := range pts {
		theta := 2 * math.Pi * float64(i) / steps
		pts[i] = center.Add(vec.Vec2{X: math.Cos(theta), Y: math.Sin(theta)}.Mul(radius))
	}
	c.Outline(l, ContourPath(pts, true), width, col)
}

// Label writes text with its baseline starting at at.
func (c *Canvas) Label(l Layer, at vec.Vec2, text string, col color.Color) {
	d := font.Drawer{
		Dst:  c.layers[l],
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(at.X)), int(math.Round(at.Y))),
	}
	d.DrawString(text)
}

// fillPath rasterises p into layer l. The rasterizer only covers the
// bounding box of p, so small shapes stay cheap on large canvases.
func (c *Canvas) fillPath(l Layer, p *path.Data, col color.Color) {
	box, ok := c.pixelBounds(p.Coords)
	if !ok {
		return
	}
	c.raster.Reset(box.Dx(), box.Dy())
	ox, oy := float32(box.Min.X), float32(box.Min.Y)
	pt := func(v vec.Vec2) (float32, float32) {
		return float32(v.X) - ox, float32(v.Y) - oy
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			c.raster.MoveTo(pt(p.Coords[k]))
			k++
		case path.CmdLineTo:
			c.raster.LineTo(pt(p.Coords[k]))
			k++
		case path.CmdQuadTo:
			x1, y1 := pt(p.Coords[k])
			x2, y2 := pt(p.Coords[k+1])
			c.raster.QuadTo(x1, y1, x2, y2)
			k += 2
		case path.CmdCubeTo:
			x1, y1 := pt(p.Coords[k])
			x2, y2 := pt(p.Coords[k+1])
			x3, y3 := pt(p.Coords[k+2])
			c.raster.CubeTo(x1, y1, x2, y2, x3, y3)
			k += 3
		case path.CmdClose:
			c.raster.ClosePath()
		}
	}
	c.raster.Draw(c.layers[l], box, image.NewUniform(col), image.Point{})
}

// pixelBounds returns the integer box around coords, clipped to the canvas.
func (c *Canvas) pixelBounds(coords []vec.Vec2) (image.Rectangle, bool) {
	if len(coords) == 0 {
		return image.Rectangle{}, false
	}
	xMin, yMin := coords[0].X, coords[0].Y
	xMax, yMax := xMin, yMin
	for _, v := range coords[1:] {
		xMin, xMax = min(xMin, v.X), max(xMax, v.X)
		yMin, yMax = min(yMin, v.Y), max(yMax, v.Y)
	}
	box := image.Rect(
		int(math.Floor(xMin)), int(math.Floor(yMin)),
		int(math.Ceil(xMax))+1, int(math.Ceil(yMax))+1,
	).Intersect(c.Bounds())
	return box, !box.Empty()
}

// capsule builds the outline of a segment of half-width r with round caps
// as a single simple polygon, so the winding never cancels itself out.
func capsule(a, b vec.Vec2, r float64) *path.Data {
	d := b.Sub(a)
	length := d.Length()
	if length < 1e-9 {
		return disc(a, r)
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}

	p := (&path.Data{}).MoveTo(a.Add(n.Mul(r))).LineTo(b.Add(n.Mul(r)))
	for i := 1; i <= capSteps; i++ {
		theta := math.Pi * float64(i) / capSteps
		p.LineTo(b.Add(n.Mul(r * math.Cos(theta))).Add(t.Mul(r * math.Sin(theta))))
	}
	p.LineTo(a.Sub(n.Mul(r)))
	for i := 1; i < capSteps; i++ {
		theta := math.Pi * float64(i) / capSteps
		p.LineTo(a.Sub(n.Mul(r * math.Cos(theta))).Sub(t.Mul(r * math.Sin(theta))))
	}
	return p.Close()
}

// disc builds a circle from four cubic Bézier arcs.
func disc(center vec.Vec2, r float64) *path.Data {
	cx, cy := center.X, center.Y
	kr := kappa * r
	pt := func(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }
	return (&path.Data{}).
		MoveTo(pt(cx, cy-r)).
		CubeTo(pt(cx+kr, cy-r), pt(cx+r, cy-kr), pt(cx+r, cy)).
		CubeTo(pt(cx+r, cy+kr), pt(cx+kr, cy+r), pt(cx, cy+r)).
		CubeTo(pt(cx-kr, cy+r), pt(cx-r, cy+kr), pt(cx-r, cy)).
		CubeTo(pt(cx-r, cy-kr), pt(cx-kr, cy-r), pt(cx, cy-r)).
		Close()
}
