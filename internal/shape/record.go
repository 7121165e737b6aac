package shape

import (
	"math"

	"InkSynth/internal/state"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Build computes the shape record for a classified contour of stroke.
func Build(stroke *state.Stroke, contour []vec.Vec2, cat state.Category, color state.RGB) state.ShapeRecord {
	box := Bounds(contour)
	return state.ShapeRecord{
		ID:           state.NewID(),
		Seq:          state.NextSeq(),
		StrokeID:     stroke.ID,
		Category:     cat,
		Contour:      append([]vec.Vec2{}, contour...),
		Color:        color,
		Centroid:     Centroid(contour),
		Width:        box.Dx(),
		Height:       box.Dy(),
		Pressure:     stroke.AveragePressure(),
		StrokeLength: stroke.Length(),
	}
}

// Recognize classifies a finished stroke and builds its record. ok is false
// when the stroke is degenerate.
func Recognize(stroke *state.Stroke) (state.ShapeRecord, bool) {
	contour, cat, ok := Classify(stroke.Points)
	if !ok {
		return state.ShapeRecord{}, false
	}
	return Build(stroke, contour, cat, stroke.Color), true
}

// Bounds returns the axis-aligned bounding box of pts.
func Bounds(pts []vec.Vec2) rect.Rect {
	if len(pts) == 0 {
		return rect.Rect{}
	}
	box := rect.Rect{LLx: pts[0].X, LLy: pts[0].Y, URx: pts[0].X, URy: pts[0].Y}
	for _, p := range pts[1:] {
		box.LLx = min(box.LLx, p.X)
		box.LLy = min(box.LLy, p.Y)
		box.URx = max(box.URx, p.X)
		box.URy = max(box.URy, p.Y)
	}
	return box
}

// Centroid returns the area-weighted centroid of the closed polygon pts.
// Polygons without enclosed area fall back to the middle of their
// bounding box.
func Centroid(pts []vec.Vec2) vec.Vec2 {
	var m00, m10, m01 float64
	n := len(pts)
	for i := range n {
		a, b := pts[i], pts[(i+1)%n]
		c := cross(a, b)
		m00 += c
		m10 += (a.X + b.X) * c
		m01 += (a.Y + b.Y) * c
	}
	m00 /= 2
	if math.Abs(m00) < 1e-9 {
		box := Bounds(pts)
		return vec.Vec2{X: (box.LLx + box.URx) / 2, Y: (box.LLy + box.URy) / 2}
	}
	return vec.Vec2{X: m10 / (6 * m00), Y: m01 / (6 * m00)}
}

// EnclosingCircle returns the smallest circle containing every point of
// pts (Welzl's algorithm in its incremental form).
func EnclosingCircle(pts []vec.Vec2) (center vec.Vec2, radius float64) {
	if len(pts) == 0 {
		return vec.Vec2{}, 0
	}
	c := circle{center: pts[0]}
	for i := 1; i < len(pts); i++ {
		if c.contains(pts[i]) {
			continue
		}
		c = circle{center: pts[i]}
		for j := 0; j < i; j++ {
			if c.contains(pts[j]) {
				continue
			}
			c = diameterCircle(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if !c.contains(pts[k]) {
					c = circumcircle(pts[i], pts[j], pts[k])
				}
			}
		}
	}
	return c.center, c.radius
}

type circle struct {
	center vec.Vec2
	radius float64
}

func (c circle) contains(p vec.Vec2) bool {
	return p.Sub(c.center).Length() <= c.radius*(1+1e-12)+1e-9
}

func diameterCircle(a, b vec.Vec2) circle {
	center := a.Add(b).Mul(0.5)
	return circle{center: center, radius: a.Sub(center).Length()}
}

// circumcircle passes through a, b and c. Collinear points get the circle
// over the two farthest apart.
func circumcircle(a, b, c vec.Vec2) circle {
	ab, ac := b.Sub(a), c.Sub(a)
	d := 2 * cross(ab, ac)
	if math.Abs(d) < 1e-12 {
		best := diameterCircle(a, b)
		for _, cand := range []circle{diameterCircle(a, c), diameterCircle(b, c)} {
			if cand.radius > best.radius {
				best = cand
			}
		}
		return best
	}
	ab2, ac2 := ab.Dot(ab), ac.Dot(ac)
	off := vec.Vec2{
		X: (ac.Y*ab2 - ab.Y*ac2) / d,
		Y: (ab.X*ac2 - ac.X*ab2) / d,
	}
	return circle{center: a.Add(off), radius: off.Length()}
}
