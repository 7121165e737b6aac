// Package shape recognizes simple geometric outlines in freehand strokes.
//
// A stroke is treated as a closed ring and simplified with a tolerance of 2%
// of its perimeter; the number of vertices that survive decides the
// category. The classifier never fails: strokes with fewer than two
// distinct points simply produce no shape.
package shape

import (
	"InkSynth/internal/state"

	"seehuhn.de/go/geom/vec"
)

// Tolerance is the simplification tolerance as a fraction of the perimeter.
const Tolerance = 0.02

// CategoryFor maps a simplified vertex count to a category.
func CategoryFor(vertices int) (state.Category, bool) {
	switch {
	case vertices < 2:
		return 0, false
	case vertices == 2:
		return state.Line, true
	case vertices == 3:
		return state.Triangle, true
	case vertices == 4:
		return state.Rectangle, true
	case vertices <= 6:
		return state.Polygon, true
	default:
		return state.Circle, true
	}
}

// Classify simplifies the stroke path pts and assigns a category. ok is
// false for empty and degenerate strokes.
func Classify(pts []vec.Vec2) (contour []vec.Vec2, cat state.Category, ok bool) {
	distinct := dedupe(pts)
	if len(distinct) < 2 {
		return nil, 0, false
	}
	eps := Tolerance * PathLength(distinct, true)
	if eps == 0 {
		return nil, 0, false
	}
	contour = SimplifyClosed(distinct, eps)
	cat, ok = CategoryFor(len(contour))
	if !ok {
		return nil, 0, false
	}
	return contour, cat, true
}
