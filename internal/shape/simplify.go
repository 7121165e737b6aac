package shape

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// PathLength returns the length of the polyline through pts, including the
// segment from the last point back to the first when closed is set.
func PathLength(pts []vec.Vec2, closed bool) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Length()
	}
	if closed && len(pts) > 1 {
		total += pts[0].Sub(pts[len(pts)-1]).Length()
	}
	return total
}

// dedupe drops consecutive repeats of the same point, including a final
// point that repeats the first one.
func dedupe(pts []vec.Vec2) []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

// SimplifyClosed reduces the closed ring pts to the vertices that deviate
// more than eps from the chords between their neighbours (Douglas-Peucker).
// The ring is first split at the point farthest from pts[0], then
// near-collinear vertices left over are removed.
func SimplifyClosed(pts []vec.Vec2, eps float64) []vec.Vec2 {
	pts = dedupe(pts)
	if len(pts) < 3 {
		return pts
	}

	far, farDist := 0, -1.0
	for i, p := range pts {
		if d := p.Sub(pts[0]).Length(); d > farDist {
			far, farDist = i, d
		}
	}

	// the two chains share their end points: 0..far and far..0 (wrapping)
	ring := append(append([]vec.Vec2{}, pts...), pts[0])
	first := douglasPeucker(ring[:far+1], eps)
	second := douglasPeucker(ring[far:], eps)

	out := make([]vec.Vec2, 0, len(first)+len(second))
	out = append(out, first...)
	out = append(out, second[1:len(second)-1]...)
	return dropCollinear(out, eps)
}

// douglasPeucker simplifies the open chain pts, always keeping both ends.
func douglasPeucker(pts []vec.Vec2, eps float64) []vec.Vec2 {
	if len(pts) < 3 {
		return append([]vec.Vec2{}, pts...)
	}
	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, len(pts) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}
		idx, dist := -1, eps
		for i := s.lo + 1; i < s.hi; i++ {
			if d := segmentDistance(pts[i], pts[s.lo], pts[s.hi]); d > dist {
				idx, dist = i, d
			}
		}
		if idx < 0 {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.lo, idx}, span{idx, s.hi})
	}

	out := make([]vec.Vec2, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// dropCollinear removes ring vertices lying within eps/sqrt(2) of the line
// through their neighbours, between them, while more than two remain.
func dropCollinear(ring []vec.Vec2, eps float64) []vec.Vec2 {
	out := append([]vec.Vec2{}, ring...)
	for i := 0; i < len(out) && len(out) > 2; {
		n := len(out)
		prev, cur, next := out[(i+n-1)%n], out[i], out[(i+1)%n]
		d := next.Sub(prev)
		area := math.Abs(cross(cur.Sub(prev), d))
		between := cur.Sub(prev).Dot(next.Sub(cur)) >= 0
		if between && area*area <= 0.5*eps*eps*d.Dot(d) {
			out = append(out[:i], out[i+1:]...)
			continue
		}
		i++
	}
	return out
}

// segmentDistance is the distance from p to the segment ab.
func segmentDistance(p, a, b vec.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(ab) / l2
	t = max(0, min(1, t))
	return p.Sub(a.Add(ab.Mul(t))).Length()
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
