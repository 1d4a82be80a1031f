// Package geom provides the small 2D predicates and the plane-alignment
// rotation the triangulator is built on.
package geom

import "math"

// epsilon is the float64 machine epsilon (2^-52). Sign tests on
// determinants use it so that axis-aligned and collinear-adjacent points
// do not flip predicates on rounding noise.
const epsilon = 2.220446049250313e-16

// ApproxEq reports whether a and b differ by less than machine epsilon.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// Point is a 2D point in the projected working plane. Points are only
// ever derived from 3D positions during a triangulation run and never
// persisted.
type Point struct {
	X, Y float64
}

// Triangle is three projected corners in loop order.
type Triangle [3]Point

// Contains reports whether p lies inside the triangle, via barycentric
// coordinates. A degenerate (near-zero area) triangle contains every
// point: the engine prefers a rejected ear over clipping through
// collinear corners.
func (t Triangle) Contains(p Point) bool {
	a, b, c := t[0], t[1], t[2]
	det := func(s, u, w Point) float64 {
		return (u.Y-w.Y)*(s.X-c.X) + (w.X-u.X)*(s.Y-c.Y)
	}

	d := det(a, b, c)
	if ApproxEq(d, 0) {
		return true
	}
	inv := 1 / d

	l1 := inv * det(p, b, c)
	if l1 < 0 {
		return false
	}
	l2 := inv * det(p, c, a)
	if l2 < 0 {
		return false
	}
	return l1+l2 < 1
}

// CCW reports the triangle's orientation: true when the corners run
// counter-clockwise, determined by the sign of twice the signed area.
func (t Triangle) CCW() bool {
	a, b, c := t[0], t[1], t[2]
	return (b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y) > 0
}
