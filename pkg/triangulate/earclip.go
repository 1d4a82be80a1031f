// Package triangulate converts arbitrary polygonal faces into triangles
// using ear clipping over a 2D projection of each face.
//
// A face's vertex loop is flattened along its best-fit plane normal
// (Newell's method plus a Rodrigues alignment rotation), classified for
// winding once, and then clipped one ear at a time. Hierarchical cursors
// compose the per-face engine across groups, objects and whole scenes,
// skipping anything that cannot be triangulated.
package triangulate

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/objtri/pkg/geom"
	"github.com/chazu/objtri/pkg/obj"
)

// Tri is one emitted triangle: three vertex references into the source
// mesh rather than raw coordinates, so callers resolve positions,
// texcoords and normals themselves with the original attribute indices.
type Tri [3]obj.Vertex

// Triangulation is the complete triangle list for a polygon or scene.
type Triangulation []Tri

// upAxis is the canonical direction faces are flattened onto.
var upAxis = mgl64.Vec3{0, 1, 0}

// fitPlaneNormal estimates the best-fit plane normal of a vertex loop
// using Newell's method. The loop is cyclic (last connects to first);
// mild non-planarity yields the least-squares normal, a fully collinear
// loop a near-zero vector.
func fitPlaneNormal(o *obj.OBJ, loop []obj.Vertex) mgl64.Vec3 {
	var n mgl64.Vec3
	prev := o.Pos(loop[len(loop)-1])
	for _, v := range loop {
		curr := o.Pos(v)
		n[0] += (prev.Z() + curr.Z()) * (prev.Y() - curr.Y())
		n[1] += (prev.X() + curr.X()) * (prev.Z() - curr.Z())
		n[2] += (prev.Y() + curr.Y()) * (prev.X() - curr.X())
		prev = curr
	}
	if n.Dot(n) == 0 {
		return n
	}
	return n.Normalize()
}

// point projects a vertex onto the working plane: rotate the position by
// tf and keep the x and z coordinates.
func point(o *obj.OBJ, v obj.Vertex, tf mgl64.Mat3) geom.Point {
	p := tf.Mul3x1(o.Pos(v))
	return geom.Point{X: p.X(), Y: p.Z()}
}

// polygonWinding classifies the loop's orientation in the projected
// plane. The leftmost (ties: lowest) vertex of a simple polygon is
// always a convex corner, so the orientation of its neighbor triangle is
// the polygon's orientation. Computed once per face and held constant
// while the working polygon shrinks.
func polygonWinding(loop []obj.Vertex, o *obj.OBJ, tf mgl64.Mat3) bool {
	index := 0
	left := point(o, loop[0], tf)
	for i, v := range loop {
		p := point(o, v, tf)
		if p.X < left.X || (geom.ApproxEq(p.X, left.X) && p.Y < left.Y) {
			index = i
			left = p
		}
	}

	max := len(loop) - 1
	prev, next := index-1, index+1
	if index == 0 {
		prev = max
	}
	if index == max {
		next = 0
	}
	return geom.Triangle{
		point(o, loop[prev], tf),
		point(o, loop[index], tf),
		point(o, loop[next], tf),
	}.CCW()
}

// FaceTriangulator lazily clips one face into triangles. It is a single
// forward cursor over the shrinking working polygon; once exhausted it
// cannot be restarted.
type FaceTriangulator struct {
	obj     *obj.OBJ
	polygon []obj.Vertex // shrinks by one vertex per clipped ear
	winding bool         // fixed for the face's lifetime
	tf      mgl64.Mat3   // fixed projection onto the working plane
	reflex  []int        // scratch: winding-rejected candidates of one scan
}

// NewFaceTriangulator prepares a triangulator for one face of o. It
// returns ErrTooFewVertices when the face has fewer than 3 vertices.
func NewFaceTriangulator(o *obj.OBJ, face obj.Face) (*FaceTriangulator, error) {
	loop := make([]obj.Vertex, len(face.Vertices))
	copy(loop, face.Vertices)
	return newFaceTriangulator(o, loop)
}

// newFaceTriangulator takes ownership of loop as the working polygon.
func newFaceTriangulator(o *obj.OBJ, loop []obj.Vertex) (*FaceTriangulator, error) {
	if len(loop) < 3 {
		return nil, ErrTooFewVertices
	}
	tf := geom.AlignTo(fitPlaneNormal(o, loop), upAxis)
	return &FaceTriangulator{
		obj:     o,
		polygon: loop,
		winding: polygonWinding(loop, o, tf),
		tf:      tf,
	}, nil
}

// Next emits the next triangle, or false when the face is exhausted.
// When exactly 3 vertices remain they are emitted directly, without
// another scan. A face that turns out to have no valid ear mid-iteration
// terminates early; triangles already emitted remain valid.
func (t *FaceTriangulator) Next() (Tri, bool) {
	if len(t.polygon) < 3 {
		return Tri{}, false
	}
	if len(t.polygon) == 3 {
		tri := Tri{t.polygon[0], t.polygon[1], t.polygon[2]}
		t.polygon = t.polygon[:0]
		return tri, true
	}

	ear, ok := t.findEar()
	if !ok {
		// No way to recover; drop the rest of the face.
		t.polygon = t.polygon[:0]
		return Tri{}, false
	}
	return t.clip(ear), true
}

// findEar scans for the first clippable ear. The reflex scratch set is
// cleared at the start of each scan and accumulates every candidate
// rejected on winding; later candidates test against all earlier
// rejections, which stay valid because the polygon does not change
// within a scan. The scan considers at most len-1 candidates; running
// past that bound means no valid ear exists.
func (t *FaceTriangulator) findEar() (int, bool) {
	t.reflex = t.reflex[:0]
	max := len(t.polygon) - 1

	for ear := 0; ear < max; ear++ {
		prev, next := ear-1, ear+1
		if ear == 0 {
			prev = max
		}
		tri := geom.Triangle{
			point(t.obj, t.polygon[prev], t.tf),
			point(t.obj, t.polygon[ear], t.tf),
			point(t.obj, t.polygon[next], t.tf),
		}

		// A corner winding against the polygon is reflex, not an ear.
		if tri.CCW() != t.winding {
			t.reflex = append(t.reflex, ear)
			continue
		}

		// Clipping across a concavity: some reflex vertex sits inside
		// the candidate triangle.
		if t.reflexInside(tri, prev, next) {
			continue
		}

		// Clipping that would trap a later vertex inside the triangle.
		if t.trapsVertex(tri, ear) {
			continue
		}

		return ear, true
	}
	return 0, false
}

func (t *FaceTriangulator) reflexInside(tri geom.Triangle, prev, next int) bool {
	for _, j := range t.reflex {
		if j == prev || j == next {
			continue
		}
		if tri.Contains(point(t.obj, t.polygon[j], t.tf)) {
			return true
		}
	}
	return false
}

// trapsVertex reports whether a not-yet-scanned vertex falls inside the
// candidate triangle. A vertex projecting exactly onto one of the
// triangle's corners is that corner, not a trapped vertex.
func (t *FaceTriangulator) trapsVertex(tri geom.Triangle, ear int) bool {
	for _, v := range t.polygon[ear+1:] {
		p := point(t.obj, v, t.tf)
		if p == tri[0] || p == tri[1] || p == tri[2] {
			continue
		}
		if tri.Contains(p) {
			return true
		}
	}
	return false
}

// clip removes the ear vertex from the working polygon and returns its
// triangle as original, un-projected vertex references.
func (t *FaceTriangulator) clip(ear int) Tri {
	max := len(t.polygon) - 1
	prev, next := ear-1, ear+1
	if ear == 0 {
		prev = max
	}
	if ear == max {
		next = 0
	}
	tri := Tri{t.polygon[prev], t.polygon[ear], t.polygon[next]}
	t.polygon = append(t.polygon[:ear], t.polygon[ear+1:]...)
	return tri
}

// Triangulate clips a whole vertex loop at once, returning the complete
// triangle list or the first failure. A simple n-vertex polygon yields
// exactly n-2 triangles; a 3-vertex loop is returned as-is.
func Triangulate(loop []obj.Vertex, o *obj.OBJ) (Triangulation, error) {
	switch {
	case len(loop) < 3:
		return nil, ErrTooFewVertices
	case len(loop) == 3:
		return Triangulation{{loop[0], loop[1], loop[2]}}, nil
	}

	work := make([]obj.Vertex, len(loop))
	copy(work, loop)
	t, err := newFaceTriangulator(o, work)
	if err != nil {
		return nil, err
	}

	tris := make(Triangulation, 0, len(loop)-2)
	for len(t.polygon) > 3 {
		ear, ok := t.findEar()
		if !ok {
			return nil, ErrNoEarFound
		}
		tris = append(tris, t.clip(ear))
	}
	tris = append(tris, Tri{t.polygon[0], t.polygon[1], t.polygon[2]})
	return tris, nil
}
