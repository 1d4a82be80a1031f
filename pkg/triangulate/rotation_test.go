package triangulate

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/objtri/pkg/geom"
	"github.com/chazu/objtri/pkg/obj"
)

// square is a unit-ish quad in the XZ plane. Rotating it and flattening
// it back must recover these coordinates, whatever the rotation.
var square = []mgl64.Vec3{{-1, 0, 1}, {1, 0, 1}, {1, 0, -1}, {-1, 0, -1}}

func rotatedSquareOBJ(rot mgl64.Mat3) (*obj.OBJ, []obj.Vertex) {
	o := &obj.OBJ{Positions: make([]mgl64.Vec3, len(square))}
	loop := make([]obj.Vertex, len(square))
	for i, p := range square {
		o.Positions[i] = rot.Mul3x1(p)
		loop[i] = obj.Vertex{i + 1, 0, 0}
	}
	return o, loop
}

// assertFlattened checks that aligning the rotated face's fitted normal
// back to the up axis restores the original square.
func assertFlattened(t *testing.T, deg int, o *obj.OBJ, loop []obj.Vertex) {
	t.Helper()

	n := fitPlaneNormal(o, loop)
	tf := geom.AlignTo(n, upAxis)

	for i, v := range loop {
		got := tf.Mul3x1(o.Pos(v))
		want := square[i]
		for axis := 0; axis < 3; axis++ {
			if math.Abs(got[axis]-want[axis]) > 0.001 {
				t.Fatalf("%d°: vertex %d flattened to %v, want %v", deg, i, got, want)
			}
		}
	}
}

func TestPlaneNormalRotationSweepX(t *testing.T) {
	for deg := 0; deg < 360; deg++ {
		rad := float64(deg) * math.Pi / 180
		o, loop := rotatedSquareOBJ(mgl64.Rotate3DX(rad))
		assertFlattened(t, deg, o, loop)
	}
}

func TestPlaneNormalRotationSweepZ(t *testing.T) {
	for deg := 0; deg < 360; deg++ {
		rad := float64(deg) * math.Pi / 180
		o, loop := rotatedSquareOBJ(mgl64.Rotate3DZ(rad))
		assertFlattened(t, deg, o, loop)
	}
}

func TestFitPlaneNormal(t *testing.T) {
	o, loop := rotatedSquareOBJ(mgl64.Ident3())
	n := fitPlaneNormal(o, loop)
	if math.Abs(math.Abs(n.Y())-1) > 1e-12 || math.Abs(n.X()) > 1e-12 || math.Abs(n.Z()) > 1e-12 {
		t.Errorf("normal of XZ-plane square = %v, want ±Y", n)
	}
}

func TestFitPlaneNormalCollinear(t *testing.T) {
	o := &obj.OBJ{Positions: []mgl64.Vec3{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}}
	loop := []obj.Vertex{{1}, {2}, {3}}
	n := fitPlaneNormal(o, loop)
	if n.Dot(n) != 0 {
		t.Errorf("collinear loop normal = %v, want zero vector", n)
	}
}
