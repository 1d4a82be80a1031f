package geom

import "github.com/go-gl/mathgl/mgl64"

// antiParallelCos is the cosine below which two unit vectors are treated
// as anti-parallel. Rodrigues' formula divides by 1+cos, which loses all
// precision there.
const antiParallelCos = -1.0 + 1e-12

// AlignTo returns the rotation matrix mapping the unit vector n onto the
// unit vector up, built with Rodrigues' formula from their cross product
// (rotation axis) and dot product (cosine of the angle).
//
// The anti-parallel configuration (n ≈ -up) has no unique solution and
// would divide by zero. It falls back to a half-turn about the residual
// cross-product direction when one exists, or about an arbitrary axis
// perpendicular to up when n is exactly opposite.
func AlignTo(n, up mgl64.Vec3) mgl64.Mat3 {
	c := n.Dot(up)
	axis := n.Cross(up)

	if c <= antiParallelCos {
		if axis.Dot(axis) == 0 {
			axis = perpendicular(up)
		}
		return halfTurn(axis.Normalize())
	}

	x, y, z := axis.X(), axis.Y(), axis.Z()
	k := 1 / (1 + c)

	return mgl64.Mat3{
		x*x*k + c, x*y*k + z, x*z*k - y,
		y*x*k - z, y*y*k + c, y*z*k + x,
		z*x*k + y, z*y*k - x, z*z*k + c,
	}
}

// halfTurn is the 180° rotation about the unit axis a: 2aaᵀ - I.
func halfTurn(a mgl64.Vec3) mgl64.Mat3 {
	x, y, z := a.X(), a.Y(), a.Z()
	return mgl64.Mat3{
		2*x*x - 1, 2 * x * y, 2 * x * z,
		2 * x * y, 2*y*y - 1, 2 * y * z,
		2 * x * z, 2 * y * z, 2*z*z - 1,
	}
}

// perpendicular returns some vector perpendicular to v.
func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	p := v.Cross(mgl64.Vec3{1, 0, 0})
	if p.Dot(p) == 0 {
		p = v.Cross(mgl64.Vec3{0, 0, 1})
	}
	return p
}
