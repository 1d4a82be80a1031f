package preview

import (
	"image"
	"math"
)

// Background and surface colors of the preview.
var (
	background = [4]uint8{24, 24, 28, 255}
	surface    = [3]float64{205, 205, 212}
)

// frameBuffer is a square color buffer with a depth channel. Depth grows
// toward the viewer: a fragment wins when its z is greater.
type frameBuffer struct {
	side  int
	color []uint8
	depth []float64
}

func newFrameBuffer(side int) *frameBuffer {
	fb := &frameBuffer{
		side:  side,
		color: make([]uint8, side*side*4),
		depth: make([]float64, side*side),
	}
	for i := range fb.depth {
		fb.depth[i] = math.Inf(-1)
	}
	for i := 0; i < len(fb.color); i += 4 {
		fb.color[i] = background[0]
		fb.color[i+1] = background[1]
		fb.color[i+2] = background[2]
		fb.color[i+3] = background[3]
	}
	return fb
}

// rasterize draws one screen-space triangle with barycentric
// interpolation, a depth test and flat shading from the face normal.
func (fb *frameBuffer) rasterize(xs, ys, zs [3]float64) {
	// Face normal in screen space.
	e1x, e1y, e1z := xs[1]-xs[0], ys[1]-ys[0], zs[1]-zs[0]
	e2x, e2y, e2z := xs[2]-xs[0], ys[2]-ys[0], zs[2]-zs[0]
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	nx, ny, nz = nx/nl, ny/nl, nz/nl

	// Screen y points down, so flip the light's y component here.
	ndl := math.Abs(nx*lightDir.X() - ny*lightDir.Y() + nz*lightDir.Z())
	shade := 0.25 + 0.75*ndl

	minX := int(math.Min(math.Min(xs[0], xs[1]), xs[2]))
	maxX := int(math.Max(math.Max(xs[0], xs[1]), xs[2])) + 1
	minY := int(math.Min(math.Min(ys[0], ys[1]), ys[2]))
	maxY := int(math.Max(math.Max(ys[0], ys[1]), ys[2])) + 1
	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.side {
		maxX = fb.side - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.side {
		maxY = fb.side - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (ys[1]-ys[2])*(xs[0]-xs[2]) + (xs[2]-xs[1])*(ys[0]-ys[2])
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := ys[1] - ys[2]
	dx21 := xs[2] - xs[1]
	dy20 := ys[2] - ys[0]
	dx02 := xs[0] - xs[2]

	r := clamp255(surface[0] * shade)
	g := clamp255(surface[1] * shade)
	b := clamp255(surface[2] * shade)

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - ys[2]
		rowOff := sy * fb.side
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - xs[2]
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*zs[0] + w1*zs[1] + w2*zs[2]
			zIdx := rowOff + sx
			if z <= fb.depth[zIdx] {
				continue
			}
			fb.depth[zIdx] = z

			pxIdx := zIdx * 4
			fb.color[pxIdx] = r
			fb.color[pxIdx+1] = g
			fb.color[pxIdx+2] = b
			fb.color[pxIdx+3] = 255
		}
	}
}

func (fb *frameBuffer) image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.side, fb.side))
	copy(img.Pix, fb.color)
	return img
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
