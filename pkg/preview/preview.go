// Package preview renders a triangulated scene to a flat-shaded raster
// image for quick inspection, without a GPU. Rendering is orthographic:
// the model is rotated, fitted to the viewport and drawn with a z-buffer
// at a supersampled resolution, then filtered down.
package preview

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"

	"github.com/chazu/objtri/pkg/obj"
	"github.com/chazu/objtri/pkg/triangulate"
)

// Options controls the preview rendering.
type Options struct {
	Size        int     // output edge length in pixels
	Supersample int     // render at Size*Supersample, then downsample
	Yaw         float64 // model rotation about Y, radians
	Pitch       float64 // model rotation about X, radians
}

func (o *Options) defaults() {
	if o.Size <= 0 {
		o.Size = 256
	}
	if o.Supersample <= 0 {
		o.Supersample = 2
	}
}

var lightDir = mgl64.Vec3{-0.45, 0.8, 0.4}.Normalize()

// Render draws the given triangles of a mesh. An empty triangulation
// yields a plain background image.
func Render(o *obj.OBJ, tris triangulate.Triangulation, opts Options) *image.NRGBA {
	opts.defaults()
	side := opts.Size * opts.Supersample
	fb := newFrameBuffer(side)

	rot := mgl64.Rotate3DX(opts.Pitch).Mul3(mgl64.Rotate3DY(opts.Yaw))

	// Rotate every referenced position and find the bounding box.
	world := make([][3]mgl64.Vec3, len(tris))
	min := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, tri := range tris {
		for j, v := range tri {
			p := rot.Mul3x1(o.Pos(v))
			world[i][j] = p
			for axis := 0; axis < 3; axis++ {
				if p[axis] < min[axis] {
					min[axis] = p[axis]
				}
				if p[axis] > max[axis] {
					max[axis] = p[axis]
				}
			}
		}
	}

	if len(tris) > 0 {
		center := min.Add(max).Mul(0.5)
		extent := max.Sub(min)
		span := math.Max(extent.X(), math.Max(extent.Y(), extent.Z()))
		if span == 0 {
			span = 1
		}
		scale := 0.85 * float64(side) / span

		for _, tri := range world {
			var xs, ys, zs [3]float64
			for j, p := range tri {
				q := p.Sub(center)
				xs[j] = float64(side)/2 + q.X()*scale
				ys[j] = float64(side)/2 - q.Y()*scale
				zs[j] = q.Z() * scale
			}
			fb.rasterize(xs, ys, zs)
		}
	}

	img := fb.image()
	if opts.Supersample > 1 {
		img = downsample(img, opts.Size)
	}
	return img
}

// downsample filters the supersampled render down to the target size.
func downsample(img *image.NRGBA, target int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, target, target))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// WriteWebP encodes img as lossless WebP.
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: webp encode: %w", err)
	}
	return nil
}
