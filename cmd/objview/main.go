// Command objview shows a triangulated OBJ scene in a window, slowly
// spinning, drawn with flat-shaded fill and a wireframe overlay.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/chazu/objtri/pkg/obj"
	"github.com/chazu/objtri/pkg/triangulate"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image

	lightDir = mgl64.Vec3{-0.45, 0.8, 0.4}.Normalize()
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

type game struct {
	tris  [][3]mgl64.Vec3 // resolved corner positions, centered on origin
	scale float64
	size  int
	angle float64
}

func newGame(o *obj.OBJ, tris triangulate.Triangulation, size int) *game {
	min := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	resolved := make([][3]mgl64.Vec3, len(tris))
	for i, tri := range tris {
		for j, v := range tri {
			p := o.Pos(v)
			resolved[i][j] = p
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

	center := min.Add(max).Mul(0.5)
	extent := max.Sub(min)
	span := math.Max(extent.X(), math.Max(extent.Y(), extent.Z()))
	if span == 0 {
		span = 1
	}
	for i := range resolved {
		for j := range resolved[i] {
			resolved[i][j] = resolved[i][j].Sub(center)
		}
	}

	return &game{
		tris:  resolved,
		scale: 0.75 * float64(size) / span,
		size:  size,
	}
}

func (g *game) Update() error {
	g.angle += 0.01
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	rot := mgl64.Rotate3DX(0.35).Mul3(mgl64.Rotate3DY(g.angle))

	type drawn struct {
		x, y  [3]float32
		depth float64
		shade float64
	}
	ds := make([]drawn, 0, len(g.tris))

	half := float64(g.size) / 2
	for _, tri := range g.tris {
		var d drawn
		var world [3]mgl64.Vec3
		for j, p := range tri {
			q := rot.Mul3x1(p)
			world[j] = q
			d.x[j] = float32(half + q.X()*g.scale)
			d.y[j] = float32(half - q.Y()*g.scale)
			d.depth += q.Z() / 3
		}
		n := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
		if n.Dot(n) == 0 {
			continue
		}
		n = n.Normalize()
		d.shade = 0.3 + 0.7*math.Abs(n.Dot(lightDir))
		ds = append(ds, d)
	}

	// Painter's order: far triangles first.
	sort.Slice(ds, func(i, j int) bool { return ds[i].depth < ds[j].depth })

	for _, d := range ds {
		v := uint8(215 * d.shade)
		fillTriangle(screen, d.x, d.y, color.RGBA{R: v, G: v, B: v, A: 255})
		strokeTriangle(screen, d.x, d.y, color.RGBA{R: 40, G: 40, B: 48, A: 255})
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.size, g.size
}

func fillTriangle(screen *ebiten.Image, xs, ys [3]float32, clr color.RGBA) {
	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255

	vertices := make([]ebiten.Vertex, 3)
	for i := range vertices {
		vertices[i] = ebiten.Vertex{
			DstX:   xs[i],
			DstY:   ys[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, whiteSub, op)
}

func strokeTriangle(screen *ebiten.Image, xs, ys [3]float32, clr color.RGBA) {
	var path vector.Path
	path.MoveTo(xs[0], ys[0])
	path.LineTo(xs[1], ys[1])
	path.LineTo(xs[2], ys[2])
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: 1})

	cr := float32(clr.R) / 255
	cg := float32(clr.G) / 255
	cb := float32(clr.B) / 255
	ca := float32(clr.A) / 255
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vertices, indices, whiteSub, op)
}

func main() {
	size := flag.Int("size", 640, "window edge length in pixels")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: objview [flags] input.obj")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	scene, err := obj.Load(input)
	if err != nil {
		log.Fatal(err)
	}
	tris, err := triangulate.Scene(scene)
	if err != nil {
		log.Fatalf("triangulate %s: %v", input, err)
	}
	log.Printf("%s: %d triangles", input, len(tris))

	ebiten.SetWindowSize(*size, *size)
	ebiten.SetWindowTitle("objview - " + input)
	if err := ebiten.RunGame(newGame(scene, tris, *size)); err != nil {
		log.Fatal(err)
	}
}
