package triangulate_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/objtri/pkg/obj"
	"github.com/chazu/objtri/pkg/triangulate"
)

// cubeOBJ is an axis-aligned cube of six quad faces split over two
// objects.
func cubeOBJ() *obj.OBJ {
	o := &obj.OBJ{
		Positions: []mgl64.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
	}
	quad := func(a, b, c, d int) obj.Face {
		return obj.NewFace([]obj.Vertex{{a}, {b}, {c}, {d}})
	}
	o.Objects = []obj.Object{
		{
			Name: "sides",
			Groups: []obj.Group{{Name: "default", Faces: []obj.Face{
				quad(5, 6, 7, 8), // front
				quad(1, 4, 3, 2), // back
				quad(1, 5, 8, 4), // left
				quad(2, 3, 7, 6), // right
			}}},
		},
		{
			Name: "caps",
			Groups: []obj.Group{{Name: "default", Faces: []obj.Face{
				quad(1, 2, 6, 5), // bottom
				quad(4, 8, 7, 3), // top
			}}},
		},
	}
	return o
}

func drain(next func() (triangulate.Tri, bool)) int {
	var count int
	for {
		if _, ok := next(); !ok {
			return count
		}
		count++
	}
}

func TestSceneCube(t *testing.T) {
	tris, err := triangulate.Scene(cubeOBJ())
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if len(tris) != 12 {
		t.Errorf("got %d triangles, want 12", len(tris))
	}
}

func TestGroupSkipsDegenerateFaces(t *testing.T) {
	o := cubeOBJ()
	group := &o.Objects[0].Groups[0]
	group.Faces = append([]obj.Face{obj.NewFace([]obj.Vertex{{1}, {2}})}, group.Faces...)
	group.Faces = append(group.Faces, obj.NewFace([]obj.Vertex{{3}}))

	g, err := triangulate.NewGroupTriangulator(o, group)
	if err != nil {
		t.Fatalf("NewGroupTriangulator: %v", err)
	}
	if got := drain(g.Next); got != 8 {
		t.Errorf("group emitted %d triangles, want 8", got)
	}
}

func TestGroupSingleValidQuad(t *testing.T) {
	o := cubeOBJ()
	group := &obj.Group{Name: "mixed", Faces: []obj.Face{
		obj.NewFace([]obj.Vertex{{1}, {2}}),
		obj.NewFace([]obj.Vertex{{5}, {6}, {7}, {8}}),
		obj.NewFace([]obj.Vertex{{3}}),
	}}
	g, err := triangulate.NewGroupTriangulator(o, group)
	if err != nil {
		t.Fatalf("NewGroupTriangulator: %v", err)
	}
	if got := drain(g.Next); got != 2 {
		t.Errorf("group emitted %d triangles, want 2", got)
	}
}

func TestGroupAllDegenerate(t *testing.T) {
	o := cubeOBJ()
	group := &obj.Group{Name: "broken", Faces: []obj.Face{
		obj.NewFace([]obj.Vertex{{1}, {2}}),
		obj.NewFace([]obj.Vertex{{3}}),
	}}
	if _, err := triangulate.NewGroupTriangulator(o, group); !errors.Is(err, triangulate.ErrNoValidFacesFound) {
		t.Errorf("err = %v, want ErrNoValidFacesFound", err)
	}
}

func TestObjectNoValidGroups(t *testing.T) {
	o := cubeOBJ()
	object := &obj.Object{
		Name: "broken",
		Groups: []obj.Group{
			{Name: "empty"},
			{Name: "degenerate", Faces: []obj.Face{obj.NewFace([]obj.Vertex{{1}, {2}})}},
		},
	}
	if _, err := triangulate.NewObjectTriangulator(o, object); !errors.Is(err, triangulate.ErrNoValidGroupsFound) {
		t.Errorf("err = %v, want ErrNoValidGroupsFound", err)
	}
}

func TestObjectSkipsBrokenGroups(t *testing.T) {
	o := cubeOBJ()
	object := &o.Objects[0]
	object.Groups = append([]obj.Group{{Name: "empty"}}, object.Groups...)

	ot, err := triangulate.NewObjectTriangulator(o, object)
	if err != nil {
		t.Fatalf("NewObjectTriangulator: %v", err)
	}
	if got := drain(ot.Next); got != 8 {
		t.Errorf("object emitted %d triangles, want 8", got)
	}
}

func TestSceneEmpty(t *testing.T) {
	if _, err := triangulate.Scene(&obj.OBJ{}); !errors.Is(err, triangulate.ErrNoValidObjectsFound) {
		t.Errorf("err = %v, want ErrNoValidObjectsFound", err)
	}
}

func TestSceneSkipsEmptyObjects(t *testing.T) {
	o := cubeOBJ()
	o.Objects = append([]obj.Object{{Name: "empty"}}, o.Objects...)
	o.Objects = append(o.Objects, obj.Object{Name: "trailing"})

	tris, err := triangulate.Scene(o)
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if len(tris) != 12 {
		t.Errorf("got %d triangles, want 12", len(tris))
	}
}

func TestSceneCursorNotRestartable(t *testing.T) {
	cursor, err := triangulate.NewSceneTriangulator(cubeOBJ())
	if err != nil {
		t.Fatalf("NewSceneTriangulator: %v", err)
	}
	if got := drain(cursor.Next); got != 12 {
		t.Errorf("scene emitted %d triangles, want 12", got)
	}
	for i := 0; i < 3; i++ {
		if _, ok := cursor.Next(); ok {
			t.Fatal("Next() after exhaustion returned a triangle")
		}
	}
}
