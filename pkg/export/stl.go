// Package export writes triangulated scenes to interchange formats.
package export

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/objtri/pkg/obj"
	"github.com/chazu/objtri/pkg/triangulate"
)

// STL writes the triangles of a mesh as binary STL. Vertex references
// are resolved against the mesh's position array; texcoords and normals
// are not part of STL and are dropped.
func STL(o *obj.OBJ, tris triangulate.Triangulation, path string) error {
	if len(tris) == 0 {
		return fmt.Errorf("export: no triangles to write to %s", path)
	}

	mesh := make([]*sdf.Triangle3, 0, len(tris))
	for _, tri := range tris {
		var t3 sdf.Triangle3
		for i, v := range tri {
			p := o.Pos(v)
			t3[i] = v3.Vec{X: p.X(), Y: p.Y(), Z: p.Z()}
		}
		mesh = append(mesh, &t3)
	}

	if err := render.SaveSTL(path, mesh); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}
