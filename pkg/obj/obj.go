// Package obj holds the in-memory scene graph for Wavefront OBJ meshes:
// global position/texcoord/normal arrays plus the object → group → face
// hierarchy that indexes into them. The arrays are append-only while
// parsing and read-only afterwards; triangulation and rendering never
// mutate a parsed mesh.
package obj

import "github.com/go-gl/mathgl/mgl64"

// Vertex is one corner of a face: 1-based indices into the mesh's
// position, texcoord and normal arrays, in that order. A zero texcoord
// or normal index means the attribute is absent.
type Vertex [3]int

// FaceKind classifies a face by its vertex count.
type FaceKind int

const (
	FaceTriangle FaceKind = iota
	FaceQuad
	FaceNGon
)

// Face is an ordered, closed vertex loop. Consecutive vertices form
// edges and the last vertex connects back to the first; the loop is not
// necessarily planar or convex.
type Face struct {
	Kind     FaceKind
	Vertices []Vertex
}

// NewFace builds a face from a vertex loop, classifying it by count.
func NewFace(verts []Vertex) Face {
	kind := FaceNGon
	switch len(verts) {
	case 3:
		kind = FaceTriangle
	case 4:
		kind = FaceQuad
	}
	return Face{Kind: kind, Vertices: verts}
}

// Group is a named run of faces sharing a material.
type Group struct {
	Name     string
	Material string
	Faces    []Face
}

// Object is a named, ordered sequence of groups.
type Object struct {
	Name   string
	Groups []Group
}

// OBJ is the mesh root.
type OBJ struct {
	Positions []mgl64.Vec3
	TexCoords []mgl64.Vec2
	Normals   []mgl64.Vec3

	Objects      []Object
	MaterialLibs []string
}

// Pos returns the 3D position of the given vertex.
func (o *OBJ) Pos(v Vertex) mgl64.Vec3 {
	return o.Positions[v[0]-1]
}
