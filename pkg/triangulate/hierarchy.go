package triangulate

import "github.com/chazu/objtri/pkg/obj"

// The hierarchical triangulators are explicit cursor structs rather than
// nested iterators: each holds the indices of its position in the parent
// collection plus the live sub-cursor, and refills the sub-cursor when
// it exhausts. Children that fail to start are skipped; a level fails
// only when none of its children can start.

// GroupTriangulator pulls triangles from a group's faces in order.
type GroupTriangulator struct {
	obj   *obj.OBJ
	group *obj.Group
	index int
	face  *FaceTriangulator
}

// NewGroupTriangulator returns a cursor positioned at the group's first
// triangulatable face, or ErrNoValidFacesFound when there is none.
func NewGroupTriangulator(o *obj.OBJ, group *obj.Group) (*GroupTriangulator, error) {
	for i := range group.Faces {
		face, err := NewFaceTriangulator(o, group.Faces[i])
		if err != nil {
			continue
		}
		return &GroupTriangulator{obj: o, group: group, index: i, face: face}, nil
	}
	return nil, ErrNoValidFacesFound
}

// Next emits the next triangle of the group, or false when every face
// has been consumed.
func (g *GroupTriangulator) Next() (Tri, bool) {
	for {
		if g.index >= len(g.group.Faces) {
			return Tri{}, false
		}
		if tri, ok := g.face.Next(); ok {
			return tri, true
		}
		g.refill()
	}
}

// refill advances to the next face whose triangulator constructs,
// leaving the cursor past the end when none remains.
func (g *GroupTriangulator) refill() {
	for {
		g.index++
		if g.index >= len(g.group.Faces) {
			return
		}
		face, err := NewFaceTriangulator(g.obj, g.group.Faces[g.index])
		if err != nil {
			continue
		}
		g.face = face
		return
	}
}

// ObjectTriangulator pulls triangles from an object's groups in order.
type ObjectTriangulator struct {
	obj    *obj.OBJ
	object *obj.Object
	index  int
	group  *GroupTriangulator
}

// NewObjectTriangulator returns a cursor positioned at the object's
// first triangulatable group, or ErrNoValidGroupsFound when there is
// none.
func NewObjectTriangulator(o *obj.OBJ, object *obj.Object) (*ObjectTriangulator, error) {
	for i := range object.Groups {
		group, err := NewGroupTriangulator(o, &object.Groups[i])
		if err != nil {
			continue
		}
		return &ObjectTriangulator{obj: o, object: object, index: i, group: group}, nil
	}
	return nil, ErrNoValidGroupsFound
}

// Next emits the next triangle of the object, or false when every group
// has been consumed.
func (t *ObjectTriangulator) Next() (Tri, bool) {
	for {
		if t.index >= len(t.object.Groups) {
			return Tri{}, false
		}
		if tri, ok := t.group.Next(); ok {
			return tri, true
		}
		t.refill()
	}
}

func (t *ObjectTriangulator) refill() {
	for {
		t.index++
		if t.index >= len(t.object.Groups) {
			return
		}
		group, err := NewGroupTriangulator(t.obj, &t.object.Groups[t.index])
		if err != nil {
			continue
		}
		t.group = group
		return
	}
}

// SceneTriangulator pulls triangles from every object of a mesh in
// order.
type SceneTriangulator struct {
	obj    *obj.OBJ
	index  int
	object *ObjectTriangulator
}

// NewSceneTriangulator returns a cursor positioned at the scene's first
// triangulatable object, or ErrNoValidObjectsFound when nothing in the
// scene triangulates.
func NewSceneTriangulator(o *obj.OBJ) (*SceneTriangulator, error) {
	for i := range o.Objects {
		object, err := NewObjectTriangulator(o, &o.Objects[i])
		if err != nil {
			continue
		}
		return &SceneTriangulator{obj: o, index: i, object: object}, nil
	}
	return nil, ErrNoValidObjectsFound
}

// Next emits the next triangle of the scene, or false when every object
// has been consumed.
func (t *SceneTriangulator) Next() (Tri, bool) {
	for {
		if t.index >= len(t.obj.Objects) {
			return Tri{}, false
		}
		if tri, ok := t.object.Next(); ok {
			return tri, true
		}
		t.refill()
	}
}

func (t *SceneTriangulator) refill() {
	for {
		t.index++
		if t.index >= len(t.obj.Objects) {
			return
		}
		object, err := NewObjectTriangulator(t.obj, &t.obj.Objects[t.index])
		if err != nil {
			continue
		}
		t.object = object
		return
	}
}

// Scene triangulates the whole mesh at once, skipping faces, groups and
// objects that cannot be triangulated. It fails only when the entire
// scene yields nothing.
func Scene(o *obj.OBJ) (Triangulation, error) {
	cursor, err := NewSceneTriangulator(o)
	if err != nil {
		return nil, err
	}
	var tris Triangulation
	for {
		tri, ok := cursor.Next()
		if !ok {
			return tris, nil
		}
		tris = append(tris, tri)
	}
}
