package triangulate

import "errors"

// The failure kinds of the engine. These are deterministic geometric
// failures, never transient: retrying cannot help. Face-level failures
// are absorbed by the enclosing group/object/scene cursor, which skips
// to the next sibling; only the exhaustion of an entire level surfaces
// to the caller.
var (
	// ErrTooFewVertices means a face has fewer than 3 vertices.
	ErrTooFewVertices = errors.New("triangulate: face has fewer than 3 vertices")

	// ErrNoEarFound means the ear scan exhausted its candidates without
	// finding a clippable ear: degenerate, self-intersecting or
	// numerically pathological input.
	ErrNoEarFound = errors.New("triangulate: no valid ear found")

	ErrNoValidFacesFound   = errors.New("triangulate: no triangulatable faces in group")
	ErrNoValidGroupsFound  = errors.New("triangulate: no triangulatable groups in object")
	ErrNoValidObjectsFound = errors.New("triangulate: no triangulatable objects in scene")
)
