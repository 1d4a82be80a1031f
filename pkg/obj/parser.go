package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Load reads and parses the OBJ file at path.
func Load(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: %w", err)
	}
	defer f.Close()

	o, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("obj: parse %s: %w", path, err)
	}
	return o, nil
}

// Parse reads a Wavefront OBJ document from r. Supported directives are
// v, vt, vn, f, o, g, usemtl and mtllib; everything else (s, l, p, ...)
// is skipped. Face indices may be negative, meaning relative to the most
// recently declared attribute. Faces declared before any o or g land in
// a "default" object and group.
func Parse(r io.Reader) (*OBJ, error) {
	p := parser{obj: &OBJ{}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.line++
		if err := p.directive(strings.TrimSpace(sc.Text())); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", p.line, err)
	}
	return p.obj, nil
}

type parser struct {
	obj  *OBJ
	line int
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *parser) directive(line string) error {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	args := fields[1:]

	switch fields[0] {
	case "v":
		pos, err := p.vec3(args)
		if err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, pos)

	case "vt":
		if len(args) < 1 {
			return p.errf("vt needs at least 1 coordinate")
		}
		u, err := p.coord(args[0])
		if err != nil {
			return err
		}
		var v float64
		if len(args) > 1 {
			if v, err = p.coord(args[1]); err != nil {
				return err
			}
		}
		p.obj.TexCoords = append(p.obj.TexCoords, mgl64.Vec2{u, v})

	case "vn":
		n, err := p.vec3(args)
		if err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, n)

	case "f":
		return p.face(args)

	case "o":
		p.obj.Objects = append(p.obj.Objects, Object{Name: strings.Join(args, " ")})

	case "g":
		o := p.currentObject()
		o.Groups = append(o.Groups, Group{Name: strings.Join(args, " ")})

	case "usemtl":
		p.currentGroup().Material = strings.Join(args, " ")

	case "mtllib":
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, args...)
	}
	return nil
}

func (p *parser) face(args []string) error {
	if len(args) < 3 {
		return p.errf("face needs at least 3 vertices, got %d", len(args))
	}
	verts := make([]Vertex, 0, len(args))
	for _, arg := range args {
		v, err := p.vertex(arg)
		if err != nil {
			return err
		}
		verts = append(verts, v)
	}
	g := p.currentGroup()
	g.Faces = append(g.Faces, NewFace(verts))
	return nil
}

// vertex parses one face corner in any of the forms v, v/vt, v//vn and
// v/vt/vn, resolving negative (relative) indices against the current
// attribute array lengths.
func (p *parser) vertex(s string) (Vertex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return Vertex{}, p.errf("malformed vertex %q", s)
	}

	var v Vertex
	lens := [3]int{len(p.obj.Positions), len(p.obj.TexCoords), len(p.obj.Normals)}
	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return Vertex{}, p.errf("malformed vertex %q", s)
			}
			continue
		}
		idx, err := strconv.Atoi(part)
		if err != nil {
			return Vertex{}, p.errf("malformed vertex %q: %v", s, err)
		}
		if idx < 0 {
			idx = lens[i] + idx + 1
		}
		if idx <= 0 || idx > lens[i] {
			return Vertex{}, p.errf("vertex %q: index %s out of range", s, part)
		}
		v[i] = idx
	}
	return v, nil
}

func (p *parser) vec3(args []string) (mgl64.Vec3, error) {
	var v mgl64.Vec3
	if len(args) < 3 {
		return v, p.errf("expected 3 coordinates, got %d", len(args))
	}
	for i := 0; i < 3; i++ {
		f, err := p.coord(args[i])
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

func (p *parser) coord(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.errf("invalid coordinate %q", s)
	}
	return f, nil
}

func (p *parser) currentObject() *Object {
	if len(p.obj.Objects) == 0 {
		p.obj.Objects = append(p.obj.Objects, Object{Name: "default"})
	}
	return &p.obj.Objects[len(p.obj.Objects)-1]
}

func (p *parser) currentGroup() *Group {
	o := p.currentObject()
	if len(o.Groups) == 0 {
		o.Groups = append(o.Groups, Group{Name: "default"})
	}
	return &o.Groups[len(o.Groups)-1]
}
