// Wavefront OBJ reader producing authoring-side mesh objects.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/symexport/pkg/math"
	"github.com/Faultbox/symexport/pkg/mesh"
)

// OBJ format errors.
var (
	ErrInvalidOBJ    = errors.New("invalid OBJ data")
	ErrOBJIndexRange = errors.New("OBJ index out of range")
)

// objDefaultName names geometry that appears before any "o" statement.
const objDefaultName = "default"

// objCorner references position, texcoord and normal of one face corner.
// Missing references are -1.
type objCorner struct {
	v, vt, vn int
}

type objGroup struct {
	name  string
	faces [][]objCorner
}

// OBJScene is the set of objects read from an OBJ file, in file order.
type OBJScene struct {
	Objects []*mesh.Object
}

// Find returns the object with the given name, or nil.
func (s *OBJScene) Find(name string) *mesh.Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// objReader accumulates the file-global attribute pools.
type objReader struct {
	positions []math.Vec3
	texcoords []math.Vec2
	normals   []math.Vec3
	groups    []*objGroup
}

// ParseOBJ reads Wavefront OBJ data. Each "o" statement starts a new object;
// "g", "s", "usemtl", "mtllib", lines and points are ignored.
func ParseOBJ(r io.Reader) (*OBJScene, error) {
	or := &objReader{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if err := or.readLine(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	scene := &OBJScene{}
	for _, g := range or.groups {
		obj, err := or.build(g)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", g.name, err)
		}
		scene.Objects = append(scene.Objects, obj)
	}
	return scene, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJScene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

func (or *objReader) readLine(line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		or.positions = append(or.positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	case "vt":
		v, err := parseFloats(fields[1:], 1)
		if err != nil {
			return err
		}
		uv := math.Vec2{X: v[0]}
		if len(v) > 1 {
			uv.Y = v[1]
		}
		or.texcoords = append(or.texcoords, uv)
	case "vn":
		v, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		or.normals = append(or.normals, math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	case "o":
		name := strings.TrimSpace(strings.TrimPrefix(line, "o"))
		if name == "" {
			name = objDefaultName
		}
		or.groups = append(or.groups, &objGroup{name: name})
	case "f":
		if len(fields) < 4 {
			return fmt.Errorf("%w: face with %d corners", ErrInvalidOBJ, len(fields)-1)
		}
		face := make([]objCorner, 0, len(fields)-1)
		for _, ref := range fields[1:] {
			c, err := or.parseCorner(ref)
			if err != nil {
				return err
			}
			face = append(face, c)
		}
		g := or.current()
		g.faces = append(g.faces, face)
	}
	return nil
}

// current returns the group faces are appended to, creating the default one
// for files without "o" statements.
func (or *objReader) current() *objGroup {
	if len(or.groups) == 0 {
		or.groups = append(or.groups, &objGroup{name: objDefaultName})
	}
	return or.groups[len(or.groups)-1]
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func (or *objReader) parseCorner(ref string) (objCorner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 || parts[0] == "" {
		return objCorner{}, fmt.Errorf("%w: face corner %q", ErrInvalidOBJ, ref)
	}

	c := objCorner{v: -1, vt: -1, vn: -1}
	var err error
	if c.v, err = resolveIndex(parts[0], len(or.positions)); err != nil {
		return objCorner{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], len(or.texcoords)); err != nil {
			return objCorner{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], len(or.normals)); err != nil {
			return objCorner{}, err
		}
	}
	return c, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a
// 0-based index into a pool of the given size.
func resolveIndex(s string, size int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrInvalidOBJ, s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += size
	default:
		return 0, fmt.Errorf("%w: zero index", ErrInvalidOBJ)
	}
	if i < 0 || i >= size {
		return 0, fmt.Errorf("%w: %s of %d", ErrOBJIndexRange, s, size)
	}
	return i, nil
}

func parseFloats(fields []string, min int) ([]float32, error) {
	if len(fields) < min {
		return nil, fmt.Errorf("%w: expected %d components, found %d", ErrInvalidOBJ, min, len(fields))
	}
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: component %q", ErrInvalidOBJ, f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// build turns a group into a mesh object with its own compact vertex list.
// Vertex normals are the average of the "vn" entries their corners reference,
// or derived from face geometry when the group carries none.
func (or *objReader) build(g *objGroup) (*mesh.Object, error) {
	if len(g.faces) == 0 {
		return &mesh.Object{Name: g.name, Type: mesh.ObjectEmpty}, nil
	}

	m := &mesh.Mesh{Name: g.name, Faces: make([]mesh.Face, len(g.faces))}
	remap := make(map[int]int)
	var normalSums []math.Vec3
	hasNormals, hasUVs := false, false

	for fi, face := range g.faces {
		verts := make([]int, len(face))
		for ci, c := range face {
			local, ok := remap[c.v]
			if !ok {
				local = len(m.Vertices)
				remap[c.v] = local
				m.Vertices = append(m.Vertices, mesh.Vertex{Position: or.positions[c.v]})
				normalSums = append(normalSums, math.Vec3{})
			}
			verts[ci] = local
			if c.vn >= 0 {
				normalSums[local] = normalSums[local].Add(or.normals[c.vn])
				hasNormals = true
			}
			if c.vt >= 0 {
				hasUVs = true
			}
		}
		m.Faces[fi] = mesh.Face{Verts: verts}
	}

	if hasNormals {
		for i := range m.Vertices {
			m.Vertices[i].Normal = normalSums[i].Normalize()
		}
	} else {
		m.RecalculateNormals()
	}

	if hasUVs {
		layer := m.AddUVLayer("UVMap")
		for fi, face := range g.faces {
			for ci, c := range face {
				if c.vt >= 0 {
					layer.UVs[fi][ci] = or.texcoords[c.vt]
				}
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return mesh.NewMeshObject(m), nil
}
