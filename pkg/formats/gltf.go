// glTF 2.0 reader producing authoring-side mesh objects.
package formats

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/symexport/pkg/math"
	"github.com/Faultbox/symexport/pkg/mesh"
)

// glTF import errors.
var (
	ErrUnsupportedGLTFPrimitive = errors.New("unsupported glTF primitive mode")
	ErrMissingGLTFPositions     = errors.New("glTF primitive has no POSITION attribute")
	ErrInvalidGLTFAccessor      = errors.New("invalid glTF accessor data")
)

// fromGLTFAxes converts glTF's Y-up axes into the Z-up authoring convention
// (+90 degrees about X). The export pipeline's fixed conversion undoes it.
var (
	fromGLTFAxes = math.RotateX(math.Radians(90))
	toGLTFAxes   = math.RotateX(math.Radians(-90))
)

// LoadGLTF reads a .gltf or .glb file and returns one mesh object per glTF
// mesh, in document order. Primitives of a mesh are merged; only triangle
// primitives are accepted. TEXCOORD_0 becomes the UV layer, converted to a
// bottom-left origin. The world transform of the first node instancing a
// mesh in the default scene becomes the object transform.
func LoadGLTF(path string) ([]*mesh.Object, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF file: %w", err)
	}
	return ParseGLTF(doc)
}

// ParseGLTF converts the meshes of an already decoded glTF document.
func ParseGLTF(doc *gltf.Document) ([]*mesh.Object, error) {
	placed := gltfMeshTransforms(doc)
	objects := make([]*mesh.Object, 0, len(doc.Meshes))
	for i, gm := range doc.Meshes {
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("Mesh.%03d", i)
		}
		m, err := parseGLTFMesh(doc, gm, name)
		if err != nil {
			return nil, fmt.Errorf("mesh %q: %w", name, err)
		}
		obj := mesh.NewMeshObject(m)
		if w, ok := placed[i]; ok {
			// Re-expressed in authoring axes: mesh data was rotated on import.
			obj.Transform = fromGLTFAxes.Mul(w).Mul(toGLTFAxes)
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// gltfMeshTransforms maps mesh index to the world matrix, in glTF axes, of
// the first node that instances it. Nodes are walked depth first from the
// default scene's roots, or from every parentless node without scenes.
func gltfMeshTransforms(doc *gltf.Document) map[int]math.Mat4 {
	var roots []int
	switch {
	case doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) && doc.Scenes[*doc.Scene] != nil:
		roots = doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0 && doc.Scenes[0] != nil:
		roots = doc.Scenes[0].Nodes
	default:
		child := make(map[int]bool)
		for _, n := range doc.Nodes {
			if n == nil {
				continue
			}
			for _, c := range n.Children {
				child[c] = true
			}
		}
		for i := range doc.Nodes {
			if !child[i] {
				roots = append(roots, i)
			}
		}
	}

	out := make(map[int]math.Mat4)
	visited := make(map[int]bool)
	var walk func(i int, parent math.Mat4)
	walk = func(i int, parent math.Mat4) {
		if i < 0 || i >= len(doc.Nodes) || doc.Nodes[i] == nil || visited[i] {
			return
		}
		visited[i] = true
		n := doc.Nodes[i]
		world := parent.Mul(gltfNodeMatrix(n))
		if n.Mesh != nil {
			if _, ok := out[*n.Mesh]; !ok {
				out[*n.Mesh] = world
			}
		}
		for _, c := range n.Children {
			walk(c, world)
		}
	}
	for _, r := range roots {
		walk(r, math.Identity())
	}
	return out
}

// gltfNodeMatrix returns the node's local transform: its matrix when given,
// else translation * rotation * scale.
func gltfNodeMatrix(n *gltf.Node) math.Mat4 {
	if m := n.MatrixOrDefault(); m != gltf.DefaultMatrix {
		var out math.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}
	t, r, s := n.TranslationOrDefault(), n.RotationOrDefault(), n.ScaleOrDefault()
	return math.Translate(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul(math.FromQuat(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))).
		Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

// gltfPrimitive is one primitive's data after reading its accessors.
type gltfPrimitive struct {
	positions [][3]float32
	normals   [][3]float32
	uvs       [][2]float32
	indices   []uint32
}

func parseGLTFMesh(doc *gltf.Document, gm *gltf.Mesh, name string) (*mesh.Mesh, error) {
	prims := make([]gltfPrimitive, 0, len(gm.Primitives))
	hasNormals, hasUVs := true, false
	for pi, p := range gm.Primitives {
		prim, err := readGLTFPrimitive(doc, p)
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", pi, err)
		}
		hasNormals = hasNormals && prim.normals != nil
		hasUVs = hasUVs || prim.uvs != nil
		prims = append(prims, prim)
	}

	m := &mesh.Mesh{Name: name}
	var uvs [][]math.Vec2
	for _, prim := range prims {
		base := len(m.Vertices)
		for i, p := range prim.positions {
			v := mesh.Vertex{Position: fromGLTFAxes.TransformVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]})}
			if prim.normals != nil {
				n := prim.normals[i]
				v.Normal = fromGLTFAxes.TransformDirection(math.Vec3{X: n[0], Y: n[1], Z: n[2]})
			}
			m.Vertices = append(m.Vertices, v)
		}

		for t := 0; t+2 < len(prim.indices); t += 3 {
			tri := []int{
				base + int(prim.indices[t]),
				base + int(prim.indices[t+1]),
				base + int(prim.indices[t+2]),
			}
			m.Faces = append(m.Faces, mesh.Face{Verts: tri})

			corner := make([]math.Vec2, 3)
			if prim.uvs != nil {
				for c := 0; c < 3; c++ {
					uv := prim.uvs[tri[c]-base]
					corner[c] = math.Vec2{X: uv[0], Y: uv[1]}.FlipV()
				}
			}
			uvs = append(uvs, corner)
		}
	}

	if !hasNormals {
		m.RecalculateNormals()
	}
	if hasUVs {
		m.UVLayers = []mesh.UVLayer{{Name: "TEXCOORD_0", UVs: uvs}}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func readGLTFPrimitive(doc *gltf.Document, p *gltf.Primitive) (gltfPrimitive, error) {
	var prim gltfPrimitive
	if p.Mode != gltf.PrimitiveTriangles {
		return prim, fmt.Errorf("%w: %v", ErrUnsupportedGLTFPrimitive, p.Mode)
	}

	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return prim, ErrMissingGLTFPositions
	}
	acr, err := gltfAccessor(doc, posIdx)
	if err != nil {
		return prim, fmt.Errorf("positions: %w", err)
	}
	if prim.positions, err = modeler.ReadPosition(doc, acr, nil); err != nil {
		return prim, fmt.Errorf("reading positions: %w", err)
	}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		if acr, err = gltfAccessor(doc, idx); err != nil {
			return prim, fmt.Errorf("normals: %w", err)
		}
		if prim.normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
			return prim, fmt.Errorf("reading normals: %w", err)
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err = gltfAccessor(doc, idx); err != nil {
			return prim, fmt.Errorf("texcoords: %w", err)
		}
		if prim.uvs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
			return prim, fmt.Errorf("reading texcoords: %w", err)
		}
	}

	if p.Indices != nil {
		if acr, err = gltfAccessor(doc, *p.Indices); err != nil {
			return prim, fmt.Errorf("indices: %w", err)
		}
		if prim.indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return prim, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		prim.indices = make([]uint32, len(prim.positions))
		for i := range prim.indices {
			prim.indices[i] = uint32(i)
		}
	}

	n := len(prim.positions)
	if prim.normals != nil && len(prim.normals) != n {
		return prim, fmt.Errorf("%w: %d normals for %d positions", ErrInvalidGLTFAccessor, len(prim.normals), n)
	}
	if prim.uvs != nil && len(prim.uvs) != n {
		return prim, fmt.Errorf("%w: %d texcoords for %d positions", ErrInvalidGLTFAccessor, len(prim.uvs), n)
	}
	for _, i := range prim.indices {
		if int(i) >= n {
			return prim, fmt.Errorf("%w: index %d of %d vertices", ErrInvalidGLTFAccessor, i, n)
		}
	}
	return prim, nil
}

// gltfAccessor returns accessor idx after checking that it, its buffer view
// and its byte offset exist, so malformed files fail instead of panicking.
func gltfAccessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%w: accessor %d of %d", ErrInvalidGLTFAccessor, idx, len(doc.Accessors))
	}
	acr := doc.Accessors[idx]
	if acr.BufferView == nil {
		return acr, nil
	}
	bv := *acr.BufferView
	if bv < 0 || bv >= len(doc.BufferViews) || doc.BufferViews[bv] == nil {
		return nil, fmt.Errorf("%w: accessor %d uses buffer view %d of %d", ErrInvalidGLTFAccessor, idx, bv, len(doc.BufferViews))
	}
	if acr.ByteOffset > doc.BufferViews[bv].ByteLength {
		return nil, fmt.Errorf("%w: accessor %d offset %d past buffer view end", ErrInvalidGLTFAccessor, idx, acr.ByteOffset)
	}
	return acr, nil
}
