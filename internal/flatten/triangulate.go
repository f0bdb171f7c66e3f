package flatten

import (
	"github.com/Faultbox/symexport/pkg/math"
	"github.com/Faultbox/symexport/pkg/mesh"
)

// Triangulate splits a face into len(f.Verts)-2 triangles. Each triangle
// holds loop positions within the face (not vertex indices) and keeps the
// face's winding. Convex faces come out as a fan around loop 0; concave faces
// are ear clipped in the plane the face is most aligned with. If no ear can
// be found (self-intersecting or degenerate input) the remainder is fanned.
func Triangulate(m *mesh.Mesh, f mesh.Face) [][3]int {
	n := len(f.Verts)
	switch {
	case n < 3:
		return nil
	case n == 3:
		return [][3]int{{0, 1, 2}}
	}

	pts := project(m, f)
	orient := signedArea(pts)
	if orient == 0 {
		return fan(identityLoop(n))
	}

	remaining := identityLoop(n)
	tris := make([][3]int, 0, n-2)
	for len(remaining) > 3 {
		clipped := false
		for i := 1; i <= len(remaining); i++ {
			k := len(remaining)
			prev, cur, next := remaining[i-1], remaining[i%k], remaining[(i+1)%k]
			if !isEar(pts, remaining, prev, cur, next, orient) {
				continue
			}
			tris = append(tris, [3]int{prev, cur, next})
			remaining = append(remaining[:i%k], remaining[i%k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return append(tris, fan(remaining)...)
		}
	}
	return append(tris, [3]int{remaining[0], remaining[1], remaining[2]})
}

func identityLoop(n int) []int {
	loop := make([]int, n)
	for i := range loop {
		loop[i] = i
	}
	return loop
}

func fan(loop []int) [][3]int {
	tris := make([][3]int, 0, len(loop)-2)
	for i := 1; i+1 < len(loop); i++ {
		tris = append(tris, [3]int{loop[0], loop[i], loop[i+1]})
	}
	return tris
}

// project drops the axis the face normal is most aligned with.
func project(m *mesh.Mesh, f mesh.Face) []math.Vec2 {
	axis := m.FaceNormal(f).Dominant()
	pts := make([]math.Vec2, len(f.Verts))
	for i, vi := range f.Verts {
		p := m.Vertices[vi].Position
		switch axis {
		case 0:
			pts[i] = math.Vec2{X: p.Y, Y: p.Z}
		case 1:
			pts[i] = math.Vec2{X: p.Z, Y: p.X}
		default:
			pts[i] = math.Vec2{X: p.X, Y: p.Y}
		}
	}
	return pts
}

// signedArea returns the sign of the projected polygon's area: 1 for
// counter-clockwise, -1 for clockwise, 0 for degenerate.
func signedArea(pts []math.Vec2) float32 {
	var a float32
	for i, p := range pts {
		a += p.Cross(pts[(i+1)%len(pts)])
	}
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

func isEar(pts []math.Vec2, remaining []int, prev, cur, next int, orient float32) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if b.Sub(a).Cross(c.Sub(b))*orient <= 0 {
		return false // reflex or collinear corner
	}
	for _, r := range remaining {
		if r == prev || r == cur || r == next {
			continue
		}
		if insideTriangle(pts[r], a, b, c, orient) {
			return false
		}
	}
	return true
}

func insideTriangle(p, a, b, c math.Vec2, orient float32) bool {
	return b.Sub(a).Cross(p.Sub(a))*orient > 0 &&
		c.Sub(b).Cross(p.Sub(b))*orient > 0 &&
		a.Sub(c).Cross(p.Sub(c))*orient > 0
}
