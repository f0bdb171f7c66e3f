// SYMBRES (Symmetry resource) is the flattened static mesh format loaded by
// the Symmetry runtime.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/symexport/pkg/math"
)

// SYMBRES format errors.
var (
	ErrTruncatedSymbresData  = errors.New("truncated SYMBRES data")
	ErrTrailingSymbresData   = errors.New("trailing bytes after SYMBRES body")
	ErrSymbresLengthMismatch = errors.New("SYMBRES arrays differ in length")
	ErrSymbresTooLarge       = errors.New("SYMBRES corner count exceeds uint32")
)

// Block sizes in bytes.
const (
	SymbresHeaderSize = 16 // Four uint32 counts
	SymbresIndexSize  = 4  // uint32
	SymbresVec3Size   = 12 // 3 x float32
	SymbresVec2Size   = 8  // 2 x float32

	// SymbresCornerSize is the number of body bytes contributed by one corner.
	SymbresCornerSize = SymbresIndexSize + 2*SymbresVec3Size + SymbresVec2Size
)

// SymbresHeader holds the four element counts at the start of a file.
// The writer always emits equal counts; the reader treats them independently.
type SymbresHeader struct {
	IndexCount  uint32
	VertexCount uint32
	NormalCount uint32
	UVCount     uint32
}

// BodySize returns the number of bytes the header's counts require after it.
func (h SymbresHeader) BodySize() uint64 {
	return uint64(h.IndexCount)*SymbresIndexSize +
		uint64(h.VertexCount)*SymbresVec3Size +
		uint64(h.NormalCount)*SymbresVec3Size +
		uint64(h.UVCount)*SymbresVec2Size
}

// Uniform reports whether all four counts are equal.
func (h SymbresHeader) Uniform() bool {
	return h.IndexCount == h.VertexCount && h.VertexCount == h.NormalCount && h.NormalCount == h.UVCount
}

// Symbres is a flattened mesh: one entry per triangle corner in each of four
// parallel arrays. Positions and normals are Y-up, UVs have a top-left origin.
type Symbres struct {
	Indices  []uint32
	Vertices []math.Vec3
	Normals  []math.Vec3
	UVs      []math.Vec2
}

// Len returns the number of corners.
func (s *Symbres) Len() int {
	return len(s.Indices)
}

// Triangles returns the number of triangles described by the corners.
func (s *Symbres) Triangles() int {
	return len(s.Indices) / 3
}

// Header returns the counts written at the start of the file.
func (s *Symbres) Header() SymbresHeader {
	return SymbresHeader{
		IndexCount:  uint32(len(s.Indices)),
		VertexCount: uint32(len(s.Vertices)),
		NormalCount: uint32(len(s.Normals)),
		UVCount:     uint32(len(s.UVs)),
	}
}

// Size returns the encoded size in bytes: 16 + 36N.
func (s *Symbres) Size() int64 {
	return SymbresHeaderSize + int64(s.Header().BodySize())
}

// Bounds returns the axis-aligned box around all positions. Both corners
// are zero for an empty mesh.
func (s *Symbres) Bounds() (min, max math.Vec3) {
	if len(s.Vertices) == 0 {
		return
	}
	min, max = s.Vertices[0], s.Vertices[0]
	for _, v := range s.Vertices[1:] {
		min.X, max.X = fmin(min.X, v.X), fmax(max.X, v.X)
		min.Y, max.Y = fmin(min.Y, v.Y), fmax(max.Y, v.Y)
		min.Z, max.Z = fmin(min.Z, v.Z), fmax(max.Z, v.Z)
	}
	return
}

func fmin(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}

func fmax(a, b float32) float32 {
	if b > a {
		return b
	}
	return a
}

// Validate checks the parallel array invariant.
func (s *Symbres) Validate() error {
	n := len(s.Indices)
	if len(s.Vertices) != n || len(s.Normals) != n || len(s.UVs) != n {
		return fmt.Errorf("%w: indices=%d vertices=%d normals=%d uvs=%d",
			ErrSymbresLengthMismatch, n, len(s.Vertices), len(s.Normals), len(s.UVs))
	}
	if uint64(n) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: %d corners", ErrSymbresTooLarge, n)
	}
	return nil
}

// EncodeSymbres writes s to w in SYMBRES layout. Output is buffered and
// flushed before returning.
func EncodeSymbres(w io.Writer, s *Symbres) error {
	if err := s.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	// Header
	if err := binary.Write(bw, binary.LittleEndian, s.Header()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	// Body
	blocks := []struct {
		name string
		data any
	}{
		{"indices", s.Indices},
		{"vertices", s.Vertices},
		{"normals", s.Normals},
		{"uvs", s.UVs},
	}
	for _, b := range blocks {
		if err := binary.Write(bw, binary.LittleEndian, b.data); err != nil {
			return fmt.Errorf("writing %s: %w", b.name, err)
		}
	}

	return bw.Flush()
}

// MarshalBinary returns the SYMBRES encoding of s.
func (s *Symbres) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int(s.Size()))
	if err := EncodeSymbres(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseSymbresHeader reads only the 16-byte header.
func ParseSymbresHeader(data []byte) (SymbresHeader, error) {
	var h SymbresHeader
	if len(data) < SymbresHeaderSize {
		return h, fmt.Errorf("%w: %d byte header", ErrTruncatedSymbresData, len(data))
	}
	h.IndexCount = binary.LittleEndian.Uint32(data[0:4])
	h.VertexCount = binary.LittleEndian.Uint32(data[4:8])
	h.NormalCount = binary.LittleEndian.Uint32(data[8:12])
	h.UVCount = binary.LittleEndian.Uint32(data[12:16])
	return h, nil
}

// ParseSymbres parses a SYMBRES file from raw bytes. Each block is sized by
// its own header count, as the runtime loader does; the body must account for
// every byte of data.
func ParseSymbres(data []byte) (*Symbres, error) {
	h, err := ParseSymbresHeader(data)
	if err != nil {
		return nil, err
	}

	body := uint64(len(data) - SymbresHeaderSize)
	want := h.BodySize()
	if body < want {
		return nil, fmt.Errorf("%w: header needs %d body bytes, have %d", ErrTruncatedSymbresData, want, body)
	}
	if body > want {
		return nil, fmt.Errorf("%w: %d extra bytes", ErrTrailingSymbresData, body-want)
	}

	r := bytes.NewReader(data[SymbresHeaderSize:])
	s := &Symbres{
		Indices:  make([]uint32, h.IndexCount),
		Vertices: make([]math.Vec3, h.VertexCount),
		Normals:  make([]math.Vec3, h.NormalCount),
		UVs:      make([]math.Vec2, h.UVCount),
	}

	if err := binary.Read(r, binary.LittleEndian, s.Indices); err != nil {
		return nil, fmt.Errorf("%w: reading indices", ErrTruncatedSymbresData)
	}
	if err := binary.Read(r, binary.LittleEndian, s.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedSymbresData)
	}
	if err := binary.Read(r, binary.LittleEndian, s.Normals); err != nil {
		return nil, fmt.Errorf("%w: reading normals", ErrTruncatedSymbresData)
	}
	if err := binary.Read(r, binary.LittleEndian, s.UVs); err != nil {
		return nil, fmt.Errorf("%w: reading uvs", ErrTruncatedSymbresData)
	}

	return s, nil
}

// ParseSymbresFile parses a SYMBRES file from disk.
func ParseSymbresFile(path string) (*Symbres, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading SYMBRES file: %w", err)
	}
	return ParseSymbres(data)
}
