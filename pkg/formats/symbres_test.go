package formats

import (
	"bytes"
	"encoding/binary"
	stdmath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/symexport/pkg/math"
)

// makeTestSymbres returns a one-triangle mesh with distinct values in every slot.
func makeTestSymbres() *Symbres {
	return &Symbres{
		Indices: []uint32{0, 1, 2},
		Vertices: []math.Vec3{
			{X: 1, Y: 2, Z: 3},
			{X: -4, Y: 5.5, Z: 6},
			{X: 7, Y: -8, Z: 9.25},
		},
		Normals: []math.Vec3{
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: -1},
			{X: 1, Y: 0, Z: 0},
		},
		UVs: []math.Vec2{
			{X: 0, Y: 1},
			{X: 0.5, Y: 0.25},
			{X: 1, Y: 0},
		},
	}
}

func TestEncodeSymbres_Layout(t *testing.T) {
	s := makeTestSymbres()

	var buf bytes.Buffer
	require.NoError(t, EncodeSymbres(&buf, s))
	data := buf.Bytes()

	const n = 3
	require.Len(t, data, 16+36*n)
	assert.Equal(t, s.Size(), int64(len(data)))

	le := binary.LittleEndian
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint32(n), le.Uint32(data[4*i:]), "header field %d", i)
	}

	f32 := func(off int) float32 { return stdmath.Float32frombits(le.Uint32(data[off:])) }

	// Indices at 16
	for i := 0; i < n; i++ {
		assert.Equal(t, uint32(i), le.Uint32(data[16+4*i:]))
	}
	// Vertices at 16+4N
	for i, v := range s.Vertices {
		off := 16 + 4*n + 12*i
		assert.Equal(t, v, math.Vec3{X: f32(off), Y: f32(off + 4), Z: f32(off + 8)}, "vertex %d", i)
	}
	// Normals at 16+16N
	for i, v := range s.Normals {
		off := 16 + 16*n + 12*i
		assert.Equal(t, v, math.Vec3{X: f32(off), Y: f32(off + 4), Z: f32(off + 8)}, "normal %d", i)
	}
	// UVs at 16+28N
	for i, uv := range s.UVs {
		off := 16 + 28*n + 8*i
		assert.Equal(t, uv, math.Vec2{X: f32(off), Y: f32(off + 4)}, "uv %d", i)
	}
}

func TestEncodeSymbres_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSymbres(&buf, &Symbres{}))
	assert.Equal(t, make([]byte, 16), buf.Bytes())
}

func TestEncodeSymbres_LengthMismatch(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Symbres)
	}{
		{"short vertices", func(s *Symbres) { s.Vertices = s.Vertices[:2] }},
		{"short normals", func(s *Symbres) { s.Normals = nil }},
		{"long uvs", func(s *Symbres) { s.UVs = append(s.UVs, math.Vec2{}) }},
		{"extra index", func(s *Symbres) { s.Indices = append(s.Indices, 3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeTestSymbres()
			tt.mutate(s)

			var buf bytes.Buffer
			err := EncodeSymbres(&buf, s)
			assert.ErrorIs(t, err, ErrSymbresLengthMismatch)
			assert.Zero(t, buf.Len(), "nothing should be written on validation failure")
		})
	}
}

func TestParseSymbres_RoundTrip(t *testing.T) {
	s := makeTestSymbres()
	data, err := s.MarshalBinary()
	require.NoError(t, err)

	got, err := ParseSymbres(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, 1, got.Triangles())
	assert.True(t, got.Header().Uniform())
}

func TestParseSymbres_Errors(t *testing.T) {
	valid, err := makeTestSymbres().MarshalBinary()
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"empty data", []byte{}, ErrTruncatedSymbresData},
		{"partial header", valid[:10], ErrTruncatedSymbresData},
		{"header only", valid[:16], ErrTruncatedSymbresData},
		{"missing last uv", valid[:len(valid)-8], ErrTruncatedSymbresData},
		{"trailing byte", append(append([]byte{}, valid...), 0), ErrTrailingSymbresData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSymbres(tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseSymbres_IndependentCounts(t *testing.T) {
	// The runtime sizes each block from its own count, so unequal counts
	// still parse when the body matches them.
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, SymbresHeader{IndexCount: 3, VertexCount: 1, NormalCount: 0, UVCount: 2})
	binary.Write(buf, binary.LittleEndian, []uint32{0, 1, 2})
	binary.Write(buf, binary.LittleEndian, []float32{1, 2, 3})
	binary.Write(buf, binary.LittleEndian, []float32{0.1, 0.2, 0.3, 0.4})

	s, err := ParseSymbres(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, s.Indices, 3)
	assert.Equal(t, []math.Vec3{{X: 1, Y: 2, Z: 3}}, s.Vertices)
	assert.Empty(t, s.Normals)
	assert.Equal(t, []math.Vec2{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}, s.UVs)
	assert.False(t, s.Header().Uniform())
	assert.ErrorIs(t, s.Validate(), ErrSymbresLengthMismatch)
}

func TestParseSymbresHeader_HugeCounts(t *testing.T) {
	// A corrupt header must be rejected by size before anything is allocated.
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, SymbresHeader{IndexCount: ^uint32(0), VertexCount: ^uint32(0), NormalCount: ^uint32(0), UVCount: ^uint32(0)})

	_, err := ParseSymbres(buf.Bytes())
	assert.ErrorIs(t, err, ErrTruncatedSymbresData)
}

func TestParseSymbresFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.symbres")
	data, err := makeTestSymbres().MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	s, err := ParseSymbresFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	_, err = ParseSymbresFile(filepath.Join(t.TempDir(), "missing.symbres"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSymbresBounds(t *testing.T) {
	min, max := makeTestSymbres().Bounds()
	assert.Equal(t, math.Vec3{X: -4, Y: -8, Z: 3}, min)
	assert.Equal(t, math.Vec3{X: 7, Y: 5.5, Z: 9.25}, max)

	min, max = (&Symbres{}).Bounds()
	assert.Zero(t, min)
	assert.Zero(t, max)
}
