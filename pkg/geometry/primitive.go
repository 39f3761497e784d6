// Package geometry measures surface area and enclosed volume of triangle meshes.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshstat/pkg/math"
)

// Geometry errors.
var (
	ErrMalformedGeometry    = errors.New("malformed geometry")
	ErrUnsupportedPrimitive = errors.New("unsupported primitive")
)

// Mode is the topology of a primitive's vertex stream.
type Mode int

// Primitive topologies. Only Triangles is measurable.
const (
	Triangles Mode = iota
	Points
	Lines
	LineStrip
	TriangleStrip
	TriangleFan
)

var modeNames = [...]string{
	Triangles:     "triangles",
	Points:        "points",
	Lines:         "lines",
	LineStrip:     "line_strip",
	TriangleStrip: "triangle_strip",
	TriangleFan:   "triangle_fan",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name back to a Mode.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Triangles, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrUnsupportedPrimitive, s)
}

// Primitive is one vertex buffer with an optional index buffer.
// Positions is a flat x,y,z stream. A nil Indices means consecutive vertex
// triples form triangles.
type Primitive struct {
	Positions []float32
	Indices   []uint32
	Mode      Mode
}

// Indexed reports whether the primitive carries an index buffer.
func (p *Primitive) Indexed() bool {
	return p.Indices != nil
}

// VertexCount returns the number of vertex attributes, shared or not.
func (p *Primitive) VertexCount() int {
	return len(p.Positions) / 3
}

// TriangleCount returns the number of triangles the primitive describes.
func (p *Primitive) TriangleCount() int {
	if p.Indexed() {
		return len(p.Indices) / 3
	}
	return p.VertexCount() / 3
}

// Vertex returns vertex i as a float64 vector.
func (p *Primitive) Vertex(i int) math.Vec3 {
	o := i * 3
	return math.Vec3{
		X: float64(p.Positions[o]),
		Y: float64(p.Positions[o+1]),
		Z: float64(p.Positions[o+2]),
	}
}

// ValidatePositions checks only the vertex buffer stride.
func (p *Primitive) ValidatePositions() error {
	if len(p.Positions)%3 != 0 {
		return fmt.Errorf("%w: position buffer length %d is not a multiple of 3",
			ErrMalformedGeometry, len(p.Positions))
	}
	return nil
}

// Validate checks the buffer length and index range invariants.
func (p *Primitive) Validate() error {
	if p.Mode != Triangles {
		return fmt.Errorf("%w: %s", ErrUnsupportedPrimitive, p.Mode)
	}
	if err := p.ValidatePositions(); err != nil {
		return err
	}

	n := p.VertexCount()
	if !p.Indexed() {
		if n%3 != 0 {
			return fmt.Errorf("%w: %d non-indexed vertices do not form whole triangles",
				ErrMalformedGeometry, n)
		}
		return nil
	}

	if len(p.Indices)%3 != 0 {
		return fmt.Errorf("%w: index buffer length %d is not a multiple of 3",
			ErrMalformedGeometry, len(p.Indices))
	}
	for i, idx := range p.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at position %d out of range (%d vertices)",
				ErrMalformedGeometry, idx, i, n)
		}
	}
	return nil
}

// Bounds returns the box enclosing every vertex after transforming by m.
// The result is empty when the primitive has no vertices.
func (p *Primitive) Bounds(m math.Mat4) math.Box3 {
	b := math.EmptyBox()
	identity := m.IsIdentity()
	for i := 0; i < p.VertexCount(); i++ {
		v := p.Vertex(i)
		if !identity {
			v = m.TransformPoint(v)
		}
		b = b.ExpandByPoint(v)
	}
	return b
}

// Transformed returns a copy of the primitive with every position multiplied by m.
// Indices are shared with the receiver.
func (p *Primitive) Transformed(m math.Mat4) Primitive {
	out := Primitive{
		Positions: make([]float32, len(p.Positions)),
		Indices:   p.Indices,
		Mode:      p.Mode,
	}
	for i := 0; i < p.VertexCount(); i++ {
		v := m.TransformPoint(p.Vertex(i))
		o := i * 3
		out.Positions[o] = float32(v.X)
		out.Positions[o+1] = float32(v.Y)
		out.Positions[o+2] = float32(v.Z)
	}
	return out
}
