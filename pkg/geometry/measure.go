package geometry

import (
	gomath "math"

	"github.com/Faultbox/meshstat/pkg/math"
)

// Metrics holds the accumulated surface measures of one primitive.
type Metrics struct {
	Area         float64
	SignedVolume float64
}

// Volume returns the enclosed volume, independent of winding direction.
// It is only meaningful for closed, consistently wound meshes.
func (m Metrics) Volume() float64 {
	return gomath.Abs(m.SignedVolume)
}

// Add returns the sum of two metrics.
func (m Metrics) Add(other Metrics) Metrics {
	return Metrics{
		Area:         m.Area + other.Area,
		SignedVolume: m.SignedVolume + other.SignedVolume,
	}
}

// Measure computes surface area and signed volume of a triangle primitive.
//
// Each triangle ABC adds |AB x AC|/2 to the area and A.(AB x AC)/6 to the
// signed volume, the tetrahedron it forms with the origin. Degenerate
// triangles contribute zero to both.
func Measure(p Primitive) (Metrics, error) {
	if err := p.Validate(); err != nil {
		return Metrics{}, err
	}

	var m Metrics
	if p.Indexed() {
		for i := 0; i < len(p.Indices); i += 3 {
			m = m.accumulate(
				p.Vertex(int(p.Indices[i])),
				p.Vertex(int(p.Indices[i+1])),
				p.Vertex(int(p.Indices[i+2])),
			)
		}
		return m, nil
	}

	for i := 0; i < p.VertexCount(); i += 3 {
		m = m.accumulate(p.Vertex(i), p.Vertex(i+1), p.Vertex(i+2))
	}
	return m, nil
}

func (m Metrics) accumulate(a, b, c math.Vec3) Metrics {
	cross := b.Sub(a).Cross(c.Sub(a))
	m.Area += cross.Length() / 2
	m.SignedVolume += a.Dot(cross) / 6
	return m
}
