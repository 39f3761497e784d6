package geometry

import "github.com/Faultbox/meshstat/pkg/math"

// boxIndices winds every face counter-clockwise seen from outside.
// Corner i has x from bit 0, y from bit 1 and z from bit 2.
var boxIndices = []uint32{
	0, 2, 1, 1, 2, 3, // -Z
	4, 5, 6, 5, 7, 6, // +Z
	0, 1, 4, 1, 5, 4, // -Y
	2, 6, 3, 3, 6, 7, // +Y
	0, 4, 2, 2, 4, 6, // -X
	1, 3, 5, 3, 7, 5, // +X
}

// Box returns a closed, outward-wound, indexed box spanning min to max:
// 8 shared vertices and 12 triangles.
func Box(min, max math.Vec3) Primitive {
	positions := make([]float32, 0, 8*3)
	for i := 0; i < 8; i++ {
		x, y, z := min.X, min.Y, min.Z
		if i&1 != 0 {
			x = max.X
		}
		if i&2 != 0 {
			y = max.Y
		}
		if i&4 != 0 {
			z = max.Z
		}
		positions = append(positions, float32(x), float32(y), float32(z))
	}

	indices := make([]uint32, len(boxIndices))
	copy(indices, boxIndices)
	return Primitive{Positions: positions, Indices: indices}
}

// Unindexed expands an indexed primitive into one vertex per triangle corner.
// Non-indexed primitives are returned unchanged.
func (p *Primitive) Unindexed() Primitive {
	if !p.Indexed() {
		return *p
	}
	positions := make([]float32, 0, len(p.Indices)*3)
	for _, idx := range p.Indices {
		o := int(idx) * 3
		positions = append(positions, p.Positions[o:o+3]...)
	}
	return Primitive{Positions: positions, Mode: p.Mode}
}
