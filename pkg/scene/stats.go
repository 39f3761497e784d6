package scene

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/meshstat/pkg/math"
)

// Stats is the aggregate of every mesh leaf in one scene.
//
// VertexCount is the raw sum of each leaf's vertex attribute count. Leaves
// that share a vertex buffer are counted once per leaf; it is not a count of
// unique positions.
type Stats struct {
	VertexCount   uint64
	TriangleCount uint64
	// Bounds is the world-space box over all leaf vertices. It is the zero
	// box when the scene has no geometry.
	Bounds      math.Box3
	SurfaceArea float64
	Volume      float64
	// MeshCount is the number of leaves whose primitive was measured.
	MeshCount int
}

// Size returns the bounding box extent on each axis.
func (s Stats) Size() math.Vec3 {
	return s.Bounds.Size()
}

// Center returns the bounding box midpoint.
func (s Stats) Center() math.Vec3 {
	return s.Bounds.Center()
}

// Diagnostic records a leaf that was skipped during aggregation.
type Diagnostic struct {
	// Path is the slash-separated chain of node names from the root.
	Path string
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %v", d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Diagnostics is the list of per-leaf problems from one aggregation.
type Diagnostics []Diagnostic

// Err combines every diagnostic into one error, or nil if there are none.
func (ds Diagnostics) Err() error {
	var err error
	for _, d := range ds {
		err = multierr.Append(err, d)
	}
	return err
}

// Count returns how many diagnostics match target via errors.Is.
func (ds Diagnostics) Count(target error) int {
	n := 0
	for _, d := range ds {
		if errors.Is(d.Err, target) {
			n++
		}
	}
	return n
}
