// Package camera computes camera placements that frame a bounding box.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/meshstat/pkg/math"
	"github.com/Faultbox/meshstat/pkg/scene"
)

// Framing errors.
var (
	ErrInvalidFOV    = errors.New("field of view must be in (0, 180) degrees")
	ErrInvalidBounds = errors.New("invalid bounds")
)

// DefaultMinDistance keeps the camera off the target for point-sized scenes.
const DefaultMinDistance = 0.1

// Placement is where the camera sits and what it looks at.
type Placement struct {
	Position math.Vec3
	LookAt   math.Vec3
	// Distance is the framing distance after the minimum floor was applied.
	Distance float64
}

// ViewMatrix returns the look-at view matrix for the placement with +Y up.
func (p Placement) ViewMatrix() math.Mat4 {
	return math.LookAt(p.Position, p.LookAt, math.Vec3{Y: 1})
}

// Framer frames bounding boxes with a Heuristic.
type Framer struct {
	Heuristic Heuristic
	// MinDistance is the closest the camera may get. Zero or negative
	// means DefaultMinDistance.
	MinDistance float64
}

// NewFramer returns a framer with the empirical heuristic and default floor.
func NewFramer() *Framer {
	return &Framer{
		Heuristic:   DefaultEmpiricalFit(),
		MinDistance: DefaultMinDistance,
	}
}

// Frame computes a placement that looks at the center of [min, max].
// A zero-extent box is framed from the minimum distance.
func (f *Framer) Frame(min, max math.Vec3, fovDegrees float64) (Placement, error) {
	if !(fovDegrees > 0 && fovDegrees < 180) {
		return Placement{}, fmt.Errorf("%w: %v", ErrInvalidFOV, fovDegrees)
	}
	if !min.IsFinite() || !max.IsFinite() {
		return Placement{}, fmt.Errorf("%w: non-finite corner", ErrInvalidBounds)
	}
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return Placement{}, fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidBounds, min, max)
	}

	h := f.Heuristic
	if h == nil {
		h = DefaultEmpiricalFit()
	}

	box := math.Box3{Min: min, Max: max}
	center := box.Center()
	size := box.Size()
	fovRad := fovDegrees * gomath.Pi / 180

	floor := f.MinDistance
	if !(floor > 0) {
		floor = DefaultMinDistance
	}
	distance := h.Distance(size.MaxComponent(), fovRad)
	if gomath.IsNaN(distance) || gomath.IsInf(distance, 0) || distance < floor {
		distance = floor
	}

	pos := h.Position(center, size, distance)
	if !pos.IsFinite() {
		return Placement{}, fmt.Errorf("%w: framing produced %v", ErrInvalidBounds, pos)
	}

	return Placement{
		Position: pos,
		LookAt:   center,
		Distance: distance,
	}, nil
}

// FrameStats frames the bounding box of aggregated scene stats.
func (f *Framer) FrameStats(stats scene.Stats, fovDegrees float64) (Placement, error) {
	return f.Frame(stats.Bounds.Min, stats.Bounds.Max, fovDegrees)
}
