package camera

import (
	gomath "math"

	"github.com/Faultbox/meshstat/pkg/math"
)

// Heuristic decides how far from the object the camera sits and where.
type Heuristic interface {
	// Distance returns the framing distance for an object whose largest
	// extent is maxDim, seen through a vertical field of view of fovRad.
	Distance(maxDim, fovRad float64) float64
	// Position places the camera for a box with the given center and size.
	Position(center, size math.Vec3, distance float64) math.Vec3
}

// EmpiricalFit is the tuned framing used by the viewer:
//
//	distance = |maxDim/2 * tan(fov*AngleFactor)|
//	position = center + (0, -size.y*VerticalOffset, distance*DepthFactor)
//
// It is not a geometric fit. The constants are presentation parameters.
type EmpiricalFit struct {
	AngleFactor    float64
	DepthFactor    float64
	VerticalOffset float64
}

// DefaultEmpiricalFit returns the constants tuned for the web viewer.
func DefaultEmpiricalFit() EmpiricalFit {
	return EmpiricalFit{
		AngleFactor:    2,
		DepthFactor:    5,
		VerticalOffset: 0.25,
	}
}

// Distance implements Heuristic.
func (h EmpiricalFit) Distance(maxDim, fovRad float64) float64 {
	return gomath.Abs(maxDim / 2 * gomath.Tan(fovRad*h.AngleFactor))
}

// Position implements Heuristic.
func (h EmpiricalFit) Position(center, size math.Vec3, distance float64) math.Vec3 {
	return math.Vec3{
		X: center.X,
		Y: center.Y - size.Y*h.VerticalOffset,
		Z: center.Z + distance*h.DepthFactor,
	}
}

// ExactFit backs the camera off along +Z until the largest half extent
// exactly fills the vertical field of view.
type ExactFit struct{}

// Distance implements Heuristic.
func (ExactFit) Distance(maxDim, fovRad float64) float64 {
	return (maxDim / 2) / gomath.Tan(fovRad/2)
}

// Position implements Heuristic.
func (ExactFit) Position(center, _ math.Vec3, distance float64) math.Vec3 {
	return math.Vec3{X: center.X, Y: center.Y, Z: center.Z + distance}
}
