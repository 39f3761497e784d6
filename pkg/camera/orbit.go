package camera

import (
	gomath "math"

	"github.com/Faultbox/meshstat/pkg/math"
)

// Orbit describes a placement in the spherical coordinates orbit controls use.
type Orbit struct {
	// Center point to orbit around
	Center math.Vec3

	Distance float64 // Distance from center
	Pitch    float64 // Vertical angle above the XZ plane, radians
	Yaw      float64 // Horizontal angle from +Z toward +X, radians
}

// Orbit converts the placement to orbit parameters around its target.
func (p Placement) Orbit() Orbit {
	offset := p.Position.Sub(p.LookAt)
	d := offset.Length()
	if d == 0 {
		return Orbit{Center: p.LookAt}
	}
	return Orbit{
		Center:   p.LookAt,
		Distance: d,
		Pitch:    gomath.Asin(offset.Y / d),
		Yaw:      gomath.Atan2(offset.X, offset.Z),
	}
}

// Position returns the camera position in world space.
func (o Orbit) Position() math.Vec3 {
	x := o.Distance * gomath.Cos(o.Pitch) * gomath.Sin(o.Yaw)
	y := o.Distance * gomath.Sin(o.Pitch)
	z := o.Distance * gomath.Cos(o.Pitch) * gomath.Cos(o.Yaw)

	return o.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this orbit.
func (o Orbit) ViewMatrix() math.Mat4 {
	return math.LookAt(o.Position(), o.Center, math.Vec3{Y: 1})
}
