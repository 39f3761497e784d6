package camera

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meshstat/pkg/math"
)

func TestOrbitRoundTrip(t *testing.T) {
	p := Placement{
		Position: math.Vec3{X: 4, Y: 3, Z: 10},
		LookAt:   math.Vec3{X: 1, Y: 1, Z: 1},
	}

	o := p.Orbit()
	assert.Equal(t, p.LookAt, o.Center)
	assert.InDelta(t, p.Position.Distance(p.LookAt), o.Distance, tol)
	assertVecInDelta(t, p.Position, o.Position(), 1e-9)
}

func TestOrbitStraightBack(t *testing.T) {
	o := Placement{Position: math.Vec3{Z: 5}}.Orbit()
	assert.InDelta(t, 5.0, o.Distance, tol)
	assert.InDelta(t, 0.0, o.Pitch, tol)
	assert.InDelta(t, 0.0, o.Yaw, tol)

	o = Placement{Position: math.Vec3{X: 5}}.Orbit()
	assert.InDelta(t, gomath.Pi/2, o.Yaw, tol)
}

func TestOrbitZeroDistance(t *testing.T) {
	c := math.Vec3{X: 1, Y: 2, Z: 3}
	o := Placement{Position: c, LookAt: c}.Orbit()
	assert.Equal(t, Orbit{Center: c}, o)
	assert.Equal(t, c, o.Position())
}

func TestOrbitViewMatrixMatchesPlacement(t *testing.T) {
	p := Placement{Position: math.Vec3{X: 2, Y: 1, Z: 6}, LookAt: math.Vec3{X: 0.5}}
	want := p.ViewMatrix()
	got := p.Orbit().ViewMatrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "element %d", i)
	}
}
