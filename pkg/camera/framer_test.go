package camera

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshstat/pkg/math"
	"github.com/Faultbox/meshstat/pkg/scene"
)

const tol = 1e-9

func assertVecInDelta(t *testing.T, want, got math.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
}

func TestFrameEmpiricalFormula(t *testing.T) {
	min := math.Vec3{X: -1, Y: 0, Z: -2}
	max := math.Vec3{X: 3, Y: 2, Z: 2}
	fov := 75.0

	p, err := NewFramer().Frame(min, max, fov)
	require.NoError(t, err)

	// maxDim = 4, center = (1, 1, 0), size.y = 2.
	wantDistance := gomath.Abs(4.0 / 2 * gomath.Tan(fov*gomath.Pi/180*2))
	assert.InDelta(t, wantDistance, p.Distance, tol)
	assertVecInDelta(t, math.Vec3{X: 1, Y: 1, Z: 0}, p.LookAt, tol)
	assertVecInDelta(t, math.Vec3{X: 1, Y: 1 - 0.5, Z: wantDistance * 5}, p.Position, tol)
}

func TestFrameExactFit(t *testing.T) {
	f := &Framer{Heuristic: ExactFit{}, MinDistance: DefaultMinDistance}

	p, err := f.Frame(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1}, 90)
	require.NoError(t, err)

	// Half extent 1 at half-angle 45 degrees needs distance 1.
	assert.InDelta(t, 1.0, p.Distance, tol)
	assertVecInDelta(t, math.Vec3{Z: 1}, p.Position, tol)
	assertVecInDelta(t, math.Vec3{}, p.LookAt, tol)
}

func TestFrameTranslationConsistent(t *testing.T) {
	box := math.Box3{Max: math.Vec3{X: 2, Y: 4, Z: 1}}
	shift := math.Vec3{X: 100, Y: -37.5, Z: 12.25}

	for name, f := range map[string]*Framer{
		"empirical": NewFramer(),
		"exact":     {Heuristic: ExactFit{}},
	} {
		t.Run(name, func(t *testing.T) {
			base, err := f.Frame(box.Min, box.Max, 60)
			require.NoError(t, err)
			moved := box.Translate(shift)
			got, err := f.Frame(moved.Min, moved.Max, 60)
			require.NoError(t, err)

			assert.InDelta(t, base.Distance, got.Distance, 1e-9)
			assertVecInDelta(t, base.Position.Add(shift), got.Position, 1e-9)
			assertVecInDelta(t, base.LookAt.Add(shift), got.LookAt, 1e-9)
		})
	}
}

func TestFramePointBounds(t *testing.T) {
	point := math.Vec3{X: 3, Y: -2, Z: 7}

	tests := []struct {
		name  string
		f     *Framer
		floor float64
	}{
		{"empirical", NewFramer(), DefaultMinDistance},
		{"exact", &Framer{Heuristic: ExactFit{}, MinDistance: 0.5}, 0.5},
		{"zero floor", &Framer{Heuristic: DefaultEmpiricalFit()}, DefaultMinDistance},
		{"negative floor", &Framer{Heuristic: ExactFit{}, MinDistance: -1}, DefaultMinDistance},
		{"zero value", &Framer{}, DefaultMinDistance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.f.Frame(point, point, 75)
			require.NoError(t, err)
			assert.True(t, p.Position.IsFinite(), "position %v", p.Position)
			assert.True(t, p.LookAt.IsFinite())
			assert.Equal(t, point, p.LookAt)
			assert.Equal(t, tt.floor, p.Distance)
			assert.NotEqual(t, p.LookAt, p.Position)
			assert.NotEqual(t, math.Mat4{}, p.ViewMatrix())
		})
	}
}

func TestFrameFloorKeepsCameraOffTarget(t *testing.T) {
	p, err := NewFramer().Frame(math.Vec3{}, math.Vec3{}, 75)
	require.NoError(t, err)
	assert.Greater(t, p.Position.Distance(p.LookAt), 0.0)
}

func TestFrameInvalidInput(t *testing.T) {
	f := NewFramer()
	one := math.Vec3{X: 1, Y: 1, Z: 1}

	tests := []struct {
		name    string
		min     math.Vec3
		max     math.Vec3
		fov     float64
		wantErr error
	}{
		{"zero fov", math.Vec3{}, one, 0, ErrInvalidFOV},
		{"straight angle", math.Vec3{}, one, 180, ErrInvalidFOV},
		{"nan fov", math.Vec3{}, one, gomath.NaN(), ErrInvalidFOV},
		{"inverted box", one, math.Vec3{}, 60, ErrInvalidBounds},
		{"infinite corner", math.Vec3{X: gomath.Inf(-1)}, one, 60, ErrInvalidBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Frame(tt.min, tt.max, tt.fov)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFrameNilHeuristicUsesEmpirical(t *testing.T) {
	min, max := math.Vec3{}, math.Vec3{X: 2, Y: 2, Z: 2}
	want, err := NewFramer().Frame(min, max, 50)
	require.NoError(t, err)
	got, err := (&Framer{MinDistance: DefaultMinDistance}).Frame(min, max, 50)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFrameStats(t *testing.T) {
	stats := scene.Stats{Bounds: math.Box3{Max: math.Vec3{X: 2, Y: 2, Z: 2}}}
	p, err := NewFramer().FrameStats(stats, 75)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, p.LookAt)

	// Stats of an empty scene carry the zero box.
	p, err = NewFramer().FrameStats(scene.Stats{}, 75)
	require.NoError(t, err)
	assert.True(t, p.Position.IsFinite())
}

func TestPlacementViewMatrix(t *testing.T) {
	p := Placement{Position: math.Vec3{Z: 5}}
	m := p.ViewMatrix()
	assert.InDelta(t, 0, m.TransformPoint(p.Position).Length(), tol)
}
