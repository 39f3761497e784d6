// Package report turns an analysis result into a presentation record.
package report

import (
	"io/fs"
	"math"
	"time"

	"github.com/Faultbox/meshstat/internal/analysis"
	m3 "github.com/Faultbox/meshstat/pkg/math"
)

const bytesPerMB = 1024 * 1024

// Axes is a per-axis measurement.
type Axes struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Camera is the suggested viewing placement.
type Camera struct {
	Position Axes    `yaml:"position"`
	LookAt   Axes    `yaml:"look_at"`
	Distance float64 `yaml:"distance"`
	// Orbit angles around LookAt, in degrees.
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
}

// Skipped names a leaf that did not contribute to the totals.
type Skipped struct {
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
}

// Details is the model details panel for one load.
// Measurements are already rounded to Precision decimal places.
type Details struct {
	Source      string    `yaml:"source"`
	Vertices    uint64    `yaml:"vertices"`
	Triangles   uint64    `yaml:"triangles"`
	Meshes      int       `yaml:"meshes"`
	Size        Axes      `yaml:"size"`
	SurfaceArea float64   `yaml:"surface_area"`
	Volume      float64   `yaml:"volume"`
	FileSizeMB  float64   `yaml:"file_size_mb"`
	Modified    time.Time `yaml:"modified,omitempty"`
	Camera      Camera    `yaml:"camera"`
	Skipped     []Skipped `yaml:"skipped,omitempty"`

	Precision int `yaml:"-"`
}

// New builds the details for res. info describes the scene file and may be
// nil when the scene did not come from disk.
func New(res *analysis.Result, info fs.FileInfo, precision int) Details {
	r := rounder(precision)
	s := res.Stats
	orbit := res.Placement.Orbit()

	d := Details{
		Source:      res.Source,
		Vertices:    s.VertexCount,
		Triangles:   s.TriangleCount,
		Meshes:      s.MeshCount,
		Size:        r.axes(s.Size()),
		SurfaceArea: r.round(s.SurfaceArea),
		Volume:      r.round(s.Volume),
		Camera: Camera{
			Position: r.axes(res.Placement.Position),
			LookAt:   r.axes(res.Placement.LookAt),
			Distance: r.round(res.Placement.Distance),
			Pitch:    r.round(orbit.Pitch * 180 / math.Pi),
			Yaw:      r.round(orbit.Yaw * 180 / math.Pi),
		},
		Precision: precision,
	}
	if info != nil {
		d.FileSizeMB = r.round(float64(info.Size()) / bytesPerMB)
		d.Modified = info.ModTime().UTC().Truncate(time.Second)
	}
	for _, diag := range res.Diagnostics {
		d.Skipped = append(d.Skipped, Skipped{Path: diag.Path, Reason: diag.Err.Error()})
	}
	return d
}

type rounder int

func (p rounder) round(v float64) float64 {
	scale := math.Pow(10, float64(p))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

func (p rounder) axes(v m3.Vec3) Axes {
	return Axes{X: p.round(v.X), Y: p.round(v.Y), Z: p.round(v.Z)}
}
