// Package scenefile reads and writes YAML scene documents.
//
// A scene document describes an already-decoded node hierarchy:
//
//	name: assembly
//	children:
//	  - name: base
//	    translation: [0, 0, 0]
//	    mesh:
//	      box: {min: [0, 0, 0], max: [1, 1, 1]}
//	  - name: lid
//	    rotation: [0, 0, 0, 1]
//	    mesh:
//	      positions: [0, 0, 0, 1, 0, 0, 0, 1, 0]
//	      indices: [0, 1, 2]
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshstat/pkg/geometry"
	"github.com/Faultbox/meshstat/pkg/math"
	"github.com/Faultbox/meshstat/pkg/scene"
)

// ErrInvalidDocument wraps every structural problem in a scene document.
var ErrInvalidDocument = errors.New("invalid scene document")

// NodeSpec is one node of a scene document.
type NodeSpec struct {
	Name        string     `yaml:"name,omitempty"`
	Matrix      []float64  `yaml:"matrix,omitempty,flow"` // 16 values, column-major
	Translation []float64  `yaml:"translation,omitempty,flow"`
	Rotation    []float64  `yaml:"rotation,omitempty,flow"` // quaternion x, y, z, w
	Scale       []float64  `yaml:"scale,omitempty,flow"`
	Mesh        *MeshSpec  `yaml:"mesh,omitempty"`
	Children    []NodeSpec `yaml:"children,omitempty"`
}

// MeshSpec is a primitive, given either as buffers or as a box generator.
type MeshSpec struct {
	Mode      string    `yaml:"mode,omitempty"`
	Positions []float32 `yaml:"positions,omitempty,flow"`
	Indices   IndexList `yaml:"indices,omitempty,flow"`
	Box       *BoxSpec  `yaml:"box,omitempty"`
}

// IndexList is an index buffer. An empty list is written out and kept, so an
// indexed primitive with no triangles stays indexed; only nil is omitted.
type IndexList []uint32

// IsZero reports whether the list is absent.
func (l IndexList) IsZero() bool { return l == nil }

// BoxSpec generates a closed box primitive.
type BoxSpec struct {
	Min       []float64 `yaml:"min,flow"`
	Max       []float64 `yaml:"max,flow"`
	Unindexed bool      `yaml:"unindexed,omitempty"`
}

// Load reads a scene document from a file.
func Load(path string) (scene.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scene: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Parse decodes a scene document held in memory.
func Parse(data []byte) (scene.Node, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one scene document. Unknown keys are rejected.
func Decode(r io.Reader) (scene.Node, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec NodeSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return spec.Build()
}

// Build converts the document tree into scene nodes.
func (s *NodeSpec) Build() (scene.Node, error) {
	return s.build(pathOf("", s.Name, 0))
}

func (s *NodeSpec) build(path string) (scene.Node, error) {
	transform, err := s.transform(path)
	if err != nil {
		return nil, err
	}

	if s.Mesh != nil {
		if len(s.Children) > 0 {
			return nil, fmt.Errorf("%w: %s: a mesh node cannot have children", ErrInvalidDocument, path)
		}
		p, err := s.Mesh.primitive(path)
		if err != nil {
			return nil, err
		}
		return &scene.MeshLeaf{Name: s.Name, Transform: transform, Primitive: &p}, nil
	}

	g := &scene.Group{Name: s.Name, Transform: transform}
	for i := range s.Children {
		child := &s.Children[i]
		n, err := child.build(pathOf(path, child.Name, i))
		if err != nil {
			return nil, err
		}
		g.Children = append(g.Children, n)
	}
	return g, nil
}

func (s *NodeSpec) transform(path string) (*math.Mat4, error) {
	hasTRS := s.Translation != nil || s.Rotation != nil || s.Scale != nil
	if s.Matrix != nil {
		if hasTRS {
			return nil, fmt.Errorf("%w: %s: matrix and translation/rotation/scale are exclusive",
				ErrInvalidDocument, path)
		}
		if len(s.Matrix) != 16 {
			return nil, fmt.Errorf("%w: %s: matrix needs 16 values, got %d",
				ErrInvalidDocument, path, len(s.Matrix))
		}
		var m math.Mat4
		copy(m[:], s.Matrix)
		return &m, nil
	}
	if !hasTRS {
		return nil, nil
	}

	t := math.Vec3{}
	if s.Translation != nil {
		v, err := vec3(path, "translation", s.Translation)
		if err != nil {
			return nil, err
		}
		t = v
	}
	r := math.QuatIdentity()
	if s.Rotation != nil {
		if len(s.Rotation) != 4 {
			return nil, fmt.Errorf("%w: %s: rotation needs 4 values, got %d",
				ErrInvalidDocument, path, len(s.Rotation))
		}
		r = math.Quat{X: s.Rotation[0], Y: s.Rotation[1], Z: s.Rotation[2], W: s.Rotation[3]}
	}
	sc := math.Vec3{X: 1, Y: 1, Z: 1}
	if s.Scale != nil {
		v, err := vec3(path, "scale", s.Scale)
		if err != nil {
			return nil, err
		}
		sc = v
	}

	m := math.Compose(t, r, sc)
	return &m, nil
}

func (m *MeshSpec) primitive(path string) (geometry.Primitive, error) {
	mode, err := geometry.ParseMode(m.Mode)
	if err != nil {
		return geometry.Primitive{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, path, err)
	}

	if m.Box != nil {
		if m.Positions != nil || m.Indices != nil {
			return geometry.Primitive{}, fmt.Errorf("%w: %s: box and explicit buffers are exclusive",
				ErrInvalidDocument, path)
		}
		min, err := vec3(path, "box.min", m.Box.Min)
		if err != nil {
			return geometry.Primitive{}, err
		}
		max, err := vec3(path, "box.max", m.Box.Max)
		if err != nil {
			return geometry.Primitive{}, err
		}
		p := geometry.Box(min, max)
		if m.Box.Unindexed {
			p = p.Unindexed()
		}
		p.Mode = mode
		return p, nil
	}

	// Buffer shape is checked at measure time so a bad leaf becomes a
	// diagnostic rather than a load failure.
	return geometry.Primitive{
		Positions: m.Positions,
		Indices:   []uint32(m.Indices),
		Mode:      mode,
	}, nil
}

func vec3(path, field string, v []float64) (math.Vec3, error) {
	if len(v) != 3 {
		return math.Vec3{}, fmt.Errorf("%w: %s: %s needs 3 values, got %d",
			ErrInvalidDocument, path, field, len(v))
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func pathOf(parent, name string, index int) string {
	if name == "" {
		name = fmt.Sprintf("#%d", index)
	}
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
