package scenefile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshstat/pkg/scene"
)

// Encode writes root as a scene document. Transforms are written as matrices.
func Encode(w io.Writer, root scene.Node) error {
	spec, err := SpecOf(root)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	return enc.Close()
}

// SpecOf converts a node tree back into its document form. Nil children are
// dropped. A group that is its own ancestor cannot be written and yields
// ErrInvalidDocument.
func SpecOf(n scene.Node) (*NodeSpec, error) {
	if isNil(n) {
		return nil, fmt.Errorf("%w: nil root", ErrInvalidDocument)
	}
	return specOf(n, pathOf("", n.NodeName(), 0), make(map[*scene.Group]bool))
}

func specOf(n scene.Node, path string, onPath map[*scene.Group]bool) (*NodeSpec, error) {
	spec := &NodeSpec{Name: n.NodeName()}
	if m := n.LocalTransform(); m != nil {
		spec.Matrix = append([]float64(nil), m[:]...)
	}

	switch n := n.(type) {
	case *scene.Group:
		if onPath[n] {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, path, scene.ErrCyclicGraph)
		}
		onPath[n] = true
		defer delete(onPath, n)

		for i, child := range n.Children {
			if isNil(child) {
				continue
			}
			cs, err := specOf(child, pathOf(path, child.NodeName(), i), onPath)
			if err != nil {
				return nil, err
			}
			spec.Children = append(spec.Children, *cs)
		}
	case *scene.MeshLeaf:
		if n.Primitive != nil {
			spec.Mesh = &MeshSpec{
				Positions: n.Primitive.Positions,
				Indices:   IndexList(n.Primitive.Indices),
			}
			if n.Primitive.Mode != 0 {
				spec.Mesh.Mode = n.Primitive.Mode.String()
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported node type %T", ErrInvalidDocument, n)
	}
	return spec, nil
}

func isNil(n scene.Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *scene.Group:
		return n == nil
	case *scene.MeshLeaf:
		return n == nil
	}
	return false
}
