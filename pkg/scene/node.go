// Package scene aggregates mesh statistics over a hierarchical scene graph.
package scene

import (
	"github.com/Faultbox/meshstat/pkg/geometry"
	"github.com/Faultbox/meshstat/pkg/math"
)

// Node is a scene graph node: either a *Group or a *MeshLeaf.
type Node interface {
	NodeName() string
	// LocalTransform returns the node's transform relative to its parent, or nil for identity.
	LocalTransform() *math.Mat4
	node()
}

// Group is an interior node. Children are visited in slice order.
type Group struct {
	Name      string
	Transform *math.Mat4
	Children  []Node
}

// MeshLeaf carries at most one primitive. A nil Primitive contributes nothing.
type MeshLeaf struct {
	Name      string
	Transform *math.Mat4
	Primitive *geometry.Primitive
}

// NodeName returns the group name.
func (g *Group) NodeName() string { return g.Name }

// LocalTransform returns the group transform.
func (g *Group) LocalTransform() *math.Mat4 { return g.Transform }

func (*Group) node() {}

// Add appends children and returns the group for chaining.
func (g *Group) Add(children ...Node) *Group {
	g.Children = append(g.Children, children...)
	return g
}

// NodeName returns the leaf name.
func (l *MeshLeaf) NodeName() string { return l.Name }

// LocalTransform returns the leaf transform.
func (l *MeshLeaf) LocalTransform() *math.Mat4 { return l.Transform }

func (*MeshLeaf) node() {}

// NewGroup creates a named group with the given children.
func NewGroup(name string, children ...Node) *Group {
	return &Group{Name: name, Children: children}
}

// NewMesh creates a named leaf owning p.
func NewMesh(name string, p geometry.Primitive) *MeshLeaf {
	return &MeshLeaf{Name: name, Primitive: &p}
}
