package scene

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Faultbox/meshstat/pkg/geometry"
	"github.com/Faultbox/meshstat/pkg/math"
)

// ErrCyclicGraph is reported for a node that is its own ancestor.
var ErrCyclicGraph = errors.New("cyclic scene graph")

type options struct {
	worldSpaceMetrics bool
	stopOnFirstError  bool
}

// Option configures Aggregate.
type Option func(*options)

// WithWorldSpaceMetrics measures area and volume on world-transformed
// geometry. By default primitives are measured as stored.
func WithWorldSpaceMetrics() Option {
	return func(o *options) { o.worldSpaceMetrics = true }
}

// WithStopOnFirstError makes Aggregate return the first malformed leaf as an
// error instead of recording it and moving on.
func WithStopOnFirstError() Option {
	return func(o *options) { o.stopOnFirstError = true }
}

type aggregator struct {
	opts   options
	stats  Stats
	bounds math.Box3
	diags  Diagnostics
	onPath map[Node]bool
}

// Aggregate walks root depth-first and sums the metrics of every mesh leaf.
//
// A leaf that fails to measure is skipped and reported in the returned
// diagnostics; the walk continues. The context is checked between node
// visits, and a cancelled walk returns the context error with zero stats.
func Aggregate(ctx context.Context, root Node, opts ...Option) (Stats, Diagnostics, error) {
	a := &aggregator{
		bounds: math.EmptyBox(),
		onPath: make(map[Node]bool),
	}
	for _, opt := range opts {
		opt(&a.opts)
	}

	if err := a.visit(ctx, root, math.Identity(), "", 0); err != nil {
		return Stats{}, a.diags, err
	}

	if !a.bounds.IsEmpty() {
		a.stats.Bounds = a.bounds
	}
	return a.stats, a.diags, nil
}

// visit walks n, the index-th child of the node at parentPath. Nil nodes,
// typed or not, are skipped.
func (a *aggregator) visit(ctx context.Context, n Node, parent math.Mat4, parentPath string, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch n := n.(type) {
	case *Group:
		if n == nil {
			return nil
		}
		path := nodePath(parentPath, n, index)
		if a.onPath[n] {
			a.diagnose(path, ErrCyclicGraph)
			return nil
		}
		a.onPath[n] = true
		defer delete(a.onPath, n)

		world := worldOf(parent, n)
		for i, child := range n.Children {
			if err := a.visit(ctx, child, world, path, i); err != nil {
				return err
			}
		}
	case *MeshLeaf:
		if n == nil {
			return nil
		}
		return a.visitLeaf(n, worldOf(parent, n), nodePath(parentPath, n, index))
	}
	return nil
}

func worldOf(parent math.Mat4, n Node) math.Mat4 {
	if local := n.LocalTransform(); local != nil {
		return parent.Mul(*local)
	}
	return parent
}

func (a *aggregator) visitLeaf(leaf *MeshLeaf, world math.Mat4, path string) error {
	p := leaf.Primitive
	if p == nil {
		return nil
	}

	target := *p
	if a.opts.worldSpaceMetrics && !world.IsIdentity() && p.ValidatePositions() == nil {
		target = p.Transformed(world)
	}

	m, err := geometry.Measure(target)
	switch {
	case err == nil:
		a.bounds = a.bounds.Union(p.Bounds(world))
		a.stats.VertexCount += uint64(p.VertexCount())
		a.stats.TriangleCount += uint64(p.TriangleCount())
		a.stats.SurfaceArea += m.Area
		a.stats.Volume += m.Volume()
		a.stats.MeshCount++
		return nil

	case errors.Is(err, geometry.ErrUnsupportedPrimitive):
		// Points and lines are still visible geometry.
		if p.ValidatePositions() == nil {
			a.bounds = a.bounds.Union(p.Bounds(world))
		}
		a.diagnose(path, err)
		return nil

	default:
		a.diagnose(path, err)
		if a.opts.stopOnFirstError {
			return fmt.Errorf("measuring %s: %w", path, err)
		}
		return nil
	}
}

func (a *aggregator) diagnose(path string, err error) {
	a.diags = append(a.diags, Diagnostic{Path: path, Err: err})
}

func nodePath(parent string, n Node, index int) string {
	name := n.NodeName()
	if name == "" {
		name = "#" + strconv.Itoa(index)
	}
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
