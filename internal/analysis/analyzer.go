// Package analysis runs the per-load pipeline: aggregate a scene, then frame it.
package analysis

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshstat/internal/config"
	"github.com/Faultbox/meshstat/pkg/camera"
	"github.com/Faultbox/meshstat/pkg/scene"
)

// ErrSuperseded is returned by a run that a newer Analyze call replaced.
var ErrSuperseded = errors.New("analysis superseded by a newer load")

// Result is the immutable outcome of one load.
type Result struct {
	Generation  uint64
	Source      string
	Stats       scene.Stats
	Diagnostics scene.Diagnostics
	Placement   camera.Placement
	Elapsed     time.Duration
}

// Analyzer keeps only the most recently started load.
//
// Starting a run cancels the previous one. A run that finishes after a newer
// one started returns ErrSuperseded and never replaces Latest.
type Analyzer struct {
	framer *camera.Framer
	fov    float64
	opts   []scene.Option
	log    *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	latest     *Result
}

// New creates an analyzer. A nil logger discards output.
func New(framer *camera.Framer, fovDegrees float64, log *zap.Logger, opts ...scene.Option) *Analyzer {
	if framer == nil {
		framer = camera.NewFramer()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		framer: framer,
		fov:    fovDegrees,
		opts:   opts,
		log:    log,
	}
}

// FromConfig creates an analyzer from loaded configuration.
func FromConfig(cfg *config.Config, log *zap.Logger) (*Analyzer, error) {
	framer, err := cfg.Camera.Framer()
	if err != nil {
		return nil, err
	}

	var opts []scene.Option
	if cfg.Analysis.WorldSpaceMetrics {
		opts = append(opts, scene.WithWorldSpaceMetrics())
	}
	if cfg.Analysis.StopOnFirstError {
		opts = append(opts, scene.WithStopOnFirstError())
	}
	return New(framer, cfg.Camera.FOV, log, opts...), nil
}

// Analyze aggregates root and frames the result. source labels the load in
// logs and in the returned Result.
func (a *Analyzer) Analyze(ctx context.Context, source string, root scene.Node) (*Result, error) {
	gen, runCtx, done := a.begin(ctx)
	defer done()

	log := a.log.With(zap.String("source", source), zap.Uint64("generation", gen))
	start := time.Now()

	stats, diags, err := scene.Aggregate(runCtx, root, a.opts...)
	if err != nil {
		if a.superseded(gen) {
			log.Debug("analysis cancelled by newer load")
			return nil, ErrSuperseded
		}
		return nil, err
	}
	for _, d := range diags {
		log.Warn("skipped node", zap.String("path", d.Path), zap.Error(d.Err))
	}

	placement, err := a.framer.FrameStats(stats, a.fov)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Generation:  gen,
		Source:      source,
		Stats:       stats,
		Diagnostics: diags,
		Placement:   placement,
		Elapsed:     time.Since(start),
	}
	if err := a.commit(gen, res); err != nil {
		log.Debug("discarding stale result")
		return nil, err
	}

	log.Info("analysis complete",
		zap.Uint64("vertices", stats.VertexCount),
		zap.Uint64("triangles", stats.TriangleCount),
		zap.Float64("surface_area", stats.SurfaceArea),
		zap.Float64("volume", stats.Volume),
		zap.Int("diagnostics", len(diags)),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// Latest returns the result of the most recent load that completed without
// being superseded, or nil.
func (a *Analyzer) Latest() *Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}

// Cancel aborts the in-flight run, if any.
func (a *Analyzer) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Analyzer) begin(ctx context.Context) (uint64, context.Context, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
	}
	a.generation++
	gen := a.generation

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	done := func() {
		a.mu.Lock()
		if a.generation == gen {
			a.cancel = nil
		}
		a.mu.Unlock()
		cancel()
	}
	return gen, runCtx, done
}

func (a *Analyzer) superseded(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gen != a.generation
}

func (a *Analyzer) commit(gen uint64, res *Result) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.generation {
		return ErrSuperseded
	}
	a.latest = res
	return nil
}
