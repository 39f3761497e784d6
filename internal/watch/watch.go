// Package watch re-analyses a scene document every time it changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/meshstat/internal/analysis"
	"github.com/Faultbox/meshstat/internal/scenefile"
)

// Watcher reloads one scene file on change.
//
// Changes arriving while a load is running cancel it and queue one more load,
// so bursts of writes collapse into a single final analysis.
type Watcher struct {
	path     string
	analyzer *analysis.Analyzer
	log      *zap.Logger

	// OnResult receives every analysis that completed for the current file
	// contents. It runs on the watcher's worker goroutine.
	OnResult func(*analysis.Result)
	// OnError receives load and analysis failures other than cancellation.
	OnError func(error)
}

// New creates a watcher for the scene file at path.
func New(path string, a *analysis.Analyzer, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		path:     filepath.Clean(path),
		analyzer: a,
		log:      log.With(zap.String("scene", path)),
	}
}

// Run analyses the file once, then again after every change, until ctx is
// cancelled or the underlying watcher closes. It returns nil in both cases,
// after the worker goroutine has exited.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	// Editors often replace the file rather than write it, so watch the
	// directory and filter by name.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}
	return w.loop(ctx, fw.Events, fw.Errors)
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	ctx, cancel := context.WithCancel(ctx)
	pending := make(chan struct{}, 1)
	pending <- struct{}{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.work(ctx, pending)
	}()
	defer func() {
		cancel()
		w.analyzer.Cancel()
		<-done
		w.log.Info("stopped watching scene")
	}()

	w.log.Info("watching scene")
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("scene changed", zap.Stringer("op", event.Op))
			w.analyzer.Cancel()
			select {
			case pending <- struct{}{}:
			default:
			}

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	return filepath.Clean(event.Name) == w.path && event.Has(fsnotify.Write|fsnotify.Create)
}

func (w *Watcher) work(ctx context.Context, pending <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-pending:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	root, err := scenefile.Load(w.path)
	if err != nil {
		w.log.Error("failed to load scene", zap.Error(err))
		w.fail(err)
		return
	}

	res, err := w.analyzer.Analyze(ctx, w.path, root)
	switch {
	case err == nil:
		if w.OnResult != nil {
			w.OnResult(res)
		}
	case errors.Is(err, analysis.ErrSuperseded), errors.Is(err, context.Canceled):
		w.log.Debug("reload superseded")
	default:
		w.log.Error("analysis failed", zap.Error(err))
		w.fail(err)
	}
}

func (w *Watcher) fail(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
