// Package app carries the per-invocation configuration and logger to the
// commands and wires them to the catalog, inserters and watcher.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/klytics/phrasekit/internal/catalog"
	"github.com/klytics/phrasekit/internal/config"
	"github.com/klytics/phrasekit/internal/history"
	"github.com/klytics/phrasekit/internal/insert"
	"github.com/klytics/phrasekit/internal/watch"
)

type envKey struct{}

// Env is what a command needs beyond its own flags.
type Env struct {
	Config *config.Config
	Logger *zap.Logger
}

// WithEnv returns a copy of ctx carrying env.
func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey{}, env)
}

// FromContext returns the Env stored in ctx, or one with default settings
// and a no-op logger.
func FromContext(ctx context.Context) *Env {
	if ctx != nil {
		if env, ok := ctx.Value(envKey{}).(*Env); ok && env != nil {
			return env
		}
	}
	return &Env{Config: defaultConfig(), Logger: zap.NewNop()}
}

func defaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Insert.Target = insert.TargetStdout
	cfg.Insert.Marker = "{{cursor}}"
	cfg.Watch.DebounceMs = int(watch.DefaultDebounce / time.Millisecond)
	cfg.Output.Color = true
	cfg.Log.Level = "info"
	return cfg
}

// DataPath returns the spreadsheet named on the command line, falling back
// to data.path. Without either it returns catalog.ErrNoFile.
func (e *Env) DataPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if e.Config.Data.Path != "" {
		return e.Config.Data.Path, nil
	}
	return "", catalog.ErrNoFile
}

// Load creates a catalog and loads path into it.
func (e *Env) Load(ctx context.Context, path string) (*catalog.Catalog, *catalog.Snapshot, error) {
	cat := catalog.New(e.Logger)
	snap, err := cat.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return cat, snap, nil
}

// InsertOverrides are command-line values that take precedence over the
// insert.* settings. Empty fields keep the configured value.
type InsertOverrides struct {
	Target   string
	Document string
	Marker   string
}

// Inserter builds the configured inserter; out receives stdout insertions.
func (e *Env) Inserter(o InsertOverrides, out io.Writer) (insert.Inserter, error) {
	opts := insert.Options{
		Target:   e.Config.Insert.Target,
		Document: e.Config.Insert.Document,
		Marker:   e.Config.Insert.Marker,
		Out:      out,
		Logger:   e.Logger,
	}
	if o.Target != "" {
		opts.Target = o.Target
	}
	if o.Document != "" {
		opts.Document = o.Document
		if o.Target == "" {
			opts.Target = insert.TargetDocx
		}
	}
	if o.Marker != "" {
		opts.Marker = o.Marker
	}
	sink, err := insert.New(opts)
	if err != nil {
		return nil, err
	}
	if !e.Config.History.Enabled {
		return sink, nil
	}
	return &history.Recorder{
		Next:   sink,
		Log:    history.New(e.Config.History.Path, true),
		Target: Target(sink),
		Logger: e.Logger,
	}, nil
}

// Target names where sink inserts: the document path, "clipboard" or
// "stdout".
func Target(sink insert.Inserter) string {
	switch s := sink.(type) {
	case *history.Recorder:
		return s.Target
	case *insert.Document:
		return s.Path
	case *insert.Clipboard:
		return insert.TargetClipboard
	}
	return insert.TargetStdout
}

// Watch starts reloading path into cat whenever the file changes, if
// enabled by force or by watch.enabled. The returned stop function is never
// nil.
func (e *Env) Watch(ctx context.Context, cat *catalog.Catalog, path string, force bool) (func(), error) {
	if !force && !e.Config.Watch.Enabled {
		return func() {}, nil
	}

	debounce := time.Duration(e.Config.Watch.DebounceMs) * time.Millisecond
	w, err := watch.New(path, debounce, func(ctx context.Context, p string) error {
		_, err := cat.Load(ctx, p)
		return err
	}, e.Logger)
	if err != nil {
		return nil, fmt.Errorf("could not watch %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Start(ctx); err != nil {
			e.Logger.Warn("watcher stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
	}, nil
}
