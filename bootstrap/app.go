package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/provider"
)

// Hook is a lifecycle callback.
type Hook func(ctx context.Context) error

// App owns the lifecycle of one binary: start hooks, configure callbacks
// that build the object graph, a task, and an orderly stop.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    client, err := microsoft.New(a.Cfg.Translator)
//	    a.Track(client)
//	    return err
//	})
//	err = app.RunTask(ctx, repl.run)
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Summary *Summary

	settings    settings
	onStart     []Hook
	onConfigure []func(ctx context.Context, app *App[C]) error
	onStop      []Hook
	resources   []any
}

// NewApp defaults and validates cfg, then sets up logging from its
// logging section unless WithLogger is given.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	s := newSettings(opts)
	log := s.logger
	if log == nil {
		logger.Init(&base.Logging)
		log = logger.GetGlobalLogger()
	}

	return &App[C]{
		Name:     base.Name,
		Version:  base.Version,
		Cfg:      cfg,
		Logger:   log,
		Summary:  NewSummary(base.Name, base.Version),
		settings: s,
	}, nil
}

// OnStart registers hooks that run before configuration.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnConfigure registers a callback that builds part of the object graph
// from the typed config.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// OnStop registers hooks that run at shutdown before tracked resources
// are closed.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// Track registers resources for shutdown. Those implementing
// provider.Closeable are closed, last tracked first; others are ignored.
func (a *App[C]) Track(resources ...any) {
	a.resources = append(a.resources, resources...)
}

// RunTask starts the app, runs task until it returns or SIGINT/SIGTERM
// cancels its context, then stops the app. Stop runs even when startup
// fails. The task's error wins over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}

	taskCtx, release := a.cancelOnSignal(ctx)
	taskErr := task(taskCtx)
	release()

	stopErr := a.stop()
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

// Shutdown stops the app. For callers driving the lifecycle themselves.
func (a *App[C]) Shutdown(_ context.Context) error {
	return a.stop()
}

func (a *App[C]) cancelOnSignal(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	for i, h := range a.onStart {
		if err := h(ctx); err != nil {
			return fmt.Errorf("onStart hook %d failed: %w", i, err)
		}
	}
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.DisplaySummary(a.settings.summaryOut)
	return nil
}

// stop runs stop hooks, then closes tracked resources in reverse, all
// under one graceful timeout. Every hook runs; the first error is kept.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.settings.gracefulTimeout)
	defer cancel()
	a.Logger.Debug("Shutting down application", logger.Fields("timeout", a.settings.gracefulTimeout.String()))

	var first error
	for i, h := range a.onStop {
		if err := h(ctx); err != nil {
			a.Logger.Error("OnStop hook error", logger.Fields("hook", i, logger.FieldError, err.Error()))
			if first == nil {
				first = fmt.Errorf("onStop hook %d failed: %w", i, err)
			}
		}
	}

	resources := slices.Clone(a.resources)
	slices.Reverse(resources)
	a.resources = nil
	if err := provider.CloseAll(ctx, resources...); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		if first == nil {
			first = err
		}
	}

	a.Logger.Debug("Application shutdown complete")
	return first
}
