package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/polyglot/config"
	"github.com/kbukum/polyglot/logger"
)

// testConfig is a minimal config that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

type closer struct {
	name  string
	order *[]string
	err   error
}

func (c *closer) Close(context.Context) error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newTestApp(t *testing.T) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app, err := NewApp(newTestConfig("test-svc", "1.0.0"), WithLogger(logger.Nop()), WithSummaryOutput(&out))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, &out
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Logger == nil || app.Summary == nil {
		t.Error("expected logger and summary")
	}
	if app.Cfg.Name != "test-svc" {
		t.Errorf("expected cfg.Name 'test-svc', got %q", app.Cfg.Name)
	}
	if !app.Cfg.Debug {
		t.Error("expected development defaults applied")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := newTestConfig("", "1.0.0")
	if _, err := NewApp(cfg, WithLogger(logger.Nop())); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestNewApp_GracefulTimeout(t *testing.T) {
	app, err := NewApp(newTestConfig("svc", "1"), WithLogger(logger.Nop()), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.settings.gracefulTimeout != time.Second {
		t.Errorf("expected 1s, got %v", app.settings.gracefulTimeout)
	}
}

func TestRunTask_Lifecycle(t *testing.T) {
	app, out := newTestApp(t)

	var order []string
	app.OnStart(func(context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		order = append(order, "configure")
		a.Track(&closer{name: "first", order: &order}, "not closeable", &closer{name: "second", order: &order})
		a.Summary.TrackComponent("session", "active", true)
		return nil
	})
	app.OnStop(func(context.Context) error {
		order = append(order, "stop")
		return nil
	})

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start,configure,task,stop,second,first"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
	if !strings.Contains(out.String(), "test-svc v1.0.0") || !strings.Contains(out.String(), "session (active)") {
		t.Errorf("summary missing entries:\n%s", out.String())
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app, _ := newTestApp(t)
	var order []string
	app.Track(&closer{name: "res", order: &order, err: fmt.Errorf("close failed")})

	taskErr := fmt.Errorf("task failed")
	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if err != taskErr {
		t.Errorf("expected task error, got %v", err)
	}
	if len(order) != 1 {
		t.Errorf("expected resource closed, got %v", order)
	}
}

func TestRunTask_ConfigureErrorStillCloses(t *testing.T) {
	app, _ := newTestApp(t)
	var order []string
	app.OnConfigure(func(_ context.Context, a *App[*testConfig]) error {
		a.Track(&closer{name: "partial", order: &order})
		return fmt.Errorf("boom")
	})

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "configuration failed") {
		t.Errorf("expected configuration error, got %v", err)
	}
	if ran {
		t.Error("task ran after failed configure")
	}
	if len(order) != 1 || order[0] != "partial" {
		t.Errorf("expected partial resources closed, got %v", order)
	}
}

func TestRunTask_StartHookError(t *testing.T) {
	app, _ := newTestApp(t)
	app.OnStart(func(context.Context) error { return fmt.Errorf("nope") })
	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected onStart error, got %v", err)
	}
}

func TestRunTask_ContextCancel(t *testing.T) {
	app, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSummary_Display(t *testing.T) {
	s := NewSummary("polyglot", "0.1.0")
	s.SetStartupDuration(250 * time.Millisecond)
	s.TrackComponent("synthesizer", "active", true)
	s.TrackComponent("recognizer", "unavailable", false)
	s.TrackClient("translator", "microsoft-translator-text.p.rapidapi.com", "http", "configured")

	var out bytes.Buffer
	s.DisplaySummary(&out)
	text := out.String()

	for _, want := range []string{
		"polyglot v0.1.0 started in 0.25s",
		"✅ synthesizer (active)",
		"❌ recognizer (unavailable)",
		"(1/2 healthy)",
		"└── translator → microsoft-translator-text.p.rapidapi.com [http] (configured)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
	if len(s.Components()) != 2 || len(s.Clients()) != 1 {
		t.Error("tracked entries not returned")
	}
}

func TestSummary_Empty(t *testing.T) {
	var out bytes.Buffer
	NewSummary("svc", "1").DisplaySummary(&out)
	if !strings.Contains(out.String(), "No components registered") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}
}
