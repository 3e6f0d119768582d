package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/polyglot/catalog"
	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/speech"
	"github.com/kbukum/polyglot/translation"
)

type fakeTranslator struct {
	mu    sync.Mutex
	calls []translation.Request
	fn    func(ctx context.Context, req translation.Request) (*translation.Result, error)
}

func (f *fakeTranslator) Name() string                     { return "fake" }
func (f *fakeTranslator) IsAvailable(context.Context) bool { return true }

func (f *fakeTranslator) Translate(ctx context.Context, req translation.Request) (*translation.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return &translation.Result{Text: "[" + req.Target + "] " + req.Text, Target: req.Target}, nil
	}
	return fn(ctx, req)
}

func (f *fakeTranslator) Calls() []translation.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]translation.Request(nil), f.calls...)
}

type fakeTimer struct {
	clock   *fakeClock
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock records debounce timers and fires them on demand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Live() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped {
			out = append(out, t)
		}
	}
	return out
}

// Fire runs every live timer in the calling goroutine.
func (c *fakeClock) Fire() int {
	c.mu.Lock()
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(message string) {
	n.mu.Lock()
	n.messages = append(n.messages, message)
	n.mu.Unlock()
}

func (n *fakeNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type spoken struct {
	text  string
	voice speech.Voice
}

type fakeSynth struct {
	mu     sync.Mutex
	voices []speech.Voice
	said   []spoken
}

func (f *fakeSynth) Speak(_ context.Context, text string, voice speech.Voice) error {
	f.mu.Lock()
	f.said = append(f.said, spoken{text: text, voice: voice})
	f.mu.Unlock()
	return nil
}

func (f *fakeSynth) Voices(context.Context) ([]speech.Voice, error) {
	return f.voices, nil
}

func (f *fakeSynth) Said() []spoken {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]spoken(nil), f.said...)
}

// fakeRecognizer publishes a scripted transcript when started.
type fakeRecognizer struct {
	speech.Transcripts
	mu      sync.Mutex
	lang    string
	started int
	script  []string
}

func (r *fakeRecognizer) SetLanguage(code string) {
	r.mu.Lock()
	r.lang = code
	r.mu.Unlock()
}

func (r *fakeRecognizer) Language() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lang
}

func (r *fakeRecognizer) StartListening(context.Context) error {
	r.mu.Lock()
	r.started++
	r.mu.Unlock()
	for _, part := range r.script {
		r.Publish(part)
	}
	return nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default() error = %v", err)
	}
	return cat
}

func newTestSession(t *testing.T, tr *fakeTranslator, opts ...Option) (*Session, *fakeClock) {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	s, err := New(Config{}, testCatalog(t), tr, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	clock := &fakeClock{}
	s.afterFunc = clock.AfterFunc
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}
