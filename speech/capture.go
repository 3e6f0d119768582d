package speech

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/observability"
	"github.com/kbukum/polyglot/process"
	"github.com/kbukum/polyglot/provider"
	"github.com/kbukum/polyglot/transcription"
)

// RecognizerConfig configures a CaptureRecognizer. The defaults record
// mono 16 kHz WAV with arecord.
type RecognizerConfig struct {
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Args is the capture invocation; {output} and {seconds} are expanded.
	Args []string `yaml:"args" mapstructure:"args"`
	// Duration is how long one listen records.
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`
	// Language is the initial expected language.
	Language string `yaml:"language" mapstructure:"language"`
}

// ApplyDefaults fills in zero-value fields.
func (c *RecognizerConfig) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = "arecord"
	}
	if len(c.Args) == 0 {
		c.Args = []string{"-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-d", PlaceholderSecs, PlaceholderOutput}
	}
	if c.Duration <= 0 {
		c.Duration = 5 * time.Second
	}
}

// CaptureRecognizer records a clip with a capture command, transcribes it,
// and publishes the transcript segment by segment.
type CaptureRecognizer struct {
	Transcripts

	cfg     RecognizerConfig
	runner  provider.RequestResponse[process.Command, *process.Result]
	stt     transcription.Provider
	log     *logger.Logger
	onError func(error)

	mu        sync.Mutex
	listening bool
	language  string
	wg        sync.WaitGroup
}

var (
	_ Recognizer     = (*CaptureRecognizer)(nil)
	_ LanguageSetter = (*CaptureRecognizer)(nil)
)

// RecognizerOption configures a CaptureRecognizer.
type RecognizerOption func(*CaptureRecognizer)

// WithErrorHandler receives failures from background listens.
func WithErrorHandler(fn func(error)) RecognizerOption {
	return func(r *CaptureRecognizer) { r.onError = fn }
}

// WithRecognizerLogger sets the logger.
func WithRecognizerLogger(log *logger.Logger) RecognizerOption {
	return func(r *CaptureRecognizer) { r.log = log.WithComponent("recognizer") }
}

// NewCaptureRecognizer creates a recognizer transcribing through stt.
func NewCaptureRecognizer(cfg RecognizerConfig, stt transcription.Provider, opts ...RecognizerOption) *CaptureRecognizer {
	cfg.ApplyDefaults()
	r := &CaptureRecognizer{
		cfg:      cfg,
		runner:   process.NewAdapter(process.Config{Name: cfg.Binary, Binary: cfg.Binary, Timeout: cfg.Duration + 10*time.Second}),
		stt:      stt,
		log:      logger.Nop(),
		language: cfg.Language,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetLanguage sets the language passed to the transcription backend.
func (r *CaptureRecognizer) SetLanguage(code string) {
	r.mu.Lock()
	r.language = code
	r.mu.Unlock()
}

// Listening reports whether a capture is in progress.
func (r *CaptureRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// StartListening starts one capture in the background. A call while a
// capture is running is a no-op.
func (r *CaptureRecognizer) StartListening(ctx context.Context) error {
	if r.stt == nil {
		return errors.SpeechUnavailable("speech recognition")
	}
	if !r.runner.IsAvailable(ctx) {
		return errors.SpeechUnavailable("audio capture")
	}

	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return nil
	}
	r.listening = true
	lang := r.language
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			r.mu.Lock()
			r.listening = false
			r.mu.Unlock()
		}()
		if err := r.listen(ctx, lang); err != nil {
			r.log.Error("listen failed", logger.ErrorFields("listen", err))
			if r.onError != nil {
				r.onError(err)
			}
		}
	}()
	return nil
}

// Wait blocks until background listens finish.
func (r *CaptureRecognizer) Wait() {
	r.wg.Wait()
}

func (r *CaptureRecognizer) listen(ctx context.Context, lang string) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanListen)
	defer span.End()

	f, err := os.CreateTemp("", "polyglot-*.wav")
	if err != nil {
		return errors.Internal(err)
	}
	path := f.Name()
	_ = f.Close()
	defer os.Remove(path)

	secs := strconv.Itoa(int((r.cfg.Duration + time.Second - 1) / time.Second))
	cmd := process.Command{
		Binary: r.cfg.Binary,
		Args:   expandArgs(r.cfg.Args, map[string]string{PlaceholderOutput: path, PlaceholderSecs: secs}),
	}
	if _, err := r.runner.Execute(ctx, cmd); err != nil {
		observability.SetSpanError(ctx, err)
		return errors.ExternalServiceError(r.cfg.Binary, err)
	}

	resp, err := r.stt.Transcribe(ctx, transcription.Request{AudioPath: path, Language: lang})
	if err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}

	parts := resp.Progressive()
	observability.SetSpanAttribute(ctx, "transcript.segments", len(parts))
	for _, text := range parts {
		if ctx.Err() != nil {
			return nil
		}
		r.Publish(text)
	}
	return nil
}
