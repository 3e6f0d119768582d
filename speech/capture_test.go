package speech

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/transcription"
)

type fakeSTT struct {
	mu       sync.Mutex
	resp     *transcription.Response
	err      error
	gotLang  string
	gotAudio string
}

func (f *fakeSTT) Name() string                     { return "fake" }
func (f *fakeSTT) IsAvailable(context.Context) bool { return true }
func (f *fakeSTT) Transcribe(_ context.Context, req transcription.Request) (*transcription.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotLang = req.Language
	data, _ := os.ReadFile(req.AudioPath)
	f.gotAudio = string(data)
	return f.resp, f.err
}

func shCapture() RecognizerConfig {
	return RecognizerConfig{
		Binary:   "sh",
		Args:     []string{"-c", `printf 'RIFF%s' "$1" > "$2"`, "sh", PlaceholderSecs, PlaceholderOutput},
		Duration: 1500 * time.Millisecond,
	}
}

func TestCaptureRecognizer_PublishesProgressively(t *testing.T) {
	stt := &fakeSTT{resp: &transcription.Response{Segments: []transcription.Segment{{Text: "hello"}, {Text: "world"}}}}
	r := NewCaptureRecognizer(shCapture(), stt)
	r.SetLanguage("en")

	var mu sync.Mutex
	var got []string
	r.Subscribe(func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})

	if err := r.StartListening(context.Background()); err != nil {
		t.Fatalf("StartListening() error = %v", err)
	}
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "hello" || got[1] != "hello world" {
		t.Errorf("transcripts = %q", got)
	}
	if stt.gotLang != "en" || stt.gotAudio != "RIFF2" {
		t.Errorf("stt got lang=%q audio=%q", stt.gotLang, stt.gotAudio)
	}
	if r.Listening() {
		t.Error("Listening() should be false after the capture ends")
	}
}

func TestCaptureRecognizer_ReportsErrors(t *testing.T) {
	stt := &fakeSTT{err: errors.NetworkError("whisper", context.DeadlineExceeded)}
	errCh := make(chan error, 1)
	r := NewCaptureRecognizer(shCapture(), stt, WithErrorHandler(func(err error) { errCh <- err }))

	if err := r.StartListening(context.Background()); err != nil {
		t.Fatal(err)
	}
	r.Wait()
	select {
	case err := <-errCh:
		if !errors.IsNetwork(err) {
			t.Errorf("error = %v", err)
		}
	default:
		t.Fatal("error handler not called")
	}
}

func TestCaptureRecognizer_Unavailable(t *testing.T) {
	if err := NewCaptureRecognizer(shCapture(), nil).StartListening(context.Background()); !errors.HasCode(err, errors.ErrCodeSpeechUnavailable) {
		t.Errorf("nil stt: %v", err)
	}
	cfg := shCapture()
	cfg.Binary = "polyglot-no-such-recorder"
	if err := NewCaptureRecognizer(cfg, &fakeSTT{}).StartListening(context.Background()); !errors.HasCode(err, errors.ErrCodeSpeechUnavailable) {
		t.Errorf("missing binary: %v", err)
	}
}

func TestCaptureRecognizer_SecondStartIsNoop(t *testing.T) {
	stt := &fakeSTT{resp: &transcription.Response{Text: "one"}}
	cfg := shCapture()
	cfg.Args = []string{"-c", `sleep 0.2; printf x > "$1"`, "sh", PlaceholderOutput}
	r := NewCaptureRecognizer(cfg, stt)

	count := 0
	var mu sync.Mutex
	r.Subscribe(func(string) { mu.Lock(); count++; mu.Unlock() })

	_ = r.StartListening(context.Background())
	_ = r.StartListening(context.Background())
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("published %d times, want 1", count)
	}
}
