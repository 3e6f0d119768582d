package speech

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/polyglot/errors"
)

const espeakSample = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 2  en-gb           --/M      English_(Great_Britain) gmw/en           (en 2)
 5  en-us           --/M      English_(America)  gmw/en-US            (en 3)
 5  hi              --/M      Hindi              inc/hi
`

func TestParseEspeakVoices(t *testing.T) {
	voices := ParseEspeakVoices([]byte(espeakSample))
	if len(voices) != 4 {
		t.Fatalf("voices = %d, want 4", len(voices))
	}
	if voices[1].ID != "en-gb" || voices[1].Name != "English (Great Britain)" {
		t.Errorf("voices[1] = %+v", voices[1])
	}
	if Bind("hi", voices).Voice.ID != "hi" {
		t.Error("hi should bind")
	}
}

func TestCommandSynthesizer_Speak(t *testing.T) {
	out := filepath.Join(t.TempDir(), "spoken.txt")
	s := NewCommandSynthesizer(SynthesizerConfig{
		Binary: "sh",
		Args:   []string{"-c", `printf '%s:%s' "$1" "$2" > ` + out, "sh", PlaceholderVoice, PlaceholderText},
		Voices: []Voice{{ID: "hi", Name: "Hindi", Language: "hi"}},
	}, nil)

	if err := s.Speak(context.Background(), "नमस्ते", Voice{ID: "hi"}); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi:नमस्ते" {
		t.Errorf("spoken = %q", got)
	}

	voices, err := s.Voices(context.Background())
	if err != nil || len(voices) != 1 {
		t.Errorf("Voices() = %v, %v", voices, err)
	}
}

func TestCommandSynthesizer_ListsVoicesOnce(t *testing.T) {
	dir := t.TempDir()
	counter := filepath.Join(dir, "calls")
	sample := filepath.Join(dir, "voices.txt")
	if err := os.WriteFile(sample, []byte(espeakSample), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewCommandSynthesizer(SynthesizerConfig{
		Binary:     "sh",
		VoicesArgs: []string{"-c", "echo x >> " + counter + "; cat " + sample},
	}, nil)

	for i := 0; i < 2; i++ {
		voices, err := s.Voices(context.Background())
		if err != nil || len(voices) != 4 {
			t.Fatalf("Voices() = %d, %v", len(voices), err)
		}
	}
	calls, _ := os.ReadFile(counter)
	if n := strings.Count(string(calls), "x"); n != 1 {
		t.Errorf("voice listing ran %d times, want 1", n)
	}
}

func TestCommandSynthesizer_Failures(t *testing.T) {
	missing := NewCommandSynthesizer(SynthesizerConfig{Binary: "polyglot-no-such-tts"}, nil)
	if err := missing.Speak(context.Background(), "x", Voice{}); !errors.HasCode(err, errors.ErrCodeSpeechUnavailable) {
		t.Errorf("missing binary: %v", err)
	}
	if _, err := missing.Voices(context.Background()); !errors.HasCode(err, errors.ErrCodeSpeechUnavailable) {
		t.Errorf("missing binary voices: %v", err)
	}

	failing := NewCommandSynthesizer(SynthesizerConfig{Binary: "sh", Args: []string{"-c", "exit 3"}}, nil)
	if err := failing.Speak(context.Background(), "x", Voice{}); !errors.HasCode(err, errors.ErrCodeExternalService) {
		t.Errorf("failing command: %v", err)
	}
	if err := failing.Speak(context.Background(), "   ", Voice{}); err != nil {
		t.Errorf("blank text should be a no-op, got %v", err)
	}
}

func TestExpandArgs(t *testing.T) {
	got := expandArgs([]string{"-v", "{voice}", "say {text}"}, map[string]string{PlaceholderVoice: "en", PlaceholderText: "hi"})
	if strings.Join(got, " ") != "-v en say hi" {
		t.Errorf("expandArgs = %v", got)
	}
}
