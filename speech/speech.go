package speech

import (
	"context"

	"golang.org/x/text/language"
)

// Voice is a synthesizer voice. ID is what the engine accepts; Language is
// a BCP 47 tag.
type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// Tag parses Language, returning language.Und when it does not parse.
func (v Voice) Tag() language.Tag {
	t, err := language.Parse(v.Language)
	if err != nil {
		return language.Und
	}
	return t
}

// Recognizer turns captured audio into a live transcript.
type Recognizer interface {
	// StartListening begins capturing and returns without waiting for the
	// transcript, which arrives through Subscribe listeners.
	StartListening(ctx context.Context) error
	// Subscribe registers fn for transcript updates. Each update carries the
	// whole transcript so far.
	Subscribe(fn func(transcript string)) (unsubscribe func())
}

// LanguageSetter is implemented by recognizers that can be told which
// language to expect.
type LanguageSetter interface {
	SetLanguage(code string)
}

// Synthesizer speaks text aloud.
type Synthesizer interface {
	Speak(ctx context.Context, text string, voice Voice) error
	Voices(ctx context.Context) ([]Voice, error)
}
