package session

import (
	"fmt"
	"strings"

	"github.com/kbukum/polyglot/speech"
)

// LanguagePair is the source and target language codes of a session.
type LanguagePair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Swapped returns the pair with source and target exchanged.
func (p LanguagePair) Swapped() LanguagePair {
	return LanguagePair{Source: p.Target, Target: p.Source}
}

func (p LanguagePair) String() string {
	return p.Source + "->" + p.Target
}

// Side selects the input or output text.
type Side int

const (
	Input Side = iota
	Output
)

func (s Side) String() string {
	if s == Output {
		return "output"
	}
	return "input"
}

// ParseSide accepts "in"/"input" and "out"/"output".
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "input":
		return Input, nil
	case "out", "output":
		return Output, nil
	}
	return Input, fmt.Errorf("unknown side %q", s)
}

// State is a snapshot of a session. Version increases with every change.
type State struct {
	ID            string          `json:"id"`
	Pair          LanguagePair    `json:"pair"`
	InputText     string          `json:"input_text"`
	OutputText    string          `json:"output_text"`
	IsTranslating bool            `json:"is_translating"`
	Voices        speech.Bindings `json:"-"`
	Version       uint64          `json:"version"`
}

// CanClear reports whether there is input to clear.
func (s State) CanClear() bool { return s.InputText != "" }

// Binding returns the voice binding of side.
func (s State) Binding(side Side) speech.VoiceBinding {
	if side == Output {
		return s.Voices.Target
	}
	return s.Voices.Source
}

// Text returns the text of side.
func (s State) Text(side Side) string {
	if side == Output {
		return s.OutputText
	}
	return s.InputText
}

// Display returns what the output area shows: loadingLabel while a
// translation is in flight, the output text otherwise.
func (s State) Display(loadingLabel string) string {
	if s.IsTranslating {
		return loadingLabel
	}
	return s.OutputText
}
