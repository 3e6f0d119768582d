package speech

import (
	"strings"

	"golang.org/x/text/language"
)

// VoiceBinding is the voice chosen for a language. A nil Voice means the
// language cannot be spoken.
type VoiceBinding struct {
	ForLanguage string
	Voice       *Voice
}

// Available reports whether a voice is bound.
func (b VoiceBinding) Available() bool { return b.Voice != nil }

// Bind picks the best voice for code. A voice whose tag equals code wins;
// otherwise one sharing base language and script, otherwise one sharing
// the base language. Earlier voices win ties.
func Bind(code string, voices []Voice) VoiceBinding {
	b := VoiceBinding{ForLanguage: code}
	want, err := language.Parse(code)
	if err != nil || len(voices) == 0 {
		return b
	}
	wantBase, _ := want.Base()
	wantScript, _ := want.Script()

	best, bestScore := -1, 0
	for i, v := range voices {
		score := 0
		if strings.EqualFold(v.Language, code) {
			score = 3
		} else if tag := v.Tag(); tag != language.Und {
			base, _ := tag.Base()
			if base == wantBase {
				score = 1
				if script, _ := tag.Script(); script == wantScript {
					score = 2
				}
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 {
		v := voices[best]
		b.Voice = &v
	}
	return b
}

// Bindings holds the voice bindings for both sides of a language pair.
type Bindings struct {
	Source VoiceBinding
	Target VoiceBinding
}

// BindPair computes Bindings for a source and target language.
func BindPair(source, target string, voices []Voice) Bindings {
	return Bindings{Source: Bind(source, voices), Target: Bind(target, voices)}
}
