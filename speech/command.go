package speech

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/logger"
	"github.com/kbukum/polyglot/process"
	"github.com/kbukum/polyglot/provider"
)

// Argument placeholders expanded in command templates.
const (
	PlaceholderText   = "{text}"
	PlaceholderVoice  = "{voice}"
	PlaceholderOutput = "{output}"
	PlaceholderSecs   = "{seconds}"
)

// SynthesizerConfig configures a CommandSynthesizer. The defaults drive
// espeak-ng.
type SynthesizerConfig struct {
	Binary string `yaml:"binary" mapstructure:"binary"`
	// Args is the speak invocation; {voice} and {text} are expanded.
	Args []string `yaml:"args" mapstructure:"args"`
	// VoicesArgs lists voices in espeak --voices format. Ignored when
	// Voices is set.
	VoicesArgs []string `yaml:"voices_args" mapstructure:"voices_args"`
	// Voices is a fixed voice list.
	Voices  []Voice       `yaml:"voices" mapstructure:"voices"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields.
func (c *SynthesizerConfig) ApplyDefaults() {
	if c.Binary == "" {
		c.Binary = "espeak-ng"
	}
	if len(c.Args) == 0 {
		c.Args = []string{"-v", PlaceholderVoice, PlaceholderText}
	}
	if len(c.VoicesArgs) == 0 && len(c.Voices) == 0 {
		c.VoicesArgs = []string{"--voices"}
	}
	if c.Timeout <= 0 {
		c.Timeout = time.Minute
	}
}

type speakRequest struct {
	Text  string
	Voice Voice
}

// CommandSynthesizer speaks by running a local TTS binary.
type CommandSynthesizer struct {
	cfg    SynthesizerConfig
	runner provider.RequestResponse[process.Command, *process.Result]
	speak  provider.RequestResponse[speakRequest, struct{}]
	log    *logger.Logger

	mu     sync.Mutex
	voices []Voice
}

var _ Synthesizer = (*CommandSynthesizer)(nil)

// NewCommandSynthesizer creates a synthesizer around cfg.Binary.
func NewCommandSynthesizer(cfg SynthesizerConfig, log *logger.Logger) *CommandSynthesizer {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	runner := process.NewAdapter(process.Config{Name: cfg.Binary, Binary: cfg.Binary, Timeout: cfg.Timeout})
	s := &CommandSynthesizer{cfg: cfg, runner: runner, log: log.WithComponent("synthesizer")}
	s.speak = provider.Adapt[speakRequest, struct{}, process.Command, *process.Result](
		provider.WithLogging[process.Command, *process.Result](s.log)(runner),
		"speak",
		func(_ context.Context, req speakRequest) (process.Command, error) {
			return process.Command{
				Binary: cfg.Binary,
				Args:   expandArgs(cfg.Args, map[string]string{PlaceholderText: req.Text, PlaceholderVoice: req.Voice.ID}),
			}, nil
		},
		func(*process.Result) (struct{}, error) { return struct{}{}, nil },
	)
	return s
}

// Available reports whether the binary resolves.
func (s *CommandSynthesizer) Available(ctx context.Context) bool {
	return s.runner.IsAvailable(ctx)
}

// Speak runs the speak command and waits for it to finish.
func (s *CommandSynthesizer) Speak(ctx context.Context, text string, voice Voice) error {
	if !s.runner.IsAvailable(ctx) {
		return errors.SpeechUnavailable("speech synthesis")
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if _, err := s.speak.Execute(ctx, speakRequest{Text: text, Voice: voice}); err != nil {
		return errors.ExternalServiceError(s.cfg.Binary, err)
	}
	return nil
}

// Voices returns the configured voices, or lists them from the engine once
// and caches the result.
func (s *CommandSynthesizer) Voices(ctx context.Context) ([]Voice, error) {
	if len(s.cfg.Voices) > 0 {
		return append([]Voice(nil), s.cfg.Voices...), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.voices != nil {
		return append([]Voice(nil), s.voices...), nil
	}
	if !s.runner.IsAvailable(ctx) {
		return nil, errors.SpeechUnavailable("speech synthesis")
	}

	res, err := s.runner.Execute(ctx, process.Command{Binary: s.cfg.Binary, Args: s.cfg.VoicesArgs})
	if err != nil {
		return nil, errors.ExternalServiceError(s.cfg.Binary, err)
	}
	s.voices = ParseEspeakVoices(res.Stdout)
	s.log.Debug("voices listed", logger.Fields("count", len(s.voices)))
	return append([]Voice(nil), s.voices...), nil
}

// ParseEspeakVoices reads `espeak-ng --voices` output:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US            (en 2)
func ParseEspeakVoices(out []byte) []Voice {
	voices := []Voice{}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		lang := fields[1]
		voices = append(voices, Voice{
			ID:       lang,
			Name:     strings.ReplaceAll(fields[3], "_", " "),
			Language: lang,
		})
	}
	return voices
}

func expandArgs(tmpl []string, vals map[string]string) []string {
	out := make([]string, len(tmpl))
	for i, a := range tmpl {
		for k, v := range vals {
			a = strings.ReplaceAll(a, k, v)
		}
		out[i] = a
	}
	return out
}
