package speech

// Config groups the speech engines. A disabled side is left unconfigured
// and its session actions report SPEECH_UNAVAILABLE or stay disabled.
type Config struct {
	SynthesizerEnabled bool              `yaml:"synthesizer_enabled" mapstructure:"synthesizer_enabled"`
	Synthesizer        SynthesizerConfig `yaml:"synthesizer" mapstructure:"synthesizer"`
	RecognizerEnabled  bool              `yaml:"recognizer_enabled" mapstructure:"recognizer_enabled"`
	Recognizer         RecognizerConfig  `yaml:"recognizer" mapstructure:"recognizer"`
}

// ApplyDefaults fills in both engine sections.
func (c *Config) ApplyDefaults() {
	c.Synthesizer.ApplyDefaults()
	c.Recognizer.ApplyDefaults()
}
