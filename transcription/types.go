package transcription

import "strings"

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio ("en"). Empty lets the
	// backend detect it.
	Language string `json:"language,omitempty"`
	// Model overrides the backend's configured model.
	Model string `json:"model,omitempty"`
}

// Response holds the result of a transcription call.
type Response struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or requested language.
	Language string `json:"language,omitempty"`
}

// Segment is a time-aligned portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Progressive returns the transcript as it grows segment by segment: the
// i-th entry is the text of segments 0..i joined. A response without
// segments yields just its full text.
func (r *Response) Progressive() []string {
	if len(r.Segments) == 0 {
		if t := strings.TrimSpace(r.Text); t != "" {
			return []string{t}
		}
		return nil
	}
	out := make([]string, 0, len(r.Segments))
	var b strings.Builder
	for _, seg := range r.Segments {
		t := strings.TrimSpace(seg.Text)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
		out = append(out, b.String())
	}
	return out
}
