package transcription

import (
	"context"

	"github.com/kbukum/polyglot/provider"
)

// Provider is implemented by speech-to-text backends.
type Provider interface {
	provider.Provider

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}
