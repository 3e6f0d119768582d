package translation

import (
	"context"

	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/provider"
)

// Request is one text to translate.
type Request struct {
	Text string `json:"text"`
	// Source is optional; empty lets the backend detect it.
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
}

// Result is a translated text.
type Result struct {
	Text   string `json:"text"`
	Target string `json:"target"`
	// DetectedLanguage is set when the backend reports one.
	DetectedLanguage string `json:"detected_language,omitempty"`
}

// Backend is a translation backend as a provider, so it can be wrapped by
// provider middleware.
type Backend = provider.RequestResponse[Request, *Result]

// Provider is the narrow interface the session consumes. Failures are
// NETWORK_ERROR or MALFORMED_RESPONSE AppErrors.
type Provider interface {
	provider.Provider
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Client adapts a Backend to Provider.
type Client struct {
	backend Backend
}

var _ Provider = (*Client)(nil)

// NewClient wraps backend, typically after provider.Chain.
func NewClient(backend Backend) *Client {
	return &Client{backend: backend}
}

// Name returns the backend name.
func (c *Client) Name() string { return c.backend.Name() }

// IsAvailable delegates to the backend.
func (c *Client) IsAvailable(ctx context.Context) bool { return c.backend.IsAvailable(ctx) }

// Translate validates req and runs it through the backend.
func (c *Client) Translate(ctx context.Context, req Request) (*Result, error) {
	if req.Text == "" {
		return nil, errors.InvalidInput("text", "text is empty")
	}
	if req.Target == "" {
		return nil, errors.InvalidInput("target", "target language is empty")
	}
	return c.backend.Execute(ctx, req)
}
