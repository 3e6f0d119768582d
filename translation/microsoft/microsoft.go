package microsoft

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/polyglot/errors"
	"github.com/kbukum/polyglot/httpclient"
	"github.com/kbukum/polyglot/provider"
	"github.com/kbukum/polyglot/translation"
	"github.com/kbukum/polyglot/util"
)

// ProviderName names this backend in logs and metrics.
const ProviderName = "microsoft"

const (
	headerKey  = "X-RapidAPI-Key"
	headerHost = "X-RapidAPI-Host"
)

var _ translation.Backend = (*Provider)(nil)
var _ provider.Closeable = (*Provider)(nil)

// Provider calls the Microsoft Translator text API through RapidAPI.
type Provider struct {
	cfg    Config
	client *httpclient.Adapter
}

// New creates a Provider. The config is defaulted and validated.
func New(cfg Config, opts ...httpclient.Option) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.HeaderKey(headerKey, cfg.APIKey),
		Headers: map[string]string{headerHost: cfg.Host},
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Close releases idle connections.
func (p *Provider) Close(ctx context.Context) error { return p.client.Close(ctx) }

type textItem struct {
	Text string `json:"Text"`
}

type translateResult struct {
	DetectedLanguage *struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage,omitempty"`
	Translations []struct {
		Text *string `json:"text"`
		To   string  `json:"to"`
	} `json:"translations"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// Execute translates req.Text into req.Target. The source is only sent
// when SendSource is set.
//
//	POST /translate?to[0]=hi&api-version=3.0&profanityAction=NoAction&textType=plain
//	[{"Text": "hello"}]
func (p *Provider) Execute(ctx context.Context, req translation.Request) (*translation.Result, error) {
	opts := []httpclient.RequestOption{
		httpclient.WithQueryParam("to[0]", req.Target),
		httpclient.WithQueryParam("api-version", p.cfg.APIVersion),
		httpclient.WithQueryParam("profanityAction", p.cfg.ProfanityAction),
		httpclient.WithQueryParam("textType", p.cfg.TextType),
	}
	if p.cfg.SendSource && req.Source != "" {
		opts = append(opts, httpclient.WithQueryParam("from", req.Source))
	}

	resp, err := httpclient.Post[[]translateResult](ctx, p.client, "/translate", []textItem{{Text: req.Text}}, opts...)
	if err != nil {
		return nil, classify(err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Translations) == 0 {
		return nil, errors.MalformedResponse(ProviderName, "response has no translations")
	}
	first := resp.Data[0]
	if first.Translations[0].Text == nil {
		return nil, errors.MalformedResponse(ProviderName, "translation has no text")
	}
	out := &translation.Result{Text: *first.Translations[0].Text, Target: req.Target}
	if first.Translations[0].To != "" {
		out.Target = first.Translations[0].To
	}
	if first.DetectedLanguage != nil {
		out.DetectedLanguage = first.DetectedLanguage.Language
	}
	return out, nil
}

// classify maps transport failures to NETWORK_ERROR and everything the
// server said that was not a translation to MALFORMED_RESPONSE.
func classify(err error) error {
	if he, ok := httpclient.AsError(err); ok {
		if he.IsTransport() {
			return errors.NetworkError(ProviderName, err)
		}
		appErr := errors.MalformedResponse(ProviderName, fmt.Sprintf("HTTP %d", he.StatusCode)).
			WithCause(err).
			WithDetail("status", he.StatusCode)
		var body apiError
		if json.Unmarshal(he.Body, &body) == nil {
			if msg := util.Coalesce(body.Error.Message, body.Message); msg != "" {
				appErr = appErr.WithDetail("message", msg)
			}
		}
		return appErr
	}
	var de *httpclient.DecodeError
	if stderrors.As(err, &de) {
		return errors.MalformedResponse(ProviderName, "response is not a translation array").WithCause(err)
	}
	return errors.NetworkError(ProviderName, err)
}
