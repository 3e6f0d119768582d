package httpclient

import (
	"context"

	"github.com/kbukum/polyglot/provider"
)

var (
	_ provider.RequestResponse[Request, *Response] = (*Adapter)(nil)
	_ provider.Closeable                           = (*Adapter)(nil)
)

// Name returns the configured adapter name.
func (a *Adapter) Name() string { return a.config.Name }

// IsAvailable is always true; reachability is only known per request.
func (a *Adapter) IsAvailable(context.Context) bool { return true }

// Execute is Do under the provider interface.
func (a *Adapter) Execute(ctx context.Context, req Request) (*Response, error) {
	return a.Do(ctx, req)
}

// Close drops idle keep-alive connections.
func (a *Adapter) Close(context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}
