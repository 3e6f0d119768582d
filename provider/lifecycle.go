package provider

import "context"

// Closeable is implemented by providers holding resources that need
// explicit release (idle connections, child processes).
type Closeable interface {
	Close(ctx context.Context) error
}

// CloseAll closes every Closeable in ps and returns the first error.
func CloseAll(ctx context.Context, ps ...any) error {
	var first error
	for _, p := range ps {
		c, ok := p.(Closeable)
		if !ok {
			continue
		}
		if err := c.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CloseFunc adapts a function to Closeable.
type CloseFunc func(ctx context.Context) error

// Close calls f.
func (f CloseFunc) Close(ctx context.Context) error { return f(ctx) }
