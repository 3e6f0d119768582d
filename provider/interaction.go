package provider

import "context"

// RequestResponse is a provider that takes one input and returns one output:
// a translate call, a transcription upload, a synthesizer subprocess.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Func makes a RequestResponse out of fn. A nil available means always
// available.
func Func[I, O any](name string, available func(context.Context) bool, fn Next[I, O]) RequestResponse[I, O] {
	return &funcRR[I, O]{name: name, available: available, fn: fn}
}

type funcRR[I, O any] struct {
	name      string
	available func(context.Context) bool
	fn        Next[I, O]
}

func (f *funcRR[I, O]) Name() string { return f.name }

func (f *funcRR[I, O]) IsAvailable(ctx context.Context) bool {
	return f.available == nil || f.available(ctx)
}

func (f *funcRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return f.fn(ctx, input)
}

// Adapt exposes inner, which speaks [BI, BO], as a provider of [I, O].
// mapIn runs before the call and mapOut after a successful one; an error
// from either ends the call.
func Adapt[I, O, BI, BO any](
	inner RequestResponse[BI, BO],
	name string,
	mapIn func(ctx context.Context, input I) (BI, error),
	mapOut func(output BO) (O, error),
) RequestResponse[I, O] {
	return Func[I, O](name, inner.IsAvailable, func(ctx context.Context, input I) (O, error) {
		var zero O
		in, err := mapIn(ctx, input)
		if err != nil {
			return zero, err
		}
		out, err := inner.Execute(ctx, in)
		if err != nil {
			return zero, err
		}
		return mapOut(out)
	})
}
