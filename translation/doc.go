// Package translation defines the translation backend contract.
//
// Backends implement Backend (a provider.RequestResponse) and are wrapped by
// middleware before being handed to NewClient:
//
//	backend := provider.Chain(
//	    provider.WithLogging[translation.Request, *translation.Result](log),
//	    provider.WithTracing[translation.Request, *translation.Result]("polyglot"),
//	)(microsoft.New(cfg))
//	client := translation.NewClient(backend)
package translation
