// Package provider wraps backends (the translate API, the transcription
// sidecar, local speech binaries) behind one small generic interface so the
// same logging, metrics and tracing can sit in front of each of them.
//
// RequestResponse[I, O] is one input to one output. Func turns a plain
// function into one; Adapt maps a backend's types onto a domain's.
//
// Middleware wraps a RequestResponse and Chain composes them, first
// outermost:
//
//	translator := provider.Chain(
//	    provider.WithTracing[translation.Request, *translation.Result]("polyglot"),
//	    provider.WithMetrics[translation.Request, *translation.Result](metrics),
//	    provider.WithLogging[translation.Request, *translation.Result](log),
//	)(backend)
//
// Around is the building block for custom middleware.
package provider
