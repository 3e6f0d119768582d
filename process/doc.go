// Package process runs local binaries (speech engines, audio capture) with
// context cancellation that terminates the whole process group.
//
// Run is the primitive. Adapter exposes it as a provider.RequestResponse so
// it can sit behind provider middleware and provider.Adapt.
package process
