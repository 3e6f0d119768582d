// Package speech connects the session to local speech engines.
//
// Synthesizer speaks text with a Voice; CommandSynthesizer drives a TTS
// binary such as espeak-ng. Recognizer produces a live transcript;
// CaptureRecognizer records a clip with a capture binary and transcribes it
// through a transcription.Provider, publishing the transcript as it grows.
//
// Bind chooses a voice for a language code by BCP 47 matching.
package speech
