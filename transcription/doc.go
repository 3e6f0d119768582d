// Package transcription defines the speech-to-text backend contract used by
// the capture recognizer. Backends live in subpackages (whisper).
package transcription
