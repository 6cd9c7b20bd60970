// internal/speech/speech.go

// Package speech declares the speech collaborator contracts. Transcription and
// synthesis are external services; the assistant works without either, and the
// health surface reports each one independently.
package speech

import "context"

// Transcriber converts raw audio into best-effort text. An empty transcript
// with a nil error means the audio could not be understood, which callers
// must treat as a distinct outcome rather than an empty command.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Available() bool
}

// Synthesizer renders reply text to an audio artifact and returns the opaque
// identifier under which the artifact can be fetched. A synthesis failure
// must never prevent the textual reply from being returned.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
	Available() bool
}

// NullTranscriber is the disabled default when no speech model is configured.
type NullTranscriber struct{}

func (NullTranscriber) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return "", nil
}

func (NullTranscriber) Available() bool { return false }

// NullSynthesizer is the disabled default when no synthesis engine is
// configured.
type NullSynthesizer struct{}

func (NullSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	return "", nil
}

func (NullSynthesizer) Available() bool { return false }
