package tts

import (
	"context"
	"errors"
)

// ErrNoAudio is returned when the provider answers successfully but the
// response carries no audio payload.
var ErrNoAudio = errors.New("no audio in provider response")

// SynthesisRequest holds the parameters for text-to-speech generation.
type SynthesisRequest struct {
	Text   string
	Locale string // provider locale, e.g. "hi-IN"
}

// SynthesisResult holds the decoded audio and its content type.
type SynthesisResult struct {
	Audio       []byte
	ContentType string
}

// Provider is the interface for text-to-speech backends.
type Provider interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Name() string
}
