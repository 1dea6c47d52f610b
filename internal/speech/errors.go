package speech

import "errors"

// Every failure returned by Service.Generate wraps exactly one of these.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrSynthesisFailed     = errors.New("synthesis failed")
	ErrNoAudioReceived     = errors.New("no audio received")
)
