package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nikhilbhutani/ttsrelay/internal/storage"
	"github.com/nikhilbhutani/ttsrelay/internal/tts"
)

// Request is the body accepted by POST /api/tts.
type Request struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Result points at the stored artifact.
type Result struct {
	AudioURL string `json:"audioUrl"`
	FileName string `json:"-"`
}

type Service struct {
	provider tts.Provider
	store    storage.Storage
	now      func() time.Time
}

func NewService(provider tts.Provider, store storage.Storage) *Service {
	return &Service{
		provider: provider,
		store:    store,
		now:      time.Now,
	}
}

// Generate validates the request, synthesizes it with the provider and
// stores the audio as {language}_{unix millis}.mp3. Two requests for the
// same language finishing in the same millisecond write the same file.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" || req.Language == "" {
		return nil, ErrInvalidInput
	}

	locale, ok := tts.Locale(req.Language)
	if !ok {
		return nil, ErrUnsupportedLanguage
	}

	res, err := s.provider.Synthesize(ctx, tts.SynthesisRequest{Text: text, Locale: locale})
	if errors.Is(err, tts.ErrNoAudio) {
		return nil, ErrNoAudioReceived
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSynthesisFailed, s.provider.Name(), err)
	}
	if res == nil || len(res.Audio) == 0 {
		return nil, ErrNoAudioReceived
	}

	name := fmt.Sprintf("%s_%d.mp3", req.Language, s.now().UnixMilli())
	if err := s.store.Save(ctx, name, res.Audio); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}

	slog.InfoContext(ctx, "speech generated",
		"provider", s.provider.Name(),
		"language", req.Language,
		"file", name,
		"bytes", len(res.Audio),
	)

	return &Result{AudioURL: s.store.PublicURL(name), FileName: name}, nil
}
