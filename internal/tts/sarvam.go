package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

const (
	sarvamVoice  = "female"
	sarvamFormat = "mp3"

	// maxErrorBody bounds how much of a failed response ends up in logs.
	maxErrorBody = 2048
)

// SarvamConfig holds configuration for the Sarvam TTS backend.
type SarvamConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.sarvam.ai"
}

// Sarvam synthesizes speech using the Sarvam text-to-speech API, which
// returns base64-encoded audio inside a JSON document.
type Sarvam struct {
	cfg        SarvamConfig
	httpClient *http.Client
}

// NewSarvam creates a Sarvam provider with sensible defaults applied.
func NewSarvam(cfg SarvamConfig) *Sarvam {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sarvam.ai"
	}
	return &Sarvam{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (s *Sarvam) Name() string { return "sarvam" }

type sarvamRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice"`
	Format   string `json:"format"`
}

// Synthesize sends the text to Sarvam and returns the decoded MP3 bytes of
// the first audio in the response.
func (s *Sarvam) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	data, err := json.Marshal(sarvamRequest{
		Text:     req.Text,
		Language: req.Locale,
		Voice:    sarvamVoice,
		Format:   sarvamFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.cfg.BaseURL+"/text-to-speech", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-subscription-key", s.cfg.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sarvam request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("sarvam failed (status %d): %s", resp.StatusCode, string(respBody))
	}

	// A 2xx whose body carries no readable audios array counts as no audio,
	// not as a failed call.
	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.WarnContext(ctx, "sarvam response unreadable", "error", err)
		return nil, ErrNoAudio
	}
	slog.InfoContext(ctx, "sarvam response received", "keys", responseKeys(body))

	var audios []string
	if raw, ok := body["audios"]; ok {
		if err := json.Unmarshal(raw, &audios); err != nil {
			slog.WarnContext(ctx, "sarvam audios field unreadable", "error", err)
			return nil, ErrNoAudio
		}
	}
	if len(audios) == 0 || audios[0] == "" {
		return nil, ErrNoAudio
	}

	audio, err := decodeBase64(audios[0])
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}

// decodeBase64 accepts padded or unpadded input in either the standard or
// the URL-safe alphabet.
func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	for _, enc := range []*base64.Encoding{base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, rerr := enc.DecodeString(s); rerr == nil {
			return b, nil
		}
	}
	return nil, err
}

func responseKeys(body map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
