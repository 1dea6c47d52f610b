package tts

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI TTS backend.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // default: the SDK's "https://api.openai.com/v1"
	Model   string // default: "tts-1"
	Voice   string // default: "alloy"
}

// OpenAI synthesizes speech using OpenAI's speech endpoint. The model detects
// the language from the text, so the requested locale is not sent.
type OpenAI struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

// NewOpenAI creates an OpenAI provider with sensible defaults applied.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = string(openai.TTSModel1)
	}
	if cfg.Voice == "" {
		cfg.Voice = string(openai.VoiceAlloy)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.SpeechModel(cfg.Model),
		voice:  openai.SpeechVoice(cfg.Voice),
	}
}

func (o *OpenAI) Name() string { return "openai-tts" }

// Synthesize converts text to audio and returns the audio bytes as MP3.
func (o *OpenAI) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          o.model,
		Input:          req.Text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}

	return &SynthesisResult{
		Audio:       audio,
		ContentType: "audio/mpeg",
	}, nil
}
