package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nikhilbhutani/ttsrelay/internal/speech"
	"github.com/nikhilbhutani/ttsrelay/internal/tts"
)

const maxRequestBody = 1 << 20

type SpeechHandler struct {
	svc *speech.Service
}

func NewSpeechHandler(svc *speech.Service) *SpeechHandler {
	return &SpeechHandler{svc: svc}
}

// Generate synthesizes the posted text and responds with the artifact URL.
func (h *SpeechHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req speech.Request
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Undecodable bodies are reported like missing fields. The
		// Content-Type header is not checked.
		req = speech.Request{}
	}

	res, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "tts error", "error", err)
		}
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Languages lists the accepted language codes.
func (h *SpeechHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"languages": tts.Languages()})
}

// classify maps a speech error to its status and public message. Causes
// stay in the logs.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, speech.ErrInvalidInput):
		return http.StatusBadRequest, "Valid text and language required"
	case errors.Is(err, speech.ErrUnsupportedLanguage):
		return http.StatusBadRequest, "Unsupported language"
	case errors.Is(err, speech.ErrNoAudioReceived):
		// Clients match on this exact text, so it names Sarvam even when
		// TTS_BACKEND=openai.
		return http.StatusInternalServerError, "No audio received from Sarvam"
	default:
		return http.StatusInternalServerError, "Failed to generate speech"
	}
}
