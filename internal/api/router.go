package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/ttsrelay/internal/api/handlers"
	"github.com/nikhilbhutani/ttsrelay/internal/api/middleware"
	"github.com/nikhilbhutani/ttsrelay/internal/config"
	"github.com/nikhilbhutani/ttsrelay/internal/speech"
	"github.com/nikhilbhutani/ttsrelay/internal/storage"
	"github.com/nikhilbhutani/ttsrelay/internal/tts"
)

// AudioPrefix is the URL prefix the audio directory is served under.
const AudioPrefix = "/audio"

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	provider tts.Provider
	store    *storage.LocalStorage
}

func NewRouter(cfg *config.Config, provider tts.Provider, store *storage.LocalStorage) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		provider: provider,
		store:    store,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.Server.AllowedOrigins))

	health := handlers.NewHealthHandler(map[string]handlers.Checker{"audio_dir": rt.store})
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Generated artifacts
	r.Handle(AudioPrefix+"/*", handlers.Static(AudioPrefix, rt.cfg.Storage.AudioDir))

	speechH := handlers.NewSpeechHandler(speech.NewService(rt.provider, rt.store))
	r.Post("/api/tts", speechH.Generate)
	r.Get("/api/tts/languages", speechH.Languages)

	return r
}
