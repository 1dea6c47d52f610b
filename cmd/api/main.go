package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikhilbhutani/ttsrelay/internal/api"
	"github.com/nikhilbhutani/ttsrelay/internal/config"
	"github.com/nikhilbhutani/ttsrelay/internal/storage"
	"github.com/nikhilbhutani/ttsrelay/internal/tts"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// A missing key is not fatal: requests fail upstream and report
	// "Failed to generate speech" until it is set.
	if err := cfg.Validate(); err != nil {
		slog.Warn("incomplete config", "error", err)
	}

	store, err := storage.NewLocalStorage(cfg.Storage.TTSDir(), api.AudioPrefix+"/tts")
	if err != nil {
		slog.Error("failed to prepare audio directory", "dir", cfg.Storage.TTSDir(), "error", err)
		os.Exit(1)
	}

	provider, err := newProvider(cfg.TTS)
	if err != nil {
		slog.Error("failed to configure tts provider", "error", err)
		os.Exit(1)
	}
	slog.Info("tts provider configured", "provider", provider.Name())

	router := api.NewRouter(cfg, provider, store)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func newProvider(cfg config.TTSConfig) (tts.Provider, error) {
	switch cfg.Backend {
	case "sarvam":
		return tts.NewSarvam(tts.SarvamConfig{
			APIKey:  cfg.SarvamKey,
			BaseURL: cfg.SarvamBaseURL,
		}), nil
	case "openai":
		return tts.NewOpenAI(tts.OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown TTS_BACKEND %q", cfg.Backend)
	}
}
