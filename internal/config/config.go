package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	TTS     TTSConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type TTSConfig struct {
	Backend       string // "sarvam" or "openai"
	SarvamKey     string
	SarvamBaseURL string // default: "https://api.sarvam.ai"
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
}

type StorageConfig struct {
	AudioDir string // served at /audio
}

// TTSDir is where generated artifacts are written.
func (s StorageConfig) TTSDir() string {
	return filepath.Join(s.AudioDir, "tts")
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 3000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           port,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		TTS: TTSConfig{
			Backend:       strings.ToLower(getEnv("TTS_BACKEND", "sarvam")),
			SarvamKey:     getEnv("SARVAM_API_KEY", ""),
			SarvamBaseURL: getEnv("SARVAM_BASE_URL", "https://api.sarvam.ai"),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("TTS_OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnv("TTS_OPENAI_MODEL", "tts-1"),
		},
		Storage: StorageConfig{
			AudioDir: getEnv("AUDIO_DIR", "audio"),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	switch c.TTS.Backend {
	case "sarvam":
		if c.TTS.SarvamKey == "" {
			missing = append(missing, "SARVAM_API_KEY")
		}
	case "openai":
		if c.TTS.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown TTS_BACKEND %q", c.TTS.Backend)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
