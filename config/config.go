package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fake-news-detector/models"
)

type Config struct {
	Port string

	ClassifierURL     string
	ClassifierURLs    map[models.ModelID]string
	ClassifierTimeout time.Duration
	DefaultModel      models.ModelID
	Offline           bool

	RedisURL string
	CacheTTL time.Duration
	DbURL    string

	AdminToken     string
	SessionIdleTTL time.Duration

	TelegramToken string
	WebhookURL    string
	WebhookPort   string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		ClassifierURL:  getEnvOrDefault("CLASSIFIER_URL", "http://127.0.0.1:8000/predict"),
		ClassifierURLs: map[models.ModelID]string{},
		Offline:        os.Getenv("OFFLINE") == "true",
		RedisURL:       os.Getenv("REDIS_URL"),
		DbURL:          os.Getenv("DB_URL"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		WebhookURL:     os.Getenv("WEBHOOK_URL"),
		WebhookPort:    getEnvOrDefault("WEBHOOK_PORT", "8443"),
	}

	for _, id := range models.KnownModels() {
		if u := os.Getenv("CLASSIFIER_URL_" + strings.ToUpper(string(id))); u != "" {
			cfg.ClassifierURLs[id] = u
		}
	}

	var err error
	if cfg.DefaultModel, err = models.ParseModelID(getEnvOrDefault("DEFAULT_MODEL", string(models.DefaultModel))); err != nil {
		return nil, fmt.Errorf("DEFAULT_MODEL: %w", err)
	}
	if cfg.ClassifierTimeout, err = getDuration("CLASSIFIER_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getDuration("SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}
