// Load envs from .env
// Load YAML config
// Override with env vars, fall back to the keychain for secrets
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-jobfinder-automation/internal/secrets"
)

type Config struct {
	//Search
	BaseSearchURL    string  `yaml:"base_search_url"`
	SessionMarker    string  `yaml:"session_marker"`
	SessionTimeoutMs int     `yaml:"session_timeout_ms"`
	ScrollPasses     int     `yaml:"scroll_passes"`
	MinDelayMs       int     `yaml:"min_delay_ms"`
	MaxDelayMs       int     `yaml:"max_delay_ms"`
	RateLimitPerSec  float64 `yaml:"rate_limit_per_sec"`
	//Browser
	Headless    bool   `yaml:"headless"`
	CookiesPath string `yaml:"cookies_path"`
	//Paths
	CachePath string `yaml:"cache_path"`
	OutputDir string `yaml:"output_dir"`
	//Reporting (optional)
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load(path string) *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	if path == "" {
		path = "configs/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", path, err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Fall back to the OS keychain for the bot token
	if cfg.TelegramToken == "" {
		if token, err := secrets.GetTelegramToken(); err == nil {
			cfg.TelegramToken = token
		}
	}

	//Set default values if not set
	if cfg.SessionTimeoutMs <= 0 {
		cfg.SessionTimeoutMs = 10000
	}
	if cfg.ScrollPasses <= 0 {
		cfg.ScrollPasses = 3
	}
	if cfg.MinDelayMs <= 0 {
		cfg.MinDelayMs = 1200
	}
	if cfg.MaxDelayMs <= cfg.MinDelayMs {
		cfg.MaxDelayMs = cfg.MinDelayMs + 2000
	}
	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = 4
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "results"
	}

	return cfg
}
