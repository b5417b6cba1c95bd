package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/park285/draughts-server/internal/draughts"
	yaml "gopkg.in/yaml.v3"
)

type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Console bool   `yaml:"console"`
	ToFile  bool   `yaml:"to_file"`
	File    string `yaml:"file"`
	Caller  bool   `yaml:"caller"`
}

type AppConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	RedisURL string `yaml:"redis_url"`

	SessionTTLSec   int      `yaml:"session_ttl_sec"`
	MaxSessions     int      `yaml:"max_sessions"`
	PromotionRule   string   `yaml:"promotion_rule"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	MessagesDir     string   `yaml:"messages_dir"`
	PingIntervalSec int      `yaml:"ping_interval_sec"`

	Log LogConfig `yaml:"log"`
}

func defaults() *AppConfig {
	return &AppConfig{
		ListenAddr:      ":8080",
		SessionTTLSec:   3600,
		MaxSessions:     1000,
		PromotionRule:   draughts.CrownAfterMove.String(),
		PingIntervalSec: 15,
		Log: LogConfig{
			Level:   "info",
			Format:  "legacy",
			Console: true,
			File:    "logs/draughts.log",
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// DRAUGHTS_CONFIG (if any) and then environment variables.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("DRAUGHTS_CONFIG")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *AppConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (cfg *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SessionTTLSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("MAX_SESSIONS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSessions = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PROMOTION_RULE")); v != "" {
		cfg.PromotionRule = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		cfg.AllowedOrigins = nil
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, s)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("MESSAGES_DIR")); v != "" {
		cfg.MessagesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PING_INTERVAL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PingIntervalSec = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if b, ok := envBool("LOG_TO_CONSOLE"); ok {
		cfg.Log.Console = b
	}
	if b, ok := envBool("LOG_TO_FILE"); ok {
		cfg.Log.ToFile = b
	}
	if b, ok := envBool("LOG_CALLER"); ok {
		cfg.Log.Caller = b
	}
}

func envBool(key string) (bool, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (cfg *AppConfig) Validate() error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("LISTEN_ADDR is required")
	}
	if cfg.SessionTTLSec <= 0 {
		return errors.New("session TTL must be greater than 0")
	}
	if cfg.MaxSessions <= 0 {
		return errors.New("max sessions must be greater than 0")
	}
	if cfg.PingIntervalSec <= 0 {
		return errors.New("ping interval must be greater than 0")
	}
	if _, err := draughts.ParsePromotionRule(cfg.PromotionRule); err != nil {
		return err
	}
	return nil
}

// Rule returns the parsed promotion rule. Validate has already checked it.
func (cfg *AppConfig) Rule() draughts.PromotionRule {
	r, _ := draughts.ParsePromotionRule(cfg.PromotionRule)
	return r
}
