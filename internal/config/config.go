package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/nightsky-folio/nightsky/internal/sky"
)

// DefaultPath is where Load looks for the YAML file.
const DefaultPath = "nightsky.yaml"

// Config holds all configuration for nightsky.
// Values come from nightsky.yaml when present; environment variables
// always override YAML values.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Scroll  ScrollConfig  `yaml:"scroll"`
	Chat    ChatConfig    `yaml:"chat"`
	Contact ContactConfig `yaml:"contact"`
	Log     LogConfig     `yaml:"log"`

	// ContentPath points at a content YAML document. Empty uses the
	// embedded default.
	ContentPath string `yaml:"content_path" env:"NIGHTSKY_CONTENT" env-default:""`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title" env:"NIGHTSKY_TITLE" env-default:"nightsky"`
	Width  int    `yaml:"width" env:"NIGHTSKY_WIDTH" env-default:"1280"`
	Height int    `yaml:"height" env:"NIGHTSKY_HEIGHT" env-default:"800"`
	// Daybreak starts the page in the day theme.
	Daybreak bool `yaml:"daybreak" env:"NIGHTSKY_DAYBREAK" env-default:"false"`
}

// SceneConfig controls the night-sky population.
type SceneConfig struct {
	Seed          int64         `yaml:"seed" env:"NIGHTSKY_SEED" env-default:"0"` // 0 picks one from the clock
	Stars         int           `yaml:"stars" env:"NIGHTSKY_STARS" env-default:"220"`
	Planets       int           `yaml:"planets" env:"NIGHTSKY_PLANETS" env-default:"4"`
	Galaxies      int           `yaml:"galaxies" env:"NIGHTSKY_GALAXIES" env-default:"2"`
	Damping       float64       `yaml:"damping" env:"NIGHTSKY_DAMPING" env-default:"0.994"`
	CometInterval time.Duration `yaml:"comet_interval" env:"NIGHTSKY_COMET_INTERVAL" env-default:"2200ms"`
}

// ScrollConfig sets auto-scroll speeds in pixels per second.
type ScrollConfig struct {
	DaySpeed   float64 `yaml:"day_speed" env:"NIGHTSKY_SCROLL_DAY" env-default:"25"`
	NightSpeed float64 `yaml:"night_speed" env:"NIGHTSKY_SCROLL_NIGHT" env-default:"40"`
}

// ChatConfig paces the FAQ chat.
type ChatConfig struct {
	ReplyDelay time.Duration `yaml:"reply_delay" env:"NIGHTSKY_CHAT_DELAY" env-default:"600ms"`
}

// ContactConfig points the contact form at its form backend.
type ContactConfig struct {
	Endpoint      string        `yaml:"endpoint" env:"NIGHTSKY_CONTACT_ENDPOINT" env-default:""`
	FallbackEmail string        `yaml:"fallback_email" env:"NIGHTSKY_CONTACT_EMAIL" env-default:"bahatibrianp@gmail.com"`
	Timeout       time.Duration `yaml:"timeout" env:"NIGHTSKY_CONTACT_TIMEOUT" env-default:"10s"`
	// PerMinute caps submissions; Burst allows a few quick retries.
	PerMinute float64 `yaml:"per_minute" env:"NIGHTSKY_CONTACT_PER_MINUTE" env-default:"2"`
	Burst     int     `yaml:"burst" env:"NIGHTSKY_CONTACT_BURST" env-default:"2"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string `yaml:"level" env:"NIGHTSKY_LOG_LEVEL" env-default:"info"`
	Development bool   `yaml:"development" env:"NIGHTSKY_LOG_DEV" env-default:"false"`
}

// Load reads path (DefaultPath when empty) with environment overrides.
// A missing file is not an error: configuration then comes from the
// environment and defaults alone.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat %s: %w", path, statErr)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Scene.Stars < 0 || c.Scene.Planets < 0 || c.Scene.Galaxies < 0 {
		return errors.New("scene counts must not be negative")
	}
	if c.Scene.Damping <= 0 || c.Scene.Damping > 1 {
		return fmt.Errorf("scene damping must be in (0, 1], got %v", c.Scene.Damping)
	}
	if c.Scene.CometInterval <= 0 {
		return fmt.Errorf("comet interval must be positive, got %s", c.Scene.CometInterval)
	}
	if c.Contact.PerMinute <= 0 || c.Contact.Burst <= 0 {
		return errors.New("contact rate limit must be positive")
	}
	return nil
}

// SkyConfig converts the scene section into the simulator's config.
// seed is used when no seed is configured.
func (c *Config) SkyConfig(seed int64) sky.Config {
	if c.Scene.Seed != 0 {
		seed = c.Scene.Seed
	}
	return sky.Config{
		Seed:     seed,
		Stars:    c.Scene.Stars,
		Planets:  c.Scene.Planets,
		Galaxies: c.Scene.Galaxies,
		Damping:  c.Scene.Damping,
	}
}
