package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

var (
	errInvalidPort        = errors.New("config: invalid PORT number")
	errTimeoutOutOfRange  = errors.New("config: VIEW_COUNTER_TIMEOUT_SECONDS must be 1-300")
	errInvalidLocale      = errors.New("config: VIEW_COUNTER_LOCALE is not a valid BCP 47 tag")
	errInvalidLogFormat   = errors.New("config: LOG_FORMAT must be json or text")
	errInvalidBlockPolicy = errors.New("config: VIEW_COUNTER_BLOCK_PRIVATE must be a boolean")
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// APIBase is the globally configured counting API base. Script-tag and
	// meta-tag bases come from the host page itself.
	APIBase    string
	PageOrigin string
	Locale     string

	TimeoutSeconds int
	BlockPrivate   bool

	blockPrivateRaw string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "ERROR"),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		APIBase:         os.Getenv("VIEW_COUNTER_API_BASE"),
		PageOrigin:      os.Getenv("VIEW_COUNTER_PAGE_ORIGIN"),
		Locale:          getEnv("VIEW_COUNTER_LOCALE", "en-US"),
		TimeoutSeconds:  getEnvAsInt("VIEW_COUNTER_TIMEOUT_SECONDS", 10),
		blockPrivateRaw: getEnv("VIEW_COUNTER_BLOCK_PRIVATE", "false"),
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	cfg.BlockPrivate, _ = strconv.ParseBool(cfg.blockPrivateRaw)
	return cfg, nil
}

// Timeout returns the HTTP client timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Language returns the parsed locale tag. Load has already validated it.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 300 {
		return fmt.Errorf("%w: got %d", errTimeoutOutOfRange, c.TimeoutSeconds)
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: %q", errInvalidLocale, c.Locale)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, c.LogFormat)
	}

	if _, err := strconv.ParseBool(c.blockPrivateRaw); err != nil {
		return fmt.Errorf("%w: %q", errInvalidBlockPolicy, c.blockPrivateRaw)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
