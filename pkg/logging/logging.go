// Package logging configures the structured logger shared by the reorder
// packages.
//
// Logging is built on zerolog. Call [ConfigureRuntime] once from a binary's
// main, or [ConfigureTests] from a TestMain. Packages obtain component
// loggers with [For]:
//
//	log := logging.For("reorder")
//	log.Debug().Int("index", 3).Msg("drag start")
//
// The profile defaults can be overridden through environment variables:
//
//	REORDER_LOG_LEVEL      trace, debug, info, warn, error, disabled
//	REORDER_LOG_TIMESTAMP  true/false
//	REORDER_LOG_NOCOLOR    true/false
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "REORDER_LOG_LEVEL"
	EnvLogTimestamp = "REORDER_LOG_TIMESTAMP"
	EnvLogNoColor   = "REORDER_LOG_NOCOLOR"
)

// Profile selects the logger defaults.
type Profile int

const (
	// ProfileRuntime logs info and above to stderr with timestamps.
	ProfileRuntime Profile = iota
	// ProfileTest discards output unless REORDER_LOG_LEVEL is set.
	ProfileTest
)

// Config describes how the root logger is built.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Output    io.Writer
}

var (
	mu         sync.RWMutex
	root       = zerolog.Nop()
	configured bool
)

// ConfigureRuntime installs the runtime profile.
func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

// ConfigureTests installs the test profile.
func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure installs the given profile with environment overrides applied.
// Only the first call has an effect; use [Apply] to replace the logger later.
func Configure(profile Profile) {
	mu.RLock()
	done := configured
	mu.RUnlock()
	if done {
		return
	}
	cfg := DefaultConfig(profile)
	applyEnvOverrides(&cfg)
	Apply(cfg)
}

// DefaultConfig returns the defaults for a profile.
func DefaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.Disabled, Output: os.Stderr, NoColor: true}
	default:
		return Config{Level: zerolog.InfoLevel, Timestamp: true, Output: os.Stderr}
	}
}

// Apply replaces the root logger.
func Apply(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}
	if !cfg.Timestamp {
		writer.PartsExclude = []string{zerolog.TimestampFieldName}
	}
	ctx := zerolog.New(writer).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}

	mu.Lock()
	root = ctx.Logger()
	configured = true
	mu.Unlock()
}

// SetLevel changes the level of the root logger.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	root = root.Level(level)
	mu.Unlock()
}

// Logger returns the root logger. It is a no-op logger until configured.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// For returns a child logger tagged with the component name.
func For(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}

// ParseLevel parses a level name. Unknown or empty names report false.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "off", "none", "disabled":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
