// Package config loads the repstat configuration from defaults, an optional
// YAML file and REPSTAT_* environment variables.
package config

import (
	"errors"
	"time"

	"github.com/shivanshkc/repstat/pkg/report"
	"github.com/shivanshkc/repstat/pkg/study"
)

// Config is the top-level configuration struct.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Study  StudyConfig  `mapstructure:"study"`
	Source SourceConfig `mapstructure:"source"`
	Log    LogConfig    `mapstructure:"log"`
}

// StudyConfig holds the statistics knobs.
type StudyConfig struct {
	Error      float64  `mapstructure:"error"`
	TimePcts   []string `mapstructure:"time_pcts"`
	FormatPcts []string `mapstructure:"format_pcts"`
	IoTypes    []string `mapstructure:"io_types"`
}

// SourceConfig selects where reports come from. At most one of Dir and URL may be set.
type SourceConfig struct {
	Dir       string        `mapstructure:"dir"`
	URL       string        `mapstructure:"url"`
	CacheSize int           `mapstructure:"cache_size"`
	Attempts  int           `mapstructure:"attempts"`
	Delay     time.Duration `mapstructure:"delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Defaults.
const (
	DefaultAttempts  = 3
	DefaultDelay     = 100 * time.Millisecond
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultIoTypes are the I/O types studied when none are configured.
var DefaultIoTypes = []string{"read", "write"}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidError indicates the sketch error is outside (0, 1).
	ErrInvalidError = errors.New("study.error must be between 0 and 1, exclusive")
	// ErrInvalidPcts indicates a malformed percentile label.
	ErrInvalidPcts = errors.New("study.time_pcts and study.format_pcts must hold percentages in [0, 100]")
	// ErrNoIoTypes indicates an empty I/O type list.
	ErrNoIoTypes = errors.New("study.io_types must not be empty")
	// ErrAmbiguousSource indicates both a directory and a URL were configured.
	ErrAmbiguousSource = errors.New("only one of source.dir and source.url may be set")
	// ErrInvalidCacheSize indicates a negative cache size.
	ErrInvalidCacheSize = errors.New("source.cache_size must be non-negative")
	// ErrInvalidAttempts indicates the attempt count is not positive.
	ErrInvalidAttempts = errors.New("source.attempts must be positive")
	// ErrInvalidTimeout indicates a non-positive request timeout.
	ErrInvalidTimeout = errors.New("source.timeout must be positive")
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
	// ErrInvalidLogFormat indicates an unknown log format.
	ErrInvalidLogFormat = errors.New("log.format must be one of text, json")
)

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Study: StudyConfig{
			Error:      study.DefaultError,
			TimePcts:   study.TimePcts,
			FormatPcts: study.TimeFormatPcts,
			IoTypes:    DefaultIoTypes,
		},
		Source: SourceConfig{
			CacheSize: report.DefaultCacheSize,
			Attempts:  DefaultAttempts,
			Delay:     DefaultDelay,
			Timeout:   report.DefaultRequestTimeout,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if err := c.validateStudy(); err != nil {
		return err
	}
	if err := c.validateSource(); err != nil {
		return err
	}
	return c.validateLog()
}

func (c *Config) validateStudy() error {
	if c.Study.Error <= 0 || c.Study.Error >= 1 {
		return ErrInvalidError
	}

	for _, pcts := range [][]string{c.Study.TimePcts, c.Study.FormatPcts} {
		for _, pct := range pcts {
			if _, err := study.ParsePct(pct); err != nil {
				return errors.Join(ErrInvalidPcts, err)
			}
		}
	}

	if len(c.Study.IoTypes) == 0 {
		return ErrNoIoTypes
	}

	return nil
}

func (c *Config) validateSource() error {
	if c.Source.Dir != "" && c.Source.URL != "" {
		return ErrAmbiguousSource
	}

	if c.Source.CacheSize < 0 {
		return ErrInvalidCacheSize
	}

	if c.Source.Attempts < 1 {
		return ErrInvalidAttempts
	}

	if c.Source.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

func (c *Config) validateLog() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}
