package cli

import (
	"errors"
	"net/url"

	"github.com/shivanshkc/repstat/internal/config"
	"github.com/shivanshkc/repstat/pkg/study"
)

// newUsageError turns a validation message into an error.
func newUsageError(message string) error {
	return errors.New(message)
}

// validateRootFlags validates the effective source and logging settings.
func validateRootFlags(cfg *config.Config) string {
	// Both may come from different layers, so check again after flags were applied.
	if cfg.Source.Dir != "" && cfg.Source.URL != "" {
		return "Only one of --dir and --url may be set."
	}

	if cfg.Source.URL != "" {
		if _, err := url.ParseRequestURI(cfg.Source.URL); err != nil {
			return "Invalid URL: " + err.Error()
		}
	}

	if err := cfg.Validate(); err != nil {
		return "Invalid configuration: " + err.Error()
	}

	return ""
}

// validateRange validates the index range shared by the study commands.
func validateRange(start, end uint64) string {
	// A source is required to study anything.
	if rootConfig.Source.Dir == "" && rootConfig.Source.URL == "" {
		return "One of --dir and --url is required."
	}

	if end <= start {
		return "The end index must be greater than the start index."
	}

	return ""
}

// validateIoLatFlags validates the flags of the iolat command.
func validateIoLatFlags() string {
	if message := validateRange(ioLatStart, ioLatEnd); message != "" {
		return message
	}

	if ioLatError != 0 && (ioLatError < 0 || ioLatError >= 1) {
		return "The error must be between 0 and 1."
	}

	for _, pct := range ioLatTimePcts {
		if _, err := study.ParsePct(pct); err != nil {
			return "Invalid time percentile: " + err.Error()
		}
	}

	return ""
}

// validateUsageFlags validates the flags of the usage command.
func validateUsageFlags() string {
	if message := validateRange(usageStart, usageEnd); message != "" {
		return message
	}

	// A slice is required.
	if usageSlice == "" {
		return "A slice is required."
	}

	return ""
}
