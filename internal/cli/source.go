package cli

import (
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/shivanshkc/repstat/internal/config"
	"github.com/shivanshkc/repstat/pkg/report"
)

// openSource returns the report source selected by the configuration.
func openSource(cfg config.SourceConfig) (report.Source, error) {
	if cfg.URL != "" {
		return report.NewHTTPSource(cfg.URL, cfg.Attempts, cfg.Delay, cfg.Timeout), nil
	}
	return report.NewDirSource(cfg.Dir, cfg.CacheSize)
}

// logCoverage reports how many indices of [start, end) had no usable report.
func logCoverage(start, end, missed uint64) {
	if missed == 0 {
		return
	}
	slog.Warn("some reports were missing",
		"missed", humanize.Comma(int64(missed)),
		"total", humanize.Comma(int64(end-start)),
		"start", start, "end", end)
}
