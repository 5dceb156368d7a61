package study

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shivanshkc/repstat/pkg/report"
)

// ErrNoReports is matched by every CoverageError.
var ErrNoReports = errors.New("no report available")

// CoverageError is returned when no report in the requested range could be fetched.
type CoverageError struct {
	Start, End uint64
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("no report available between %d and %d", e.Start, e.End)
}

// Is makes errors.Is(err, ErrNoReports) hold.
func (e *CoverageError) Is(target error) bool {
	return target == ErrNoReports
}

// Studies drives registered studies over a range of reports in one pass.
//
// A Studies value is meant for a single Run. Results are read from the
// individual studies afterwards.
type Studies struct {
	studies []Study
	logger  *slog.Logger
}

// NewStudies returns an empty driver that logs nowhere.
func NewStudies() *Studies {
	return &Studies{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger used for missed reports and run summaries.
func (s *Studies) WithLogger(logger *slog.Logger) *Studies {
	s.logger = logger
	return s
}

// Add registers a study. Studies are fed in registration order.
func (s *Studies) Add(study Study) *Studies {
	s.studies = append(s.studies, study)
	return s
}

// AddMultiple registers several studies, e.g. IoLatPcts.Studies().
func (s *Studies) AddMultiple(studies []Study) *Studies {
	s.studies = append(s.studies, studies...)
	return s
}

// Len returns the number of registered studies.
func (s *Studies) Len() int {
	return len(s.studies)
}

// Run feeds every report in [start, end) to every registered study, in
// ascending index order, and returns the number of indices whose report could
// not be fetched.
//
// Missing reports are tolerated as long as at least one report was fetched.
// Otherwise, including when the range is empty, Run returns a *CoverageError.
// The first error returned by a study aborts the run.
//
// The context is handed to src. If a fetch fails after the context is done,
// Run stops and returns the context's error instead of a partial result.
func (s *Studies) Run(ctx context.Context, src report.Source, start, end uint64) (uint64, error) {
	var missed uint64

	stream := report.Iter(ctx, src, start, end)
	for fetched := range stream.All {
		if fetched.Err != nil {
			// A cancelled run must not be summarized as if it had covered the range.
			if err := ctx.Err(); err != nil {
				return missed, fmt.Errorf("run interrupted at report %d: %w", fetched.Index, err)
			}
			s.logger.Debug("report missed", "index", fetched.Index, "err", fetched.Err)
			missed++
			continue
		}

		for _, study := range s.studies {
			if err := study.Study(fetched.Report); err != nil {
				return missed, fmt.Errorf("failed to study report %d: %w", fetched.Index, err)
			}
		}
	}

	if start+missed >= end {
		return missed, &CoverageError{Start: start, End: end}
	}

	s.logger.Info("studied reports",
		"start", start, "end", end, "studied", end-start-missed, "missed", missed, "studies", len(s.studies))
	return missed, nil
}
