package report

import (
	"context"
	"fmt"

	"github.com/shivanshkc/repstat/pkg/streams"
)

// Source is anything that can fetch a report by its index.
//
// Implementations return an error wrapping ErrNotFound when there is no report
// at the index, and one wrapping ErrCorrupt when the report could not be decoded.
type Source interface {
	ReportAt(ctx context.Context, index uint64) (*Report, error)
}

// Fetched is the outcome of fetching one index from a Source.
type Fetched struct {
	Index  uint64
	Report *Report
	Err    error
}

// Iter returns a lazy stream over [start, end) that fetches one report per index
// in ascending order. Fetch failures are carried in Fetched.Err and do not stop
// the stream.
func Iter(ctx context.Context, src Source, start, end uint64) streams.Stream[Fetched] {
	return streams.Map(streams.Range(start, end), func(index uint64) Fetched {
		rep, err := src.ReportAt(ctx, index)
		return Fetched{Index: index, Report: rep, Err: err}
	})
}

// CumulativeAccessor gives synchronous access to a cumulative latency report
// that is tracked separately from the streamed reports.
//
// The IoLat passed to fn is only valid for the duration of the call.
type CumulativeAccessor func(fn func(cum IoLat))

// StaticCumulative returns an accessor over a fixed IoLat.
func StaticCumulative(cum IoLat) CumulativeAccessor {
	return func(fn func(cum IoLat)) { fn(cum) }
}

// LatestCumulative finds the newest report in [start, end) and returns an
// accessor over its cumulative latency distribution.
func LatestCumulative(ctx context.Context, src Source, start, end uint64) (CumulativeAccessor, error) {
	for index := end; index > start; index-- {
		rep, err := src.ReportAt(ctx, index-1)
		if err != nil {
			continue
		}
		return StaticCumulative(rep.IoLatCum), nil
	}
	return nil, fmt.Errorf("no cumulative report between %d and %d: %w", start, end, ErrNotFound)
}

// MemorySource is a Source backed by an in-memory map. It is mostly useful for
// tests and for replaying reports that have already been loaded.
type MemorySource struct {
	reports map[uint64]*Report
}

// NewMemorySource returns an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{reports: map[uint64]*Report{}}
}

// Put stores the report at the given index, replacing any existing one.
func (m *MemorySource) Put(index uint64, rep *Report) *MemorySource {
	m.reports[index] = rep
	return m
}

// ReportAt implements Source.
func (m *MemorySource) ReportAt(_ context.Context, index uint64) (*Report, error) {
	rep, ok := m.reports[index]
	if !ok {
		return nil, fmt.Errorf("index %d: %w", index, ErrNotFound)
	}
	return rep, nil
}
