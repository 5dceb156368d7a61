// Package report defines the measurement snapshots produced by the benchmark
// agent and the sources they can be fetched from.
//
// A Report is immutable once produced. Consumers borrow it for the duration of
// one processing step and must not retain it, since sources are free to recycle
// or evict decoded reports.
package report

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by a Source when no report exists at an index.
	ErrNotFound = errors.New("report not found")
	// ErrCorrupt is returned by a Source when a report exists but could not be decoded.
	ErrCorrupt = errors.New("report corrupt")
)

// LatPcts lists the latency percentile labels the agent reports for every I/O
// type, in ascending order.
//
// Labels are strings so that "99.9" stays distinguishable from "99".
var LatPcts = []string{
	"00", "01", "05", "10", "16", "25", "50", "75", "84", "90", "95", "99", "99.9", "99.99", "99.999", "100",
}

// IoLat maps an I/O type (e.g. "read") to its latency distribution, keyed by
// percentile label. Values are in seconds.
type IoLat map[string]map[string]float64

// Get returns the value at (ioType, pct) and whether it exists.
func (l IoLat) Get(ioType, pct string) (float64, bool) {
	pcts, ok := l[ioType]
	if !ok {
		return 0, false
	}
	v, ok := pcts[pct]
	return v, ok
}

// Usage holds the resource consumption of a single cgroup slice.
type Usage struct {
	CPUUtil  float64 `json:"cpu_util"`
	MemBytes float64 `json:"mem_bytes"`
	IORBps   float64 `json:"io_rbps"`
	IOWBps   float64 `json:"io_wbps"`
}

// Report is one timestamped measurement snapshot.
type Report struct {
	Timestamp time.Time `json:"timestamp"`
	Seq       uint64    `json:"seq"`

	// IoLat is the latency distribution over the report's own interval.
	IoLat IoLat `json:"iolat"`
	// IoLatCum is the latency distribution accumulated since the agent started.
	IoLatCum IoLat `json:"iolat_cum"`

	// Usages is keyed by slice name, e.g. "workload.slice".
	Usages map[string]Usage `json:"usages"`
}
