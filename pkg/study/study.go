// Package study computes aggregate statistics over a stream of reports.
//
// Every statistic is a Study: an online accumulator that consumes one report at
// a time. Many heterogeneous studies can be registered with a single Studies
// driver, which walks a report range exactly once and feeds each report to every
// study. Each study extracts its own value from the report through a Selector,
// so the stream never needs to be re-scanned per study.
//
// Studies are single-use. Construct a fresh instance for every run.
package study

import (
	"github.com/shivanshkc/repstat/pkg/report"
)

// DefaultError is the default relative rank error of the percentile sketch.
const DefaultError = 0.001

// Study is an online accumulator over reports.
//
// The report is only borrowed for the duration of the call and must not be
// retained.
type Study interface {
	Study(rep *report.Report) error
}

// Selector extracts a single value from a report.
//
// Returning ok=false means the report is not applicable to the study (e.g. no
// I/O completed during its interval). It is not an error: the report is skipped
// by that study while other studies still process it.
type Selector func(rep *report.Report) (value float64, ok bool)

// IoLatSel selects the latency at a percentile of an I/O type.
type IoLatSel struct {
	IoType string
	Pct    string
}

// Select implements the Selector contract. A report is applicable only if its
// "100" entry for the I/O type is positive, i.e. at least one I/O completed.
func (s IoLatSel) Select(rep *report.Report) (float64, bool) {
	if maxLat, ok := rep.IoLat.Get(s.IoType, "100"); !ok || maxLat <= 0 {
		return 0, false
	}
	return rep.IoLat.Get(s.IoType, s.Pct)
}

// UsageField names a field of report.Usage.
type UsageField string

const (
	UsageCPUUtil  UsageField = "cpu_util"
	UsageMemBytes UsageField = "mem_bytes"
	UsageIORBps   UsageField = "io_rbps"
	UsageIOWBps   UsageField = "io_wbps"
)

// UsageFields lists every UsageField in display order.
var UsageFields = []UsageField{UsageCPUUtil, UsageMemBytes, UsageIORBps, UsageIOWBps}

// UsageSel selects a resource usage field of a slice.
type UsageSel struct {
	Slice string
	Field UsageField
}

// Select implements the Selector contract. Reports without the slice, or
// selectors naming an unknown field, produce no value.
func (s UsageSel) Select(rep *report.Report) (float64, bool) {
	usage, ok := rep.Usages[s.Slice]
	if !ok {
		return 0, false
	}

	switch s.Field {
	case UsageCPUUtil:
		return usage.CPUUtil, true
	case UsageMemBytes:
		return usage.MemBytes, true
	case UsageIORBps:
		return usage.IORBps, true
	case UsageIOWBps:
		return usage.IOWBps, true
	default:
		return 0, false
	}
}
