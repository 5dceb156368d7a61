package study

import (
	"io"
	"slices"

	"github.com/shivanshkc/repstat/pkg/report"
)

// Reserved column keys of a latency table.
const (
	ColCum   = "cum"
	ColMean  = "mean"
	ColStdev = "stdev"
)

var (
	// TimePcts are the time-domain percentiles computed for every latency
	// percentile by default.
	TimePcts = []string{"00", "01", "05", "10", "16", "25", "50", "75", "84", "90", "95", "99", "99.9", "100"}
	// TimeFormatPcts are the time-domain percentiles displayed by default.
	TimeFormatPcts = []string{"00", "16", "50", "84", "90", "95", "99", "99.9", "100"}
)

// Table is a two-level result: latency percentile -> column -> value.
type Table map[string]map[string]float64

// IoLatPcts studies how the latency percentiles of one I/O type are
// distributed over time.
//
// For every latency percentile row (e.g. p99) it runs a MeanPcts study over the
// per-report values of that row, so the resulting table answers questions like
// "what was the p99 latency during the worst 1% of the run".
type IoLatPcts struct {
	ioType  string
	rows    []string
	studies []*MeanPcts
}

// NewIoLatPcts returns an IoLatPcts over all the latency percentiles the agent
// reports. See NewPcts for eps.
func NewIoLatPcts(ioType string, eps float64) *IoLatPcts {
	return NewIoLatPctsWithRows(ioType, report.LatPcts, eps)
}

// NewIoLatPctsWithRows returns an IoLatPcts over the given latency percentile rows.
func NewIoLatPctsWithRows(ioType string, rows []string, eps float64) *IoLatPcts {
	s := &IoLatPcts{
		ioType:  ioType,
		rows:    slices.Clone(rows),
		studies: make([]*MeanPcts, len(rows)),
	}
	for i, row := range rows {
		s.studies[i] = NewMeanPcts(IoLatSel{IoType: ioType, Pct: row}.Select, eps)
	}
	return s
}

// IoType returns the I/O type the study was built for.
func (s *IoLatPcts) IoType() string {
	return s.ioType
}

// Rows returns the latency percentile rows in display order.
func (s *IoLatPcts) Rows() []string {
	return slices.Clone(s.rows)
}

// Studies returns the studies to register with a Studies driver.
func (s *IoLatPcts) Studies() []Study {
	studies := make([]Study, len(s.studies))
	for i, st := range s.studies {
		studies[i] = st
	}
	return studies
}

// Len returns the largest number of values accumulated by any row. It is zero
// only when no report had data for this I/O type. Rows may hold fewer values
// when reports omit some latency percentiles.
func (s *IoLatPcts) Len() int {
	n := 0
	for _, st := range s.studies {
		n = max(n, st.Len())
	}
	return n
}

// Result builds the table once the run is over. Every row holds the requested
// time percentiles (TimePcts when timePcts is nil) plus ColMean and ColStdev.
//
// Rows that never received a value hold no time percentiles, mean or stdev.
//
// If access is not nil, the value of each row in the cumulative report is
// added under ColCum. Rows missing from the cumulative report get no ColCum.
func (s *IoLatPcts) Result(access report.CumulativeAccessor, timePcts []string) Table {
	if timePcts == nil {
		timePcts = TimePcts
	}

	table := make(Table, len(s.rows))
	for i, row := range s.rows {
		if s.studies[i].Len() == 0 {
			table[row] = map[string]float64{}
			continue
		}
		res := s.studies[i].Result(timePcts)
		res.Pcts[ColMean] = res.Mean
		res.Pcts[ColStdev] = res.Stdev
		table[row] = res.Pcts
	}

	if access != nil {
		access(func(cum report.IoLat) {
			for _, row := range s.rows {
				if v, ok := cum.Get(s.ioType, row); ok {
					table[row][ColCum] = v
				}
			}
		})
	}
	return table
}

// FormatTable renders a table produced by Result over this study's rows.
// See the package-level FormatTable.
func (s *IoLatPcts) FormatTable(w io.Writer, table Table, timePcts []string, format func(float64) string) error {
	return FormatTable(w, table, s.rows, timePcts, format)
}
