package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/shivanshkc/repstat/pkg/report"
	"github.com/shivanshkc/repstat/pkg/study"
)

var (
	ioLatStart, ioLatEnd uint64
	ioLatIoTypes         []string
	ioLatTimePcts        []string
	ioLatError           float64
)

// ioLatCmd represents the `iolat` command. For each I/O type it prints how the
// reported latency percentiles were distributed over the run.
var ioLatCmd = &cobra.Command{
	Use:   "iolat",
	Short: "Show the distribution of I/O latency percentiles over time.",
	Long: `For every latency percentile the agent reports (rows), show its minimum,
time percentiles, maximum, cumulative value, mean and standard deviation
over the reports in [start, end) (columns).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if message := validateIoLatFlags(); message != "" {
			return newUsageError(message)
		}

		cfg := rootConfig
		ioTypes := cfg.Study.IoTypes
		if cmd.Flags().Changed("io-type") {
			ioTypes = ioLatIoTypes
		}
		eps := cfg.Study.Error
		if cmd.Flags().Changed("error") {
			eps = ioLatError
		}
		formatPcts := cfg.Study.FormatPcts
		if cmd.Flags().Changed("time-pcts") {
			formatPcts = ioLatTimePcts
		}

		// Displayed percentiles must have been computed.
		computePcts := slices.Clone(cfg.Study.TimePcts)
		for _, pct := range formatPcts {
			if !slices.Contains(computePcts, pct) {
				computePcts = append(computePcts, pct)
			}
		}

		src, err := openSource(cfg.Source)
		if err != nil {
			return err
		}

		// One matrix study per I/O type, all driven by a single pass.
		drivers := study.NewStudies().WithLogger(slog.Default())
		matrices := make([]*study.IoLatPcts, len(ioTypes))
		for i, ioType := range ioTypes {
			matrices[i] = study.NewIoLatPcts(ioType, eps)
			drivers.AddMultiple(matrices[i].Studies())
		}

		missed, err := drivers.Run(cmd.Context(), src, ioLatStart, ioLatEnd)
		if err != nil {
			return fmt.Errorf("failed to study the reports: %w", err)
		}
		logCoverage(ioLatStart, ioLatEnd, missed)

		access, err := report.LatestCumulative(cmd.Context(), src, ioLatStart, ioLatEnd)
		if err != nil && !errors.Is(err, report.ErrNotFound) {
			return err
		}

		out := cmd.OutOrStdout()
		for i, matrix := range matrices {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			_, _ = fmt.Fprintf(out, "%s latency distribution:\n\n", matrix.IoType())

			if matrix.Len() == 0 {
				_, _ = fmt.Fprintln(out, "  no completed I/O in range")
				continue
			}

			table := matrix.Result(access, computePcts)
			if err := matrix.FormatTable(out, table, formatPcts, nil); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ioLatCmd)

	ioLatCmd.Flags().Uint64VarP(&ioLatStart, "start", "s", 0, "First report index to study.")
	ioLatCmd.Flags().Uint64VarP(&ioLatEnd, "end", "e", 0, "Report index to stop at, exclusive.")
	ioLatCmd.Flags().StringSliceVarP(&ioLatIoTypes, "io-type", "t", nil, "I/O types to study, e.g. read,write.")
	ioLatCmd.Flags().StringSliceVar(&ioLatTimePcts, "time-pcts", nil, "Time percentiles to display.")
	ioLatCmd.Flags().Float64Var(&ioLatError, "error", 0, "Relative rank error of the percentile sketch.")
}
