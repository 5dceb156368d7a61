package cli

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/shivanshkc/repstat/pkg/study"
)

var (
	usageStart, usageEnd uint64
	usageSlice           string
)

// usagePcts are the percentiles shown for every usage field.
var usagePcts = []string{"00", "50", "90", "99", "100"}

// usageCmd represents the `usage` command. It summarizes the resource
// consumption of one slice over the run.
var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Summarize the resource usage of a slice.",
	Long:  "Show mean, standard deviation and percentiles of the CPU, memory and IO usage of a slice over the reports in [start, end).",
	RunE: func(cmd *cobra.Command, args []string) error {
		if message := validateUsageFlags(); message != "" {
			return newUsageError(message)
		}

		src, err := openSource(rootConfig.Source)
		if err != nil {
			return err
		}

		drivers := study.NewStudies().WithLogger(slog.Default())
		fieldStudies := make([]*study.MeanPcts, len(study.UsageFields))
		for i, field := range study.UsageFields {
			fieldStudies[i] = study.NewMeanPcts(study.UsageSel{Slice: usageSlice, Field: field}.Select, rootConfig.Study.Error)
			drivers.Add(fieldStudies[i])
		}

		missed, err := drivers.Run(cmd.Context(), src, usageStart, usageEnd)
		if err != nil {
			return fmt.Errorf("failed to study the reports: %w", err)
		}
		logCoverage(usageStart, usageEnd, missed)

		if fieldStudies[0].Len() == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no usage recorded for %s in range\n", usageSlice)
			return nil
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(cmd.OutOrStdout())
		tw.SetTitle(usageSlice)

		header := table.Row{"field", study.ColMean, study.ColStdev}
		for _, pct := range usagePcts {
			header = append(header, study.FormatPct(pct))
		}
		tw.AppendHeader(header)

		for i, field := range study.UsageFields {
			res := fieldStudies[i].Result(usagePcts)
			row := table.Row{string(field), formatUsage(field, res.Mean), formatUsage(field, res.Stdev)}
			for _, pct := range usagePcts {
				row = append(row, formatUsage(field, res.Pcts[pct]))
			}
			tw.AppendRow(row)
		}

		columnConfigs := make([]table.ColumnConfig, 0, len(header)-1)
		for i := 2; i <= len(header); i++ {
			columnConfigs = append(columnConfigs, table.ColumnConfig{Number: i, Align: text.AlignRight})
		}
		tw.SetColumnConfigs(columnConfigs)

		tw.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usageCmd)

	usageCmd.Flags().Uint64VarP(&usageStart, "start", "s", 0, "First report index to study.")
	usageCmd.Flags().Uint64VarP(&usageEnd, "end", "e", 0, "Report index to stop at, exclusive.")
	usageCmd.Flags().StringVar(&usageSlice, "slice", "workload.slice", "Slice whose usage is summarized.")
}

// formatUsage renders a usage value in the unit of its field.
func formatUsage(field study.UsageField, v float64) string {
	switch field {
	case study.UsageCPUUtil:
		return fmt.Sprintf("%.1f%%", v*100)
	case study.UsageMemBytes:
		return humanize.IBytes(uint64(max(v, 0)))
	case study.UsageIORBps, study.UsageIOWBps:
		return humanize.IBytes(uint64(max(v, 0))) + "/s"
	default:
		return humanize.Ftoa(v)
	}
}
