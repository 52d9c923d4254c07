package cmd

import (
	"fmt"
	"os"

	"fleetwash/core/middleware/auth"
	"fleetwash/core/reconcile"
	"fleetwash/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportDepot   string
	reportSegment string
	reportCSV     bool
	reportJSON    bool
)

// reportCmd reconciles one week against the catalog.
var reportCmd = &cobra.Command{
	Use:   "report [week]",
	Short: "Reconcile a week's washes against the catalog",
	Long: `Builds the washed / not washed report of a week (YYYY-Www or any date inside it).

Examples:
  # Summary for the whole fleet
  report 2025-W10

  # CSV for one depot
  report 2025-W10 --depot cartago --csv > resumen.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		depot, segment := a.dir.ResolveFilter(reportDepot, reportSegment)
		rep, err := a.reports.Week(cmd.Context(), auth.ServicePrincipal, args[0], reconcile.Filter{Depot: depot, Segment: segment})
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}

		switch {
		case reportCSV:
			return report.WriteCSV(os.Stdout, rep)
		case reportJSON:
			return printJSON(rep)
		}
		printWeekReport(a.logger, rep)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDepot, "depot", "", "Depot id or name")
	reportCmd.Flags().StringVar(&reportSegment, "segment", "", "Segment id or label")
	reportCmd.Flags().BoolVar(&reportCSV, "csv", false, "Write the CSV summary to stdout")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Write the full report as JSON to stdout")
	reportCmd.MarkFlagsMutuallyExclusive("csv", "json")
	RootCmd.AddCommand(reportCmd)
}

// printWeekReport logs the summary and a sample of the pending units.
func printWeekReport(l *zap.Logger, rep *report.Report) {
	s := rep.Summary
	l.Info("Week report",
		zap.String("week", rep.Week),
		zap.String("depot", rep.Depot),
		zap.String("segment", rep.Segment),
		zap.Int("total", s.Total),
		zap.Int("washed", s.Washed),
		zap.Int("not_washed", s.NotWashed),
		zap.Int("orphans", s.Orphans),
		zap.Float64("percent", rep.Percent),
	)
	for seg, sum := range rep.BySegment {
		l.Info("Segment", zap.String("segment", seg), zap.Int("total", sum.Total), zap.Int("washed", sum.Washed))
	}

	maxShow := min(10, len(rep.NotWashed))
	for _, u := range rep.NotWashed[:maxShow] {
		l.Info("Not washed", zap.String("unit", u.ID), zap.String("depot", u.Depot), zap.String("segment", u.Segment))
	}
	if len(rep.NotWashed) > maxShow {
		l.Info("Additional units not shown", zap.Int("count", len(rep.NotWashed)-maxShow))
	}
}
