package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogDepot   string
	catalogSegment string
	catalogJSON    bool
)

// catalogCmd prints the merged unit catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the merged unit catalog",
	Long: `Loads every configured unit list, merges them and prints the totals per depot and segment.
Use --json to print the units themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadCatalog()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		roster, err := a.catalog.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
		depot, segment := a.dir.ResolveFilter(catalogDepot, catalogSegment)
		units := roster.Filter(depot, segment)

		if catalogJSON {
			return printJSON(units)
		}

		stats := roster.Stats()
		a.logger.Info("Catalog loaded",
			zap.Int("total", stats.Total),
			zap.Int("selected", len(units)),
			zap.Any("by_depot", stats.ByDepot),
			zap.Any("by_segment", stats.BySegment),
		)
		for _, src := range stats.Skipped {
			a.logger.Warn("Source skipped", zap.String("source", src))
		}
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVar(&catalogDepot, "depot", "", "Depot id or name")
	catalogCmd.Flags().StringVar(&catalogSegment, "segment", "", "Segment id or label")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the selected units as JSON")
	RootCmd.AddCommand(catalogCmd)
}
