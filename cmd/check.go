package cmd

import (
	"fmt"

	"fleetwash/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag       bool
	checkJSONFlag bool
)

// checkCmd runs the health checks from the command line.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the database, object storage and catalog",
	Long: `Verifies the wash record table against the expected schema, the evidence bucket and the unit catalog.
Use --fix to create a missing bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if fixFlag {
			if err := a.health.FixStorage(ctx); err != nil {
				return fmt.Errorf("failed to fix storage: %w", err)
			}
			a.logger.Info("Storage fixed", zap.String("bucket", a.cfg.Storage.Bucket))
		}

		rep := a.health.Run(ctx)
		if checkJSONFlag {
			if err := printJSON(rep); err != nil {
				return err
			}
		} else {
			names := []string{"database", "storage", "catalog"}
			for i, c := range []health.Check{rep.Database, rep.Storage, rep.Catalog} {
				a.logger.Info("Check", zap.String("name", names[i]), zap.String("status", c.Status), zap.String("error", c.Error))
			}
		}
		if rep.Status == health.StatusError {
			return fmt.Errorf("health check failed")
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the storage bucket when missing")
	checkCmd.Flags().BoolVar(&checkJSONFlag, "json", false, "Print the full report as JSON")
	RootCmd.AddCommand(checkCmd)
}
