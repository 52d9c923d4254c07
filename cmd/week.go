package cmd

import (
	"fmt"

	"fleetwash/core/middleware/auth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// weekCmd groups week maintenance commands.
var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Manage the records of a week",
}

// weekDeleteCmd removes every record and photo of a week.
var weekDeleteCmd = &cobra.Command{
	Use:   "delete [week]",
	Short: "Delete every wash record and photo of a week",
	Long: `Deletes all records of the week and removes their evidence photos.

Examples:
  # Interactive confirmation
  week delete 2025-W10

  # Non-interactive
  week delete 2025-W10 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		records, err := a.wash.ListWeek(cmd.Context(), auth.ServicePrincipal, args[0])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			a.logger.Info("No records in week", zap.String("week", args[0]))
			return nil
		}
		a.logger.Info("Records to delete", zap.String("week", records[0].Week), zap.Int("count", len(records)))

		if !confirmDestructiveAction(fmt.Sprintf("This deletes %d records of %s.", len(records), records[0].Week)) {
			a.logger.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}

		n, err := a.wash.DeleteWeek(cmd.Context(), auth.ServicePrincipal, args[0])
		if err != nil {
			return fmt.Errorf("failed to delete week: %w", err)
		}
		a.logger.Info("Successfully deleted records", zap.Int("count", n))
		return nil
	},
}

func init() {
	weekDeleteCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	weekCmd.AddCommand(weekDeleteCmd)
	RootCmd.AddCommand(weekCmd)
}
