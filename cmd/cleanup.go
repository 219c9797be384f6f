package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"duelbot/feature/deck"
)

var cleanupDays int

// cleanupCmd represents the cleanup command
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove stale decks from the store",
	Long:  `Deletes decks that have not been updated within the given number of days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		service := deck.NewService(db, logg)
		removed, err := service.CleanupOldDecks(cmd.Context(), cleanupDays)
		if err != nil {
			return err
		}
		logg.Info("Cleanup finished", zap.Int64("removed", removed))
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", deck.DefaultCleanupDays, "staleness threshold in days")
	RootCmd.AddCommand(cleanupCmd)
}
