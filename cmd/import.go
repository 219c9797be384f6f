package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"duelbot/core/mdm"
	"duelbot/feature/deck"
)

var (
	importLimit  int
	importFile   string
	importDryRun bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import deck lists into the store",
	Long: `Imports decks from the remote deck-type listing, or from a local
JSON dump when --file is given. With --dry-run the records are parsed and
printed but nothing is stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client := mdm.NewClient(cfg.Source)
		service := deck.NewService(db, logg)
		importer := deck.NewImporter(service, client, logg)

		if importDryRun {
			if importFile == "" {
				return fmt.Errorf("--dry-run requires --file")
			}
			decks, err := importer.Preview(importFile, importLimit)
			if err != nil {
				return err
			}
			for _, d := range decks {
				fmt.Printf("%s (%d main / %d extra) %s\n",
					d.Name, len(d.Main), len(d.Extra), d.URL)
			}
			logg.Info("Dry run finished", zap.Int("decks", len(decks)))
			return nil
		}

		var imported int
		if importFile != "" {
			imported, err = importer.ImportFromFile(cmd.Context(), importFile, importLimit)
			if err != nil {
				return err
			}
		} else {
			imported = importer.ImportDeckTypes(cmd.Context(), importLimit)
		}
		logg.Info("Import finished", zap.Int("imported", imported))
		return nil
	},
}

func init() {
	importCmd.Flags().IntVar(&importLimit, "limit", deck.DefaultImportLimit, "maximum number of decks to import")
	importCmd.Flags().StringVar(&importFile, "file", "", "local JSON dump of deck-type records")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and print without storing")
	RootCmd.AddCommand(importCmd)
}
