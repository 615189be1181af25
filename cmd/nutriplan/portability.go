package nutriplan

import (
	"fmt"
	"os"
	"strings"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if strings.TrimSpace(exportOut) == "" {
				return service.WriteExport(st, cmd.OutOrStdout())
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := service.WriteExport(st, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var (
	importIn   string
	importMode string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a previously exported JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		f, err := os.Open(importIn)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		doc, err := service.ReadImport(f)
		if err != nil {
			return err
		}
		mode := service.ImportMode(strings.ToLower(strings.TrimSpace(importMode)))
		return withStore(func(st *store.Store, cfg *config.Config) error {
			summary, err := service.Import(st, doc, mode)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported: recipes=%d pantry=%d plans=%d lists=%d profile=%v\n",
				summary.Recipes, summary.PantryItems, summary.MealPlans, summary.GroceryLists, summary.ProfileImported)
			return nil
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file")
	importCmd.Flags().StringVar(&importMode, "mode", "skip", "skip keeps existing rows, replace wipes them first")

	rootCmd.AddCommand(exportCmd, importCmd)
}
