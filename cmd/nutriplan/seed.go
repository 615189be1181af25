package nutriplan

import (
	"fmt"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter recipe and pantry catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			seeded, err := service.IsSeeded(st)
			if err != nil {
				return err
			}
			if seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Already seeded")
				return nil
			}
			if err := service.SeedDatabase(st); err != nil {
				return err
			}
			count, err := service.CountRecipes(st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded starter catalog; %d recipes available\n", count)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
