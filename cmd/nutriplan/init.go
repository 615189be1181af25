package nutriplan

import (
	"fmt"

	"github.com/nutriplan/nutriplan-cli/internal/app"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var initSkipSeed bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local nutriplan database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := resolveDBPath(cfg)
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		st, err := store.Open(path)
		if err != nil {
			return err
		}
		defer st.Close()

		if !initSkipSeed {
			if err := service.SeedDatabase(st); err != nil {
				return err
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized nutriplan database at %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSkipSeed, "no-seed", false, "Skip loading the starter recipe catalog")
	rootCmd.AddCommand(initCmd)
}
