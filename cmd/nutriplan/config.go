package nutriplan

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and set stored app settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			value, ok, err := service.GetConfig(st, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no setting %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.SetConfig(st, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			settings, err := service.ListConfig(st)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, key := range keys {
				fmt.Fprintf(w, "%s\t%s\n", key, settings[key])
			}
			return w.Flush()
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd)
}
