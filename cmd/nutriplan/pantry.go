package nutriplan

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var pantryCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Track what is in the pantry",
}

var (
	pantryName     string
	pantryQuantity float64
	pantryUnit     string
	pantryCategory string
	pantryExpires  string
	pantryBarcode  string
	pantryCost     float64
)

func pantryInputFromFlags(cmd *cobra.Command) (service.PantryItemInput, error) {
	in := service.PantryItemInput{
		Name:     pantryName,
		Quantity: pantryQuantity,
		Unit:     pantryUnit,
		Category: pantryCategory,
		Barcode:  pantryBarcode,
	}
	if strings.TrimSpace(pantryExpires) != "" {
		t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(pantryExpires), time.Local)
		if err != nil {
			return in, fmt.Errorf("invalid --expires %q (expected YYYY-MM-DD)", pantryExpires)
		}
		in.ExpirationDate = &t
	}
	if cmd.Flags().Changed("cost") {
		in.CostPerUnit = &pantryCost
	}
	return in, nil
}

var pantryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a pantry item",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := pantryInputFromFlags(cmd)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			id, err := service.CreatePantryItem(st, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added pantry item %d: %s\n", id, in.Name)
			return nil
		})
	},
}

var pantryListCategory string

var pantryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pantry items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			items, err := service.ListPantryItems(st, pantryListCategory)
			if err != nil {
				return err
			}
			printPantryItems(cmd, items)
			return nil
		})
	},
}

var pantryExpiringDays int

var pantryExpiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List items expiring soon",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			days := pantryExpiringDays
			if days == 0 {
				days = cfg.Pantry.ExpiringDays
			}
			items, err := service.ExpiringPantryItems(st, days)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing expires in the next %d days\n", days)
				return nil
			}
			printPantryItems(cmd, items)
			return nil
		})
	},
}

var pantryUseCmd = &cobra.Command{
	Use:   "use <id> <quantity>",
	Short: "Set an item's remaining quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("pantry item id", args[0])
		if err != nil {
			return err
		}
		var quantity float64
		if _, err := fmt.Sscanf(args[1], "%f", &quantity); err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.SetPantryQuantity(st, id, quantity); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pantry item %d now at %.1f\n", id, quantity)
			return nil
		})
	},
}

var pantryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a pantry item's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("pantry item id", args[0])
		if err != nil {
			return err
		}
		in, err := pantryInputFromFlags(cmd)
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.UpdatePantryItem(st, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated pantry item %d\n", id)
			return nil
		})
	},
}

var pantryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a pantry item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("pantry item id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.DeletePantryItem(st, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted pantry item %d\n", id)
			return nil
		})
	},
}

func printPantryItems(cmd *cobra.Command, items []model.PantryItem) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tUNIT\tCATEGORY\tEXPIRES")
	for _, item := range items {
		expires := "-"
		if item.ExpirationDate != nil {
			expires = item.ExpirationDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\t%s\n",
			item.ID, item.Name, item.Quantity, item.Unit, item.Category, expires)
	}
	w.Flush()
}

func addPantryFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pantryName, "name", "", "Item name")
	cmd.Flags().Float64Var(&pantryQuantity, "quantity", 0, "Quantity on hand")
	cmd.Flags().StringVar(&pantryUnit, "unit", "", "Unit, e.g. g, ml, piece")
	cmd.Flags().StringVar(&pantryCategory, "category", "", "Item category, e.g. grain, dairy")
	cmd.Flags().StringVar(&pantryExpires, "expires", "", "Expiration date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pantryBarcode, "barcode", "", "Product barcode")
	cmd.Flags().Float64Var(&pantryCost, "cost", 0, "Cost per unit")
}

func init() {
	addPantryFieldFlags(pantryAddCmd)
	addPantryFieldFlags(pantryUpdateCmd)

	pantryListCmd.Flags().StringVar(&pantryListCategory, "category", "", "Only show one category")
	pantryExpiringCmd.Flags().IntVar(&pantryExpiringDays, "days", 0, "Look-ahead window in days (default from config)")

	rootCmd.AddCommand(pantryCmd)
	pantryCmd.AddCommand(pantryAddCmd, pantryListCmd, pantryExpiringCmd, pantryUseCmd, pantryUpdateCmd, pantryDeleteCmd)
}
