package nutriplan

import (
	"fmt"
	"text/tabwriter"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var groceryCmd = &cobra.Command{
	Use:   "grocery",
	Short: "Generate and work through grocery lists",
}

var groceryGenerateCmd = &cobra.Command{
	Use:   "generate <plan-id>",
	Short: "Build a grocery list from a meal plan's recipes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if existing, err := service.GroceryListByMealPlan(st, planID); err != nil {
				return err
			} else if existing != nil {
				return fmt.Errorf("plan %d already has grocery list %d; delete it first to regenerate", planID, existing.ID)
			}
			id, err := service.GenerateGroceryList(st, planID)
			if err != nil {
				return err
			}
			list, err := service.GetGroceryList(st, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created grocery list %d with %d items\n", id, len(list.Items))
			return nil
		})
	},
}

var groceryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a grocery list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("grocery list id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			list, err := service.GetGroceryList(st, id)
			if err != nil {
				return err
			}
			if list == nil {
				return fmt.Errorf("grocery list %d not found", id)
			}
			out := cmd.OutOrStdout()
			status := "active"
			if list.CompletedAt != nil {
				status = "completed " + list.CompletedAt.Format("2006-01-02")
			}
			fmt.Fprintf(out, "Grocery list %d (plan %d, %s)\n", list.ID, list.MealPlanID, status)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, " \tITEM\tQTY\tUNIT\tCATEGORY\tEST")
			for _, item := range list.Items {
				mark := " "
				if item.Checked {
					mark = "x"
				}
				est := "-"
				if item.EstimatedCost != nil {
					est = fmt.Sprintf("%.2f", *item.EstimatedCost)
				}
				fmt.Fprintf(w, "[%s]\t%s\t%.1f\t%s\t%s\t%s\n",
					mark, item.Name, item.Quantity, item.Unit, item.Category, est)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if list.TotalEstimatedCost > 0 {
				fmt.Fprintf(out, "Estimated total: %.2f\n", list.TotalEstimatedCost)
			}
			if list.ActualCost != nil {
				fmt.Fprintf(out, "Actual total: %.2f\n", *list.ActualCost)
			}
			return nil
		})
	},
}

var groceryActiveOnly bool

var groceryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List grocery lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			lists, err := service.ListGroceryLists(st)
			if groceryActiveOnly {
				lists, err = service.ActiveGroceryLists(st)
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPLAN\tITEMS\tEST\tSTATUS")
			for _, list := range lists {
				status := "active"
				if list.CompletedAt != nil {
					status = "completed"
				}
				fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%s\n",
					list.ID, list.MealPlanID, len(list.Items), list.TotalEstimatedCost, status)
			}
			return w.Flush()
		})
	},
}

var groceryUncheck bool

var groceryCheckCmd = &cobra.Command{
	Use:   "check <id> <item-name>",
	Short: "Check off an item by name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("grocery list id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.SetGroceryItemChecked(st, id, args[1], !groceryUncheck); err != nil {
				return err
			}
			verb := "Checked"
			if groceryUncheck {
				verb = "Unchecked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q on list %d\n", verb, args[1], id)
			return nil
		})
	},
}

var groceryActualCost float64

var groceryCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a list complete, optionally recording what it cost",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("grocery list id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			var cost *float64
			if cmd.Flags().Changed("cost") {
				cost = &groceryActualCost
			}
			if err := service.CompleteGroceryList(st, id, cost); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed grocery list %d\n", id)
			return nil
		})
	},
}

var groceryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a grocery list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("grocery list id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.DeleteGroceryList(st, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted grocery list %d\n", id)
			return nil
		})
	},
}

func init() {
	groceryListCmd.Flags().BoolVar(&groceryActiveOnly, "active", false, "Only lists not yet completed")
	groceryCheckCmd.Flags().BoolVar(&groceryUncheck, "undo", false, "Uncheck instead of check")
	groceryCompleteCmd.Flags().Float64Var(&groceryActualCost, "cost", 0, "Actual amount spent")

	rootCmd.AddCommand(groceryCmd)
	groceryCmd.AddCommand(groceryGenerateCmd, groceryShowCmd, groceryListCmd, groceryCheckCmd, groceryCompleteCmd, groceryDeleteCmd)
}
