package nutriplan

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nutriplan/nutriplan-cli/internal/config"
	"github.com/nutriplan/nutriplan-cli/internal/model"
	"github.com/nutriplan/nutriplan-cli/internal/service"
	"github.com/nutriplan/nutriplan-cli/internal/store"
	"github.com/spf13/cobra"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage the recipe collection",
}

var (
	recipeName         string
	recipeCategory     string
	recipeServings     float64
	recipePrepMin      int
	recipeCookMin      int
	recipeTags         string
	recipeTips         string
	recipeCalories     float64
	recipeProtein      float64
	recipeCarbs        float64
	recipeFat          float64
	recipeIngredients  string
	recipeInstructions string
)

// recipeInputFromFlags assembles a RecipeInput from the shared add/update
// flag set. Ingredients arrive as a JSON array to keep nested quantities and
// macros expressible on one flag.
func recipeInputFromFlags() (service.RecipeInput, error) {
	in := service.RecipeInput{
		Name:               recipeName,
		Category:           model.RecipeCategory(strings.ToLower(strings.TrimSpace(recipeCategory))),
		Servings:           recipeServings,
		PrepTimeMin:        recipePrepMin,
		CookTimeMin:        recipeCookMin,
		Tags:               splitCommaList(recipeTags),
		Tips:               recipeTips,
		CaloriesPerServing: recipeCalories,
		ProteinPerServingG: recipeProtein,
		CarbsPerServingG:   recipeCarbs,
		FatPerServingG:     recipeFat,
	}
	if strings.TrimSpace(recipeIngredients) != "" {
		if err := json.Unmarshal([]byte(recipeIngredients), &in.Ingredients); err != nil {
			return in, fmt.Errorf("parse --ingredients JSON: %w", err)
		}
	}
	for _, step := range strings.Split(recipeInstructions, ";") {
		step = strings.TrimSpace(step)
		if step != "" {
			in.Instructions = append(in.Instructions, step)
		}
	}
	return in, nil
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := recipeInputFromFlags()
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			id, err := service.CreateRecipe(st, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added recipe %d: %s\n", id, in.Name)
			return nil
		})
	},
}

var (
	listSearch   string
	listCategory string
	listTags     string
	listSort     string
	listOrder    string
)

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes with filtering and sorting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			recipes, err := service.ListRecipes(st)
			if err != nil {
				return err
			}
			filtered := service.QueryRecipes(recipes,
				service.RecipeFilter{
					Search:   listSearch,
					Category: strings.ToLower(strings.TrimSpace(listCategory)),
					Tags:     splitCommaList(listTags),
				},
				service.RecipeSort{
					Key:   service.SortKey(strings.ToLower(strings.TrimSpace(listSort))),
					Order: service.SortOrder(strings.ToLower(strings.TrimSpace(listOrder))),
				})

			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recipes match")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tKCAL\tP\tC\tF\tTAGS")
			for _, r := range filtered {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
					r.ID, r.Name, r.Category,
					r.CaloriesPerServing, r.ProteinPerServingG, r.CarbsPerServingG, r.FatPerServingG,
					strings.Join(r.Tags, ","))
			}
			return w.Flush()
		})
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recipe in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			r, err := service.GetRecipe(st, id)
			if err != nil {
				return err
			}
			if r == nil {
				return fmt.Errorf("recipe %d not found", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", r.Name, r.Category)
			fmt.Fprintf(out, "Servings: %.1f\tPrep: %d min\tCook: %d min\n", r.Servings, r.PrepTimeMin, r.CookTimeMin)
			fmt.Fprintf(out, "Per serving: %.0f kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
				r.CaloriesPerServing, r.ProteinPerServingG, r.CarbsPerServingG, r.FatPerServingG)
			if r.CostPerServing != nil {
				fmt.Fprintf(out, "Cost per serving: %.2f\n", *r.CostPerServing)
			}
			if len(r.Tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(r.Tags, ", "))
			}
			fmt.Fprintln(out, "Ingredients:")
			for _, ing := range r.Ingredients {
				fmt.Fprintf(out, "  - %.1f %s %s\n", ing.Quantity, ing.Unit, ing.Name)
			}
			fmt.Fprintln(out, "Instructions:")
			for i, step := range r.Instructions {
				fmt.Fprintf(out, "  %d. %s\n", i+1, step)
			}
			if r.Tips != "" {
				fmt.Fprintf(out, "Tips: %s\n", r.Tips)
			}
			return nil
		})
	},
}

var recipeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a recipe's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		in, err := recipeInputFromFlags()
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.UpdateRecipe(st, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %d\n", id)
			return nil
		})
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("recipe id", args[0])
		if err != nil {
			return err
		}
		return withStore(func(st *store.Store, cfg *config.Config) error {
			if err := service.DeleteRecipe(st, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %d\n", id)
			return nil
		})
	},
}

var recipeTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every distinct recipe tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store, cfg *config.Config) error {
			recipes, err := service.ListRecipes(st)
			if err != nil {
				return err
			}
			for _, tag := range service.AllTags(recipes) {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		})
	},
}

func addRecipeFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&recipeName, "name", "", "Recipe name")
	cmd.Flags().StringVar(&recipeCategory, "category", "", "breakfast, lunch, dinner, or snack")
	cmd.Flags().Float64Var(&recipeServings, "servings", 1, "Number of servings the recipe makes")
	cmd.Flags().IntVar(&recipePrepMin, "prep", 0, "Prep time in minutes")
	cmd.Flags().IntVar(&recipeCookMin, "cook", 0, "Cook time in minutes")
	cmd.Flags().StringVar(&recipeTags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&recipeTips, "tips", "", "Free-form tips")
	cmd.Flags().Float64Var(&recipeCalories, "calories", 0, "Calories per serving")
	cmd.Flags().Float64Var(&recipeProtein, "protein", 0, "Protein per serving in grams")
	cmd.Flags().Float64Var(&recipeCarbs, "carbs", 0, "Carbs per serving in grams")
	cmd.Flags().Float64Var(&recipeFat, "fat", 0, "Fat per serving in grams")
	cmd.Flags().StringVar(&recipeIngredients, "ingredients", "", `Ingredients as a JSON array, e.g. [{"name":"Oats","quantity":50,"unit":"g"}]`)
	cmd.Flags().StringVar(&recipeInstructions, "instructions", "", "Semicolon-separated instruction steps")
}

func init() {
	addRecipeFieldFlags(recipeAddCmd)
	addRecipeFieldFlags(recipeUpdateCmd)

	recipeListCmd.Flags().StringVar(&listSearch, "search", "", "Substring match on name or tags")
	recipeListCmd.Flags().StringVar(&listCategory, "category", "all", "Category filter (all passes everything)")
	recipeListCmd.Flags().StringVar(&listTags, "tag", "", "Comma-separated tags; all must match")
	recipeListCmd.Flags().StringVar(&listSort, "sort", "name", "name, calories, protein, or created")
	recipeListCmd.Flags().StringVar(&listOrder, "order", "asc", "asc or desc")

	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeAddCmd, recipeListCmd, recipeShowCmd, recipeUpdateCmd, recipeDeleteCmd, recipeTagsCmd)
}
