package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nutriplan/nutriplan-cli/internal/model"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCalories SortKey = "calories"
	SortByProtein  SortKey = "protein"
	SortByCreated  SortKey = "created"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// RecipeFilter is a snapshot of the active filter controls. Zero values mean
// "no filtering" for each stage.
type RecipeFilter struct {
	// Search matches case-insensitively against a recipe's name or any tag.
	Search string
	// Category keeps only matching recipes; "" and "all" pass everything.
	Category string
	// Tags requires every listed tag to be present (AND semantics).
	Tags []string
}

type RecipeSort struct {
	Key   SortKey
	Order SortOrder
}

// QueryRecipes applies the filter then the sort to a snapshot of the recipe
// collection. It never errors: empty input yields empty output.
func QueryRecipes(recipes []model.Recipe, filter RecipeFilter, sortBy RecipeSort) []model.Recipe {
	return SortRecipes(FilterRecipes(recipes, filter), sortBy)
}

// FilterRecipes ANDs the three filter stages: category equality, substring
// search over name/tags, and all-of tag membership.
func FilterRecipes(recipes []model.Recipe, filter RecipeFilter) []model.Recipe {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)

	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if category != "" && category != "all" && string(r.Category) != category {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAllTags(r, filter.Tags) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r model.Recipe, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(r.Name), loweredQuery) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), loweredQuery) {
			return true
		}
	}
	return false
}

func hasAllTags(r model.Recipe, tags []string) bool {
	for _, want := range tags {
		found := false
		for _, tag := range r.Tags {
			if tag == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SortRecipes returns a stably sorted copy; equal-key recipes keep their
// input order. Name comparison is locale-aware.
func SortRecipes(recipes []model.Recipe, sortBy RecipeSort) []model.Recipe {
	out := make([]model.Recipe, len(recipes))
	copy(out, recipes)

	var less func(a, b model.Recipe) bool
	switch sortBy.Key {
	case SortByCalories:
		less = func(a, b model.Recipe) bool { return a.CaloriesPerServing < b.CaloriesPerServing }
	case SortByProtein:
		less = func(a, b model.Recipe) bool { return a.ProteinPerServingG < b.ProteinPerServingG }
	case SortByCreated:
		less = func(a, b model.Recipe) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		coll := collate.New(language.Und)
		less = func(a, b model.Recipe) bool { return coll.CompareString(a.Name, b.Name) < 0 }
	}

	sort.SliceStable(out, func(i, j int) bool {
		if sortBy.Order == OrderDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// AllTags collects the distinct tags of the full, unfiltered collection:
// case-sensitive, deduplicated, lexicographically sorted. It feeds the
// tag-filter controls and is unaffected by the active filters.
func AllTags(recipes []model.Recipe) []string {
	seen := map[string]bool{}
	tags := make([]string, 0)
	for _, r := range recipes {
		for _, tag := range r.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
