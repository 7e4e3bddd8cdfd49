// Package suggest aggregates per-recipe match results into suggestion buckets.
package suggest

import (
	"context"
	"slices"

	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/model"
)

// SmartMaxMissing is the largest number of missing ingredients a recipe may
// have and still be suggested.
const SmartMaxMissing = 2

// Capabilities says which suggestion computations the caller may run.
type Capabilities struct {
	ComputeSuggestions bool
}

// MemberCapabilities is granted to household members who cook from the catalog.
var MemberCapabilities = Capabilities{ComputeSuggestions: true}

// AdminCapabilities is granted to catalog administrators, who do not get suggestions.
var AdminCapabilities = Capabilities{}

// Result is the aggregated suggestion data for one catalog and inventory pair.
type Result struct {
	ByRecipe         map[string]model.MatchResult
	Matches          []model.MatchResult // Catalog order
	CanMake          []string            // Recipe ids, catalog order
	SmartSuggested   []string            // Recipe ids, catalog order; superset of CanMake
	Summary          model.SuggestionSummary
	InventoryVersion uint64
	Disabled         bool
}

// Lookup returns the match result of a recipe, if one was computed.
func (r Result) Lookup(recipeID string) (model.MatchResult, bool) {
	m, ok := r.ByRecipe[recipeID]
	return m, ok
}

// DisabledResult returns the empty result handed to callers without the capability.
func DisabledResult() Result {
	return Result{
		ByRecipe: map[string]model.MatchResult{},
		Disabled: true,
	}
}

// Summarize derives the can-make and smart-suggested buckets from results.
func Summarize(results []model.MatchResult) Result {
	out := Result{
		ByRecipe:       make(map[string]model.MatchResult, len(results)),
		Matches:        slices.Clone(results),
		CanMake:        []string{},
		SmartSuggested: []string{},
	}

	for _, m := range results {
		out.ByRecipe[m.RecipeID] = m
		if len(m.Missing) <= SmartMaxMissing {
			out.SmartSuggested = append(out.SmartSuggested, m.RecipeID)
		}
		if m.CanMake() {
			out.CanMake = append(out.CanMake, m.RecipeID)
		}
	}

	out.Summary = model.SuggestionSummary{
		CanMake:        len(out.CanMake),
		SmartSuggested: len(out.SmartSuggested),
		Total:          len(results),
	}
	return out
}

// Aggregate matches every recipe of the catalog against the snapshot.
// It is pure: the same catalog and snapshot always give the same result.
func Aggregate(catalog []model.Recipe, inventory *matcher.Snapshot) Result {
	results := make([]model.MatchResult, 0, len(catalog))
	for _, recipe := range catalog {
		results = append(results, matcher.Match(recipe, inventory))
	}
	out := Summarize(results)
	out.InventoryVersion = inventory.Version()
	return out
}

// LocalSource computes suggestions in process.
type LocalSource struct{}

// NewLocalSource creates a suggestion source backed by the local matcher.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

// ComputeSuggestions implements service.SuggestionSource.
func (LocalSource) ComputeSuggestions(_ context.Context, catalog []model.Recipe, inventory []model.InventoryItem) ([]model.MatchResult, error) {
	return Aggregate(catalog, matcher.NewSnapshot(inventory, 0)).Matches, nil
}
