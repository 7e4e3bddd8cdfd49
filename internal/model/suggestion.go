package model

// MatchResult partitions one recipe's requirements into those present in the
// inventory and those that are not. Both lists keep the recipe's ingredient order.
type MatchResult struct {
	RecipeID   string
	RecipeName string
	Available  []string
	Missing    []string
}

// CanMake reports whether every requirement of the recipe is available.
func (m MatchResult) CanMake() bool {
	return len(m.Missing) == 0
}

// SuggestionSummary holds the derived counts shown on the recipe summary cards.
type SuggestionSummary struct {
	CanMake        int
	SmartSuggested int // Includes the can-make recipes
	Total          int
}
