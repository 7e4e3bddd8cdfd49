// Package matcher partitions recipe requirements by presence in the inventory.
package matcher

import (
	"strings"

	"github.com/Veraticus/smartfood/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the key used to compare ingredient and item names:
// trimmed, NFC-composed and case-folded. No other fuzziness is applied.
func NormalizeName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(trimmed))
}

// Snapshot is an immutable view of the inventory names at one point in time.
type Snapshot struct {
	names   map[string]struct{}
	version uint64
}

// NewSnapshot indexes the names of items. The version tags the inventory
// fetch the snapshot was built from.
func NewSnapshot(items []model.InventoryItem, version uint64) *Snapshot {
	s := &Snapshot{
		names:   make(map[string]struct{}, len(items)),
		version: version,
	}
	for _, item := range items {
		key := NormalizeName(item.Name)
		if key == "" {
			continue
		}
		s.names[key] = struct{}{}
	}
	return s
}

// Has reports whether an item with the given name is present.
func (s *Snapshot) Has(name string) bool {
	if s == nil {
		return false
	}
	key := NormalizeName(name)
	if key == "" {
		return false
	}
	_, ok := s.names[key]
	return ok
}

// Version returns the inventory version the snapshot was built from.
func (s *Snapshot) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// Len returns the number of distinct item names.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

// Match evaluates one recipe against the snapshot. A requirement is available
// when an item with the same normalized name exists; quantities and units are
// not compared. Both returned lists keep the recipe's ingredient order.
func Match(recipe model.Recipe, inventory *Snapshot) model.MatchResult {
	result := model.MatchResult{
		RecipeID:   recipe.ID,
		RecipeName: recipe.Name,
		Available:  make([]string, 0, len(recipe.Ingredients)),
		Missing:    make([]string, 0, len(recipe.Ingredients)),
	}

	for _, req := range recipe.Ingredients {
		if inventory.Has(req.Name) {
			result.Available = append(result.Available, req.Name)
		} else {
			result.Missing = append(result.Missing, req.Name)
		}
	}

	return result
}
