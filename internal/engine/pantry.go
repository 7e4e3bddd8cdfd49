// Package engine wires the expiry classifier, the cache coordinator, the
// suggestion aggregator and the quantity editor into one pantry service.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/smartfood/internal/cache"
	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/edit"
	"github.com/Veraticus/smartfood/internal/expiry"
	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/metrics"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/suggest"
)

// CategoryAll selects every category in an inventory filter.
const CategoryAll = "all"

// Pantry orchestrates the inventory view, suggestions and inline edits.
type Pantry struct {
	storage      service.Storage
	cache        *cache.Coordinator
	editor       *edit.Editor
	classifier   *expiry.Classifier
	capabilities suggest.Capabilities
}

// Config holds configuration options for the pantry.
type Config struct {
	Clock        service.Clock
	Source       service.SuggestionSource
	Metrics      *metrics.Recorder
	Capabilities suggest.Capabilities
	Cache        cache.Options
}

// DefaultConfig returns the default configuration for a household member.
func DefaultConfig() Config {
	return Config{
		Clock:        service.SystemClock,
		Capabilities: suggest.MemberCapabilities,
		Cache:        cache.DefaultOptions(),
	}
}

// New creates a pantry with the default configuration.
func New(storage service.Storage) *Pantry {
	return NewWithConfig(storage, DefaultConfig())
}

// NewWithConfig creates a pantry with custom configuration.
func NewWithConfig(storage service.Storage, config Config) *Pantry {
	if config.Cache.Metrics == nil {
		config.Cache.Metrics = config.Metrics
	}
	coordinator := cache.NewCoordinator(storage, storage, config.Source, config.Cache)

	return &Pantry{
		storage:      storage,
		cache:        coordinator,
		editor:       edit.New(storage, coordinator, edit.WithMetrics(config.Metrics)),
		classifier:   expiry.NewClassifier(config.Clock),
		capabilities: config.Capabilities,
	}
}

// ItemView is an inventory item with its expiry classification.
type ItemView struct {
	Item          model.InventoryItem
	Urgency       model.Urgency
	DaysRemaining int
}

// InventoryView is one rendering of the inventory list.
type InventoryView struct {
	UpdatedAt time.Time
	Items     []ItemView
	Summary   model.ExpirySummary // Counts over the whole inventory, not just the filtered items
	Version   uint64
}

// Inventory returns the inventory narrowed by filter, with each item classified.
// When the underlying list was replaced by a fresh fetch newer than the
// snapshot an open edit session was started on, that session is discarded
// unless it is saving or holding a failed commit.
func (p *Pantry) Inventory(ctx context.Context, filter model.InventoryFilter) (*InventoryView, error) {
	snap, err := p.cache.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	p.observeVersion(snap.Version)

	items := FilterItems(snap.Items, filter)
	view := &InventoryView{
		Items:     make([]ItemView, 0, len(items)),
		Summary:   p.classifier.Summarize(snap.Items),
		Version:   snap.Version,
		UpdatedAt: snap.UpdatedAt,
	}
	for _, item := range items {
		urgency, days := p.classifier.Classify(item)
		view.Items = append(view.Items, ItemView{Item: item, Urgency: urgency, DaysRemaining: days})
	}
	return view, nil
}

func (p *Pantry) observeVersion(version uint64) {
	if p.editor.Refreshed(version) {
		slog.Debug("inventory list replaced, open edit discarded", "version", version)
	}
}

// Refresh drops the cached inventory and fetches it again.
func (p *Pantry) Refresh(ctx context.Context) (*InventoryView, error) {
	p.cache.MarkStale(cache.ResourceInventory)
	return p.Inventory(ctx, model.InventoryFilter{})
}

// FilterItems returns the items whose folded name contains the search text
// and whose category matches. An empty or "all" category matches every item.
func FilterItems(items []model.InventoryItem, filter model.InventoryFilter) []model.InventoryItem {
	search := matcher.NormalizeName(filter.Search)
	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, CategoryAll) {
		category = ""
	}

	out := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if search != "" && !strings.Contains(matcher.NormalizeName(item.Name), search) {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the distinct categories present in the inventory, in
// first-seen order.
func (p *Pantry) Categories(ctx context.Context) ([]string, error) {
	snap, err := p.cache.Inventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	seen := make(map[string]struct{})
	var categories []string
	for _, item := range snap.Items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories, nil
}

// AddItem stores a new inventory item.
func (p *Pantry) AddItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	created, err := p.cache.InventoryStore().CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to add %q: %w", item.Name, err)
	}
	slog.Info("Added inventory item", "id", created.ID, "name", created.Name, "quantity", created.Quantity)
	return created, nil
}

// DeleteItem removes an inventory item.
func (p *Pantry) DeleteItem(ctx context.Context, id string) error {
	if err := p.cache.InventoryStore().DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	slog.Info("Deleted inventory item", "id", id)
	return nil
}

// FindItem returns the item with id from the current inventory snapshot.
func (p *Pantry) FindItem(ctx context.Context, id string) (model.InventoryItem, error) {
	item, _, err := p.findItem(ctx, id)
	return item, err
}

// findItem also returns the version of the snapshot the item was read from.
func (p *Pantry) findItem(ctx context.Context, id string) (model.InventoryItem, uint64, error) {
	snap, err := p.cache.Inventory(ctx)
	if err != nil {
		return model.InventoryItem{}, 0, fmt.Errorf("failed to load inventory: %w", err)
	}
	for _, item := range snap.Items {
		if item.ID == id {
			return item, snap.Version, nil
		}
	}
	return model.InventoryItem{}, 0, fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
}

// StartEdit opens the inline editor on the item with id. The session is
// tagged with the snapshot the item was read from.
func (p *Pantry) StartEdit(ctx context.Context, id string) error {
	item, version, err := p.findItem(ctx, id)
	if err != nil {
		return err
	}
	return p.editor.StartAt(item, version)
}

// Editor returns the single inline quantity editor of the inventory view.
func (p *Pantry) Editor() *edit.Editor {
	return p.editor
}

// Suggestions returns the recipe suggestions for the current inventory.
func (p *Pantry) Suggestions(ctx context.Context) (suggest.Result, error) {
	result, err := p.cache.Suggestions(ctx, p.capabilities)
	if err != nil {
		return suggest.Result{}, fmt.Errorf("failed to compute suggestions: %w", err)
	}
	return result, nil
}

// Recipes returns the catalog narrowed by filter.
func (p *Pantry) Recipes(ctx context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	recipes, err := p.cache.Recipes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return recipes, nil
}

// Recipe returns one recipe of the catalog.
func (p *Pantry) Recipe(ctx context.Context, id string) (*model.Recipe, error) {
	return p.storage.GetRecipe(ctx, id)
}

// RecipeStore returns the recipe store whose mutations refresh the catalog
// and the suggestions.
func (p *Pantry) RecipeStore() service.RecipeStore {
	return p.cache.RecipeStore()
}

// Stats are the counts shown on the summary cards.
type Stats struct {
	Expiry      model.ExpirySummary
	Suggestions model.SuggestionSummary
	// SuggestionsDisabled is set when the user may not compute suggestions.
	SuggestionsDisabled bool
}

// Stats returns the inventory and suggestion counts.
func (p *Pantry) Stats(ctx context.Context) (Stats, error) {
	view, err := p.Inventory(ctx, model.InventoryFilter{})
	if err != nil {
		return Stats{}, err
	}
	result, err := p.Suggestions(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Expiry:              view.Summary,
		Suggestions:         result.Summary,
		SuggestionsDisabled: result.Disabled,
	}, nil
}

// Coordinator exposes the cache coordinator.
func (p *Pantry) Coordinator() *cache.Coordinator {
	return p.cache
}
