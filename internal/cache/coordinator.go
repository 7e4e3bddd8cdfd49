// Package cache coordinates the freshness of the inventory, the recipe catalog
// and the suggestion results derived from them.
//
// Every inventory fetch is tagged with a version number. Suggestion results are
// cached under the inventory version they were computed from, so a successful
// inventory mutation, which drops the cached inventory, forces the next
// suggestion read to recompute against a fresh snapshot without the two
// resources being fetched by the same code path.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/metrics"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/suggest"
)

// Resource names a cached resource.
type Resource string

// Cached resources.
const (
	ResourceInventory   Resource = "inventory"
	ResourceRecipes     Resource = "recipes"
	ResourceSuggestions Resource = "suggestions"
)

// Options configures a Coordinator. A TTL of zero means the resource is stale
// as soon as it is fetched and every read refetches it.
type Options struct {
	Now            func() time.Time
	Metrics        *metrics.Recorder
	Retry          service.RetryOptions
	InventoryTTL   time.Duration
	RecipesTTL     time.Duration
	SuggestionsTTL time.Duration
}

// DefaultOptions returns the freshness windows used by the application.
func DefaultOptions() Options {
	return Options{
		InventoryTTL:   5 * time.Minute,
		SuggestionsTTL: 10 * time.Minute,
		Retry:          common.DefaultRetryOptions(),
	}
}

// InventorySnapshot is one immutable fetch of the inventory.
type InventorySnapshot struct {
	UpdatedAt time.Time
	Items     []model.InventoryItem
	Version   uint64
}

// Marker describes the freshness of a resource. For suggestions, Version is
// the inventory version the cached result was computed from.
type Marker struct {
	UpdatedAt time.Time
	Version   uint64
	Cached    bool
}

type inventoryEntry struct {
	snapshot InventorySnapshot
}

type recipesEntry struct {
	fetchedAt time.Time
	recipes   []model.Recipe
}

type suggestionEntry struct {
	fetchedAt        time.Time
	result           suggest.Result
	inventoryVersion uint64
}

// Coordinator caches the three resources and keeps them consistent.
type Coordinator struct {
	inventoryStore service.InventoryStore
	recipeStore    service.RecipeStore
	source         service.SuggestionSource
	inventory      *inventoryEntry
	recipes        map[service.RecipeFilter]*recipesEntry
	suggestions    *suggestionEntry
	opts           Options

	// Generations advance on every invalidation. A fetch that started under
	// an older generation returns its data but never stores it.
	inventoryGen   uint64
	recipesGen     uint64
	suggestionsGen uint64

	inventoryVersion uint64
	recipesVersion   uint64
	recipesUpdatedAt time.Time
	mu               sync.Mutex
}

// NewCoordinator creates a coordinator reading through the given stores and
// computing suggestions with source.
func NewCoordinator(inventory service.InventoryStore, recipes service.RecipeStore, source service.SuggestionSource, opts Options) *Coordinator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if source == nil {
		source = suggest.NewLocalSource()
	}
	return &Coordinator{
		inventoryStore: inventory,
		recipeStore:    recipes,
		source:         source,
		recipes:        make(map[service.RecipeFilter]*recipesEntry),
		opts:           opts,
	}
}

// fresh reports whether data fetched at fetchedAt is still within ttl. Callers hold mu.
func (c *Coordinator) fresh(fetchedAt time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return c.opts.Now().Sub(fetchedAt) < ttl
}

// Inventory returns the cached inventory snapshot, fetching it when missing or stale.
func (c *Coordinator) Inventory(ctx context.Context) (InventorySnapshot, error) {
	c.mu.Lock()
	if e := c.inventory; e != nil && c.fresh(e.snapshot.UpdatedAt, c.opts.InventoryTTL) {
		snap := e.snapshot
		c.mu.Unlock()
		c.opts.Metrics.CacheLookup(string(ResourceInventory), true)
		return snap, nil
	}
	gen := c.inventoryGen
	c.mu.Unlock()
	c.opts.Metrics.CacheLookup(string(ResourceInventory), false)

	start := time.Now()
	var items []model.InventoryItem
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		items, fetchErr = c.inventoryStore.ListItems(ctx)
		return fetchErr
	}, c.opts.Retry)
	if err != nil {
		return InventorySnapshot{}, err
	}
	c.opts.Metrics.ObserveFetch(string(ResourceInventory), time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inventoryVersion++
	snap := InventorySnapshot{
		Items:     items,
		Version:   c.inventoryVersion,
		UpdatedAt: c.opts.Now(),
	}
	if gen == c.inventoryGen {
		c.inventory = &inventoryEntry{snapshot: snap}
	} else {
		slog.Debug("inventory invalidated during fetch, not caching", "version", snap.Version)
	}
	return snap, nil
}

// Recipes returns the catalog narrowed by filter, fetching it when missing or stale.
func (c *Coordinator) Recipes(ctx context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	c.mu.Lock()
	if e, ok := c.recipes[filter]; ok && c.fresh(e.fetchedAt, c.opts.RecipesTTL) {
		recipes := e.recipes
		c.mu.Unlock()
		c.opts.Metrics.CacheLookup(string(ResourceRecipes), true)
		return recipes, nil
	}
	gen := c.recipesGen
	c.mu.Unlock()
	c.opts.Metrics.CacheLookup(string(ResourceRecipes), false)

	start := time.Now()
	var recipes []model.Recipe
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		recipes, fetchErr = c.recipeStore.ListRecipes(ctx, filter)
		return fetchErr
	}, c.opts.Retry)
	if err != nil {
		return nil, err
	}
	c.opts.Metrics.ObserveFetch(string(ResourceRecipes), time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.opts.Now()
	if gen == c.recipesGen {
		c.recipes[filter] = &recipesEntry{recipes: recipes, fetchedAt: now}
	}
	if filter.IsZero() {
		c.recipesVersion++
		c.recipesUpdatedAt = now
	}
	return recipes, nil
}

// Suggestions returns the suggestion result for the current inventory.
//
// Without the ComputeSuggestions capability nothing is fetched and a disabled
// result is returned. Otherwise the inventory is read first, and a cached
// result is reused only if it was computed from that same inventory version.
func (c *Coordinator) Suggestions(ctx context.Context, caps suggest.Capabilities) (suggest.Result, error) {
	if !caps.ComputeSuggestions {
		return suggest.DisabledResult(), nil
	}

	inv, err := c.Inventory(ctx)
	if err != nil {
		return suggest.Result{}, err
	}

	c.mu.Lock()
	if e := c.suggestions; e != nil &&
		e.inventoryVersion == inv.Version &&
		c.fresh(e.fetchedAt, c.opts.SuggestionsTTL) {
		result := e.result
		c.mu.Unlock()
		c.opts.Metrics.CacheLookup(string(ResourceSuggestions), true)
		return result, nil
	}
	gen := c.suggestionsGen
	c.mu.Unlock()
	c.opts.Metrics.CacheLookup(string(ResourceSuggestions), false)

	catalog, err := c.Recipes(ctx, service.RecipeFilter{})
	if err != nil {
		return suggest.Result{}, err
	}

	start := time.Now()
	matches, err := c.source.ComputeSuggestions(ctx, catalog, inv.Items)
	if err != nil {
		return suggest.Result{}, err
	}
	result := suggest.Summarize(matches)
	result.InventoryVersion = inv.Version
	c.opts.Metrics.ObserveFetch(string(ResourceSuggestions), time.Since(start))

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.suggestionsGen {
		c.suggestions = &suggestionEntry{
			result:           result,
			inventoryVersion: inv.Version,
			fetchedAt:        c.opts.Now(),
		}
	}

	slog.Debug("suggestions recomputed",
		"inventory_version", inv.Version,
		"recipes", len(catalog),
		"smart", result.Summary.SmartSuggested,
		"can_make", result.Summary.CanMake)
	return result, nil
}

// MarkStale drops a cached resource so the next read refetches it.
// Marking the catalog stale also drops the suggestions computed from it.
func (c *Coordinator) MarkStale(resource Resource) {
	c.mu.Lock()
	switch resource {
	case ResourceInventory:
		c.inventoryGen++
		c.inventory = nil
	case ResourceRecipes:
		c.recipesGen++
		c.recipes = make(map[service.RecipeFilter]*recipesEntry)
		c.suggestionsGen++
		c.suggestions = nil
	case ResourceSuggestions:
		c.suggestionsGen++
		c.suggestions = nil
	}
	c.mu.Unlock()

	c.opts.Metrics.Invalidated(string(resource))
	slog.Debug("resource marked stale", "resource", resource)
}

// InvalidateInventory marks the inventory stale after a successful mutation.
func (c *Coordinator) InvalidateInventory() {
	c.MarkStale(ResourceInventory)
}

// Marker returns the freshness marker of a resource.
func (c *Coordinator) Marker(resource Resource) Marker {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch resource {
	case ResourceInventory:
		if c.inventory == nil {
			return Marker{Version: c.inventoryVersion}
		}
		return Marker{
			Version:   c.inventory.snapshot.Version,
			UpdatedAt: c.inventory.snapshot.UpdatedAt,
			Cached:    true,
		}
	case ResourceRecipes:
		_, cached := c.recipes[service.RecipeFilter{}]
		return Marker{Version: c.recipesVersion, UpdatedAt: c.recipesUpdatedAt, Cached: cached}
	case ResourceSuggestions:
		if c.suggestions == nil {
			return Marker{}
		}
		return Marker{
			Version:   c.suggestions.inventoryVersion,
			UpdatedAt: c.suggestions.fetchedAt,
			Cached:    true,
		}
	}
	return Marker{}
}

// Clear drops every cached resource.
func (c *Coordinator) Clear() {
	c.MarkStale(ResourceInventory)
	c.MarkStale(ResourceRecipes)
}
