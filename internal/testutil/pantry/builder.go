// Package pantry provides test infrastructure for seeding inventory items.
// It offers a fluent, type-safe API so tests describe a fridge by the food in
// it and how many days each item has left.
//
// Example usage:
//
//	items, err := pantry.NewBuilder(t, today).
//		WithBasicPantry().
//		WithItem(pantry.ItemChili, 0.5, 2).
//		Build(ctx, store)
package pantry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
)

// Builder provides a fluent interface for constructing test inventory.
type Builder interface {
	// WithItem adds an item with a quantity and the days left until it expires.
	WithItem(name ItemName, quantity float64, daysLeft int) Builder

	// WithItems adds several items with quantity 1 and a week of freshness.
	WithItems(names ...ItemName) Builder

	// WithBasicPantry adds the small everyday set used by most tests.
	WithBasicPantry() Builder

	// WithFixture adds the items of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Items returns the items without storing them.
	Items() Items

	// Build creates the items in the store and returns them with their ids.
	Build(ctx context.Context, store service.InventoryStore) (Items, error)
}

// ItemName represents a strongly-typed inventory item name.
type ItemName string

// String returns the string representation of the item name.
func (n ItemName) String() string {
	return string(n)
}

// Common item names used across tests.
const (
	ItemGarlic    ItemName = "Tỏi tươi"
	ItemChili     ItemName = "Ớt tươi"
	ItemEgg       ItemName = "Trứng gà"
	ItemScallion  ItemName = "Hành lá"
	ItemTomato    ItemName = "Cà chua"
	ItemPork      ItemName = "Thịt heo"
	ItemBeef      ItemName = "Thịt bò"
	ItemFishSauce ItemName = "Nước mắm"
	ItemMilk      ItemName = "Sữa tươi"
	ItemCarrot    ItemName = "Cà rốt"
	ItemSpinach   ItemName = "Rau muống"
	ItemTofu      ItemName = "Đậu phụ"
)

// defaults holds the unit, storage location and category of each known item.
var defaults = map[ItemName]struct {
	unit     string
	location string
	category string
}{
	ItemGarlic:    {"kg", "Ngăn mát", "Rau củ"},
	ItemChili:     {"kg", "Ngăn mát", "Rau củ"},
	ItemEgg:       {"quả", "Ngăn mát", "Trứng"},
	ItemScallion:  {"bó", "Ngăn mát", "Rau củ"},
	ItemTomato:    {"kg", "Ngăn mát", "Rau củ"},
	ItemPork:      {"kg", "Ngăn đông", "Thịt"},
	ItemBeef:      {"kg", "Ngăn đông", "Thịt"},
	ItemFishSauce: {"chai", "Tủ bếp", "Gia vị"},
	ItemMilk:      {"hộp", "Ngăn mát", "Sữa"},
	ItemCarrot:    {"kg", "Ngăn mát", "Rau củ"},
	ItemSpinach:   {"bó", "Ngăn mát", "Rau củ"},
	ItemTofu:      {"miếng", "Ngăn mát", "Đậu"},
}

// Items represents a collection of test inventory items.
type Items []model.InventoryItem

// Find returns the item with the given name, or nil if not found.
func (items Items) Find(name ItemName) *model.InventoryItem {
	for i := range items {
		if items[i].Name == name.String() {
			return &items[i]
		}
	}
	return nil
}

// MustFind returns the item with the given name, or fails the test if not found.
func (items Items) MustFind(t *testing.T, name ItemName) model.InventoryItem {
	t.Helper()
	item := items.Find(name)
	if item == nil {
		t.Fatalf("item %q not found in test data", name)
	}
	return *item
}

// Names returns all item names in build order.
func (items Items) Names() []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

type entry struct {
	name     ItemName
	quantity float64
	daysLeft int
}

// pantryBuilder implements the Builder interface.
type pantryBuilder struct {
	today   time.Time
	t       *testing.T
	entries []entry
}

// NewBuilder creates a builder whose expiry dates are relative to today.
func NewBuilder(t *testing.T, today time.Time) Builder {
	t.Helper()
	return &pantryBuilder{t: t, today: today}
}

func (b *pantryBuilder) WithItem(name ItemName, quantity float64, daysLeft int) Builder {
	for i := range b.entries {
		if b.entries[i].name == name {
			b.entries[i] = entry{name: name, quantity: quantity, daysLeft: daysLeft}
			return b
		}
	}
	b.entries = append(b.entries, entry{name: name, quantity: quantity, daysLeft: daysLeft})
	return b
}

func (b *pantryBuilder) WithItems(names ...ItemName) Builder {
	for _, name := range names {
		b.WithItem(name, 1, 7)
	}
	return b
}

func (b *pantryBuilder) WithBasicPantry() Builder {
	return b.WithFixture(FixtureBasic)
}

func (b *pantryBuilder) WithFixture(fixture Fixture) Builder {
	for _, e := range fixture.Entries() {
		b.WithItem(e.Name, e.Quantity, e.DaysLeft)
	}
	return b
}

func (b *pantryBuilder) Items() Items {
	y, m, d := b.today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, b.today.Location())

	items := make(Items, 0, len(b.entries))
	for _, e := range b.entries {
		item := model.InventoryItem{
			Name:            e.name.String(),
			Quantity:        e.quantity,
			Unit:            "cái",
			StorageLocation: "Ngăn mát",
			ExpiryDate:      midnight.AddDate(0, 0, e.daysLeft),
		}
		if def, ok := defaults[e.name]; ok {
			item.Unit = def.unit
			item.StorageLocation = def.location
			item.Category = def.category
		}
		items = append(items, item)
	}
	return items
}

func (b *pantryBuilder) Build(ctx context.Context, store service.InventoryStore) (Items, error) {
	b.t.Helper()

	planned := b.Items()
	result := make(Items, 0, len(planned))
	for _, item := range planned {
		created, err := store.CreateItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("failed to create item %q: %w", item.Name, err)
		}
		result = append(result, *created)
	}
	return result, nil
}
