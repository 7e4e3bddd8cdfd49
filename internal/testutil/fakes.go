package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
)

// Store method names recorded by the fakes.
const (
	MethodListItems      = "ListItems"
	MethodCreateItem     = "CreateItem"
	MethodUpdateQuantity = "UpdateQuantity"
	MethodDeleteItem     = "DeleteItem"
	MethodListRecipes    = "ListRecipes"
	MethodCreateRecipe   = "CreateRecipe"
	MethodUpdateRecipe   = "UpdateRecipe"
	MethodDeleteRecipe   = "DeleteRecipe"
)

// Call records one store invocation.
type Call struct {
	Method   string
	ID       string
	Quantity float64
}

// callLog is shared bookkeeping for the fakes.
type callLog struct {
	failures map[string][]error
	calls    []Call
}

func (l *callLog) record(c Call) error {
	l.calls = append(l.calls, c)
	queue := l.failures[c.Method]
	if len(queue) == 0 {
		return nil
	}
	err := queue[0]
	l.failures[c.Method] = queue[1:]
	return err
}

func (l *callLog) fail(method string, err error) {
	if l.failures == nil {
		l.failures = make(map[string][]error)
	}
	l.failures[method] = append(l.failures[method], err)
}

func (l *callLog) count(method string) int {
	n := 0
	for _, c := range l.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// FakeInventoryStore is an in-memory service.InventoryStore that records
// every call and can be told to fail the next calls of a method.
type FakeInventoryStore struct {
	items map[string]model.InventoryItem

	// WriteHook, when set, runs at the start of UpdateQuantity and DeleteItem
	// without the store lock held. Tests use it to hold a commit in flight.
	WriteHook func(ctx context.Context)

	log    callLog
	order  []string
	nextID int
	mu     sync.Mutex
}

var _ service.InventoryStore = (*FakeInventoryStore)(nil)

// NewFakeInventoryStore creates a fake seeded with items. Items without an id
// are assigned one.
func NewFakeInventoryStore(items ...model.InventoryItem) *FakeInventoryStore {
	f := &FakeInventoryStore{items: make(map[string]model.InventoryItem)}
	for _, item := range items {
		f.put(item)
	}
	return f
}

func (f *FakeInventoryStore) put(item model.InventoryItem) model.InventoryItem {
	if item.ID == "" {
		f.nextID++
		item.ID = fmt.Sprintf("item-%d", f.nextID)
	}
	if _, exists := f.items[item.ID]; !exists {
		f.order = append(f.order, item.ID)
	}
	f.items[item.ID] = item
	return item
}

func (f *FakeInventoryStore) remove(id string) {
	delete(f.items, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// FailNext makes the next call of method return err. Calls queue up.
func (f *FakeInventoryStore) FailNext(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log.fail(method, err)
}

// Calls returns every recorded call in order.
func (f *FakeInventoryStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.log.calls...)
}

// CallCount returns how often method was called.
func (f *FakeInventoryStore) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.log.count(method)
}

// WriteCount returns the number of create, update and delete calls.
func (f *FakeInventoryStore) WriteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.log.count(MethodCreateItem) + f.log.count(MethodUpdateQuantity) + f.log.count(MethodDeleteItem)
}

// Item returns the stored item with id.
func (f *FakeInventoryStore) Item(id string) (model.InventoryItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	return item, ok
}

// ListItems implements service.InventoryStore.
func (f *FakeInventoryStore) ListItems(_ context.Context) ([]model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodListItems}); err != nil {
		return nil, err
	}
	items := make([]model.InventoryItem, 0, len(f.order))
	for _, id := range f.order {
		items = append(items, f.items[id])
	}
	return items, nil
}

// CreateItem implements service.InventoryStore.
func (f *FakeInventoryStore) CreateItem(_ context.Context, item model.InventoryItem) (*model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodCreateItem, Quantity: item.Quantity}); err != nil {
		return nil, err
	}
	if strings.TrimSpace(item.Name) == "" {
		return nil, common.NewValidationError("name", "required")
	}
	if item.Quantity <= 0 {
		return nil, common.NewValidationError("quantity", "must be greater than zero")
	}
	if item.Category == "" {
		item.Category = model.DefaultCategory
	}
	item.ID = ""
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := f.put(item)
	return &stored, nil
}

// UpdateQuantity implements service.InventoryStore. A zero quantity deletes.
func (f *FakeInventoryStore) UpdateQuantity(ctx context.Context, id string, quantity float64) (*model.InventoryItem, error) {
	if f.WriteHook != nil {
		f.WriteHook(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodUpdateQuantity, ID: id, Quantity: quantity}); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, common.NewValidationError("quantity", "must not be negative")
	}
	item, ok := f.items[id]
	if !ok {
		return nil, fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
	}
	if quantity == 0 {
		f.remove(id)
		return nil, nil
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	f.items[id] = item
	return &item, nil
}

// DeleteItem implements service.InventoryStore.
func (f *FakeInventoryStore) DeleteItem(ctx context.Context, id string) error {
	if f.WriteHook != nil {
		f.WriteHook(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodDeleteItem, ID: id}); err != nil {
		return err
	}
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("inventory item %s: %w", id, common.ErrNotFound)
	}
	f.remove(id)
	return nil
}

// FakeRecipeStore is an in-memory service.RecipeStore that records calls.
type FakeRecipeStore struct {
	log     callLog
	recipes []model.Recipe
	nextID  int
	mu      sync.Mutex
}

var _ service.RecipeStore = (*FakeRecipeStore)(nil)

// NewFakeRecipeStore creates a fake holding recipes in catalog order.
func NewFakeRecipeStore(recipes ...model.Recipe) *FakeRecipeStore {
	f := &FakeRecipeStore{}
	for _, r := range recipes {
		f.recipes = append(f.recipes, f.withID(r))
	}
	return f
}

func (f *FakeRecipeStore) withID(r model.Recipe) model.Recipe {
	if r.ID == "" {
		f.nextID++
		r.ID = fmt.Sprintf("recipe-%d", f.nextID)
	}
	return r
}

// FailNext makes the next call of method return err.
func (f *FakeRecipeStore) FailNext(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log.fail(method, err)
}

// CallCount returns how often method was called.
func (f *FakeRecipeStore) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.log.count(method)
}

// ListRecipes implements service.RecipeStore.
func (f *FakeRecipeStore) ListRecipes(_ context.Context, filter service.RecipeFilter) ([]model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodListRecipes}); err != nil {
		return nil, err
	}
	search := matcher.NormalizeName(filter.Search)
	out := []model.Recipe{}
	for _, r := range f.recipes {
		if filter.Difficulty != "" && r.Difficulty != filter.Difficulty {
			continue
		}
		if search != "" && !strings.Contains(matcher.NormalizeName(r.Name), search) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// CreateRecipe implements service.RecipeStore.
func (f *FakeRecipeStore) CreateRecipe(_ context.Context, recipe model.Recipe) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodCreateRecipe}); err != nil {
		return nil, err
	}
	recipe = f.withID(recipe)
	f.recipes = append(f.recipes, recipe)
	return &recipe, nil
}

// UpdateRecipe implements service.RecipeStore.
func (f *FakeRecipeStore) UpdateRecipe(_ context.Context, recipe model.Recipe) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodUpdateRecipe, ID: recipe.ID}); err != nil {
		return nil, err
	}
	for i := range f.recipes {
		if f.recipes[i].ID == recipe.ID {
			f.recipes[i] = recipe
			return &recipe, nil
		}
	}
	return nil, fmt.Errorf("recipe %s: %w", recipe.ID, common.ErrNotFound)
}

// DeleteRecipe implements service.RecipeStore.
func (f *FakeRecipeStore) DeleteRecipe(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.log.record(Call{Method: MethodDeleteRecipe, ID: id}); err != nil {
		return err
	}
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("recipe %s: %w", id, common.ErrNotFound)
}
