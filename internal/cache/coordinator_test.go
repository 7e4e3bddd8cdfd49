package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/edit"
	"github.com/Veraticus/smartfood/internal/metrics"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/suggest"
	"github.com/Veraticus/smartfood/internal/testutil"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestCoordinator(t *testing.T, items []model.InventoryItem, recipes []model.Recipe) (*Coordinator, *testutil.FakeInventoryStore, *testutil.FakeRecipeStore, *fakeClock) {
	t.Helper()
	inv := testutil.NewFakeInventoryStore(items...)
	rec := testutil.NewFakeRecipeStore(recipes...)
	clock := &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}

	opts := DefaultOptions()
	opts.Now = clock.Now
	opts.Retry = service.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
	opts.RecipesTTL = time.Minute

	return NewCoordinator(inv, rec, nil, opts), inv, rec, clock
}

func tuongOt() model.Recipe {
	return testutil.Recipe("tuong-ot", "Tương ớt", "Tỏi tươi", "Ớt tươi")
}

func TestInventory_CachedWithinTTL(t *testing.T) {
	c, inv, _, clock := newTestCoordinator(t, []model.InventoryItem{{ID: "a", Name: "Tỏi tươi", Quantity: 2}}, nil)
	ctx := context.Background()

	first, err := c.Inventory(ctx)
	require.NoError(t, err)
	second, err := c.Inventory(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, 1, inv.CallCount(testutil.MethodListItems))

	clock.Advance(5 * time.Minute)
	third, err := c.Inventory(ctx)
	require.NoError(t, err)
	assert.Greater(t, third.Version, second.Version)
	assert.Equal(t, 2, inv.CallCount(testutil.MethodListItems))
}

func TestInventory_ZeroTTLAlwaysRefetches(t *testing.T) {
	inv := testutil.NewFakeInventoryStore()
	c := NewCoordinator(inv, testutil.NewFakeRecipeStore(), nil, Options{})

	for i := 0; i < 3; i++ {
		_, err := c.Inventory(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inv.CallCount(testutil.MethodListItems))
}

func TestInventory_RetriesTransientFailure(t *testing.T) {
	c, inv, _, _ := newTestCoordinator(t, nil, nil)
	inv.FailNext(testutil.MethodListItems, errors.New("connection refused"))

	_, err := c.Inventory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inv.CallCount(testutil.MethodListItems))
}

func TestInventory_FailurePropagates(t *testing.T) {
	c, inv, _, _ := newTestCoordinator(t, nil, nil)
	inv.FailNext(testutil.MethodListItems, errors.New("down"))
	inv.FailNext(testutil.MethodListItems, errors.New("still down"))

	_, err := c.Inventory(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.False(t, c.Marker(ResourceInventory).Cached)
}

func TestSuggestions_ScenarioA(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t,
		[]model.InventoryItem{{ID: "a", Name: "Tỏi tươi", Quantity: 2, Unit: "kg"}},
		[]model.Recipe{tuongOt()})

	result, err := c.Suggestions(context.Background(), suggest.MemberCapabilities)
	require.NoError(t, err)

	m, ok := result.Lookup("tuong-ot")
	require.True(t, ok)
	assert.Equal(t, []string{"Tỏi tươi"}, m.Available)
	assert.Equal(t, []string{"Ớt tươi"}, m.Missing)
	assert.Equal(t, []string{"tuong-ot"}, result.SmartSuggested)
	assert.Empty(t, result.CanMake)
}

func TestSuggestions_CachedPerInventoryVersion(t *testing.T) {
	c, inv, rec, _ := newTestCoordinator(t,
		[]model.InventoryItem{{ID: "a", Name: "Tỏi tươi", Quantity: 2}},
		[]model.Recipe{tuongOt()})
	ctx := context.Background()

	first, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)
	second, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inv.CallCount(testutil.MethodListItems))
	assert.Equal(t, 1, rec.CallCount(testutil.MethodListRecipes))
	assert.Equal(t, first.InventoryVersion, c.Marker(ResourceSuggestions).Version)
}

func TestSuggestions_DisabledWithoutCapability(t *testing.T) {
	c, inv, rec, _ := newTestCoordinator(t, nil, []model.Recipe{tuongOt()})

	result, err := c.Suggestions(context.Background(), suggest.AdminCapabilities)
	require.NoError(t, err)

	assert.True(t, result.Disabled)
	assert.Empty(t, inv.Calls())
	assert.Equal(t, 0, rec.CallCount(testutil.MethodListRecipes))
}

func TestSuggestions_RecomputedAfterInventoryMutation(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t,
		[]model.InventoryItem{{ID: "a", Name: "Tỏi tươi", Quantity: 2}},
		[]model.Recipe{tuongOt()})
	ctx := context.Background()
	store := c.InventoryStore()

	before, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)
	require.Empty(t, before.CanMake)

	_, err = store.CreateItem(ctx, model.InventoryItem{
		Name:            "Ớt tươi",
		Quantity:        1,
		Unit:            "kg",
		StorageLocation: "Ngăn mát",
		ExpiryDate:      time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	after, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)
	assert.Greater(t, after.InventoryVersion, before.InventoryVersion)
	assert.Equal(t, []string{"tuong-ot"}, after.CanMake)
}

// Every successful mutation must be visible to the next suggestion read, no
// matter which write path performed it.
func TestSuggestions_NeverUseSnapshotFromBeforeMutation(t *testing.T) {
	c, fake, _, _ := newTestCoordinator(t,
		[]model.InventoryItem{
			{ID: "garlic", Name: "Tỏi tươi", Quantity: 2},
			{ID: "chili", Name: "Ớt tươi", Quantity: 1},
		},
		[]model.Recipe{tuongOt()})
	ctx := context.Background()
	store := c.InventoryStore()
	editor := edit.New(fake, c)

	mutations := []struct {
		apply func() error
		name  string
	}{
		{name: "update through tracked store", apply: func() error {
			_, err := store.UpdateQuantity(ctx, "garlic", 1.5)
			return err
		}},
		{name: "edit session commit", apply: func() error {
			item, _ := fake.Item("garlic")
			if err := editor.Start(item); err != nil {
				return err
			}
			if err := editor.SetExact(3); err != nil {
				return err
			}
			_, err := editor.Commit(ctx)
			return err
		}},
		{name: "delete through tracked store", apply: func() error {
			return store.DeleteItem(ctx, "chili")
		}},
		{name: "edit session delete", apply: func() error {
			item, _ := fake.Item("garlic")
			if err := editor.Start(item); err != nil {
				return err
			}
			if _, err := editor.Adjust(-item.Quantity); err != nil {
				return err
			}
			_, err := editor.Commit(ctx)
			return err
		}},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			before, err := c.Suggestions(ctx, suggest.MemberCapabilities)
			require.NoError(t, err)
			listsBefore := fake.CallCount(testutil.MethodListItems)

			require.NoError(t, m.apply())

			after, err := c.Suggestions(ctx, suggest.MemberCapabilities)
			require.NoError(t, err)
			assert.Greater(t, after.InventoryVersion, before.InventoryVersion)
			assert.Equal(t, listsBefore+1, fake.CallCount(testutil.MethodListItems),
				"suggestions must read a snapshot fetched after the mutation")
		})
	}

	final, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)
	m, ok := final.Lookup("tuong-ot")
	require.True(t, ok)
	assert.Equal(t, []string{"Tỏi tươi", "Ớt tươi"}, m.Missing)
}

func TestFailedMutationKeepsCache(t *testing.T) {
	c, fake, _, _ := newTestCoordinator(t, []model.InventoryItem{{ID: "a", Name: "Tỏi tươi", Quantity: 2}}, nil)
	ctx := context.Background()

	_, err := c.Inventory(ctx)
	require.NoError(t, err)

	fake.FailNext(testutil.MethodUpdateQuantity, errors.New("boom"))
	_, err = c.InventoryStore().UpdateQuantity(ctx, "a", 1)
	require.Error(t, err)

	assert.True(t, c.Marker(ResourceInventory).Cached)
}

func TestRecipeMutationInvalidatesCatalogAndSuggestions(t *testing.T) {
	c, _, rec, _ := newTestCoordinator(t,
		[]model.InventoryItem{{ID: "a", Name: "Trứng gà", Quantity: 6}},
		[]model.Recipe{tuongOt()})
	ctx := context.Background()

	before, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)
	assert.Empty(t, before.CanMake)

	_, err = c.RecipeStore().CreateRecipe(ctx, testutil.Recipe("trung-luoc", "Trứng luộc", "Trứng gà"))
	require.NoError(t, err)
	assert.False(t, c.Marker(ResourceSuggestions).Cached)
	assert.False(t, c.Marker(ResourceRecipes).Cached)

	after, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)
	assert.Equal(t, []string{"trung-luoc"}, after.CanMake)
	assert.Equal(t, 2, rec.CallCount(testutil.MethodListRecipes))
}

func TestRecipes_CachedPerFilter(t *testing.T) {
	c, _, rec, _ := newTestCoordinator(t, nil, []model.Recipe{
		tuongOt(),
		{ID: "ca-kho", Name: "Cá kho", Difficulty: model.DifficultyHard},
	})
	ctx := context.Background()
	hard := service.RecipeFilter{Difficulty: model.DifficultyHard}

	all, err := c.Recipes(ctx, service.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := c.Recipes(ctx, hard)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "ca-kho", filtered[0].ID)

	_, err = c.Recipes(ctx, hard)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.CallCount(testutil.MethodListRecipes))
}

func TestInvalidationDuringFetchIsNotCached(t *testing.T) {
	inv := &blockingInventory{
		FakeInventoryStore: testutil.NewFakeInventoryStore(),
		entered:            make(chan struct{}),
		release:            make(chan struct{}),
	}
	c := NewCoordinator(inv, testutil.NewFakeRecipeStore(), nil, Options{InventoryTTL: time.Hour})

	done := make(chan InventorySnapshot, 1)
	go func() {
		snap, _ := c.Inventory(context.Background())
		done <- snap
	}()

	<-inv.entered
	c.InvalidateInventory()
	close(inv.release)
	<-done

	assert.False(t, c.Marker(ResourceInventory).Cached,
		"a fetch that raced an invalidation must not be served as fresh")
}

type blockingInventory struct {
	*testutil.FakeInventoryStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingInventory) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.FakeInventoryStore.ListItems(ctx)
}

func TestMetricsRecorded(t *testing.T) {
	recorder := metrics.New()
	inv := testutil.NewFakeInventoryStore()
	c := NewCoordinator(inv, testutil.NewFakeRecipeStore(), nil, Options{
		InventoryTTL: time.Hour,
		Metrics:      recorder,
	})
	ctx := context.Background()

	_, err := c.Inventory(ctx)
	require.NoError(t, err)
	_, err = c.Inventory(ctx)
	require.NoError(t, err)
	c.InvalidateInventory()

	count, err := promtest.GatherAndCount(recorder.Registry(), "fridge_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one hit and one miss series")

	count, err = promtest.GatherAndCount(recorder.Registry(), "fridge_cache_invalidations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClear(t *testing.T) {
	c, _, _, _ := newTestCoordinator(t, nil, []model.Recipe{tuongOt()})
	ctx := context.Background()

	_, err := c.Suggestions(ctx, suggest.MemberCapabilities)
	require.NoError(t, err)

	c.Clear()
	assert.False(t, c.Marker(ResourceInventory).Cached)
	assert.False(t, c.Marker(ResourceRecipes).Cached)
	assert.False(t, c.Marker(ResourceSuggestions).Cached)
}
