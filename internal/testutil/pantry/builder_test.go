package pantry_test

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/smartfood/internal/expiry"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/testutil"
	"github.com/Veraticus/smartfood/internal/testutil/pantry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local)

func TestBuilder_WithItem(t *testing.T) {
	db := testutil.SetupTestDB(t)

	items, err := pantry.NewBuilder(t, today).
		WithItem(pantry.ItemGarlic, 2, 4).
		Build(context.Background(), db.Storage)
	require.NoError(t, err)

	garlic := items.MustFind(t, pantry.ItemGarlic)
	assert.NotEmpty(t, garlic.ID)
	assert.Equal(t, "kg", garlic.Unit)
	assert.Equal(t, 4, expiry.DaysRemaining(garlic.ExpiryDate, today))
	assert.Len(t, db.MustListItems(), 1)
}

func TestBuilder_WithItemReplacesEarlierEntry(t *testing.T) {
	items := pantry.NewBuilder(t, today).
		WithItems(pantry.ItemEgg, pantry.ItemTomato).
		WithItem(pantry.ItemEgg, 6, 1).
		Items()

	assert.Equal(t, []string{"Trứng gà", "Cà chua"}, items.Names())
	assert.InDelta(t, 6, items.MustFind(t, pantry.ItemEgg).Quantity, 0)
}

func TestFixtureExpiryLadder(t *testing.T) {
	items := pantry.NewBuilder(t, today).WithFixture(pantry.FixtureExpiryLadder).Items()
	classifier := expiry.NewClassifier(service.ClockFunc(func() time.Time { return today }))

	var got []model.Urgency
	for _, item := range items {
		u, _ := classifier.Classify(item)
		got = append(got, u)
	}
	assert.Equal(t, []model.Urgency{
		model.UrgencyExpired,
		model.UrgencyDueToday,
		model.UrgencyCritical,
		model.UrgencySoon,
		model.UrgencyFresh,
	}, got)
}

func TestBuilder_BuildIntoFake(t *testing.T) {
	store := testutil.NewFakeInventoryStore()

	items, err := pantry.NewBuilder(t, today).WithBasicPantry().Build(context.Background(), store)
	require.NoError(t, err)

	assert.Len(t, items, len(pantry.FixtureBasic.Entries()))
	assert.Equal(t, len(items), store.CallCount(testutil.MethodCreateItem))
	assert.Nil(t, items.Find(pantry.ItemBeef))
}
