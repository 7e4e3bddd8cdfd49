package expiry

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 3, 15, 18, 45, 0, 0, time.UTC)

func fixedClock(t time.Time) service.Clock {
	return service.ClockFunc(func() time.Time { return t })
}

func TestClassifyDays_Boundaries(t *testing.T) {
	tests := []struct {
		days int
		want model.Urgency
	}{
		{days: -30, want: model.UrgencyExpired},
		{days: -1, want: model.UrgencyExpired},
		{days: 0, want: model.UrgencyDueToday},
		{days: 1, want: model.UrgencyCritical},
		{days: 3, want: model.UrgencyCritical},
		{days: 4, want: model.UrgencySoon},
		{days: 7, want: model.UrgencySoon},
		{days: 8, want: model.UrgencyFresh},
		{days: 365, want: model.UrgencyFresh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDays(tt.days))
		})
	}
}

func TestClassifyDays_IsTotal(t *testing.T) {
	for days := -100; days <= 100; days++ {
		u := ClassifyDays(days)
		assert.GreaterOrEqual(t, int(u), int(model.UrgencyExpired))
		assert.LessOrEqual(t, int(u), int(model.UrgencyFresh))
	}
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		expiry time.Time
		name   string
		want   int
	}{
		{
			name:   "same day earlier hour",
			expiry: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want:   0,
		},
		{
			name:   "same day later hour",
			expiry: time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC),
			want:   0,
		},
		{
			name:   "tomorrow just after midnight",
			expiry: time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC),
			want:   1,
		},
		{
			name:   "yesterday late evening",
			expiry: time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC),
			want:   -1,
		},
		{
			name:   "one week",
			expiry: time.Date(2024, 3, 22, 12, 0, 0, 0, time.UTC),
			want:   7,
		},
		{
			name:   "across month boundary",
			expiry: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
			want:   18,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(tt.expiry, today))
		})
	}
}

func TestDaysRemaining_DaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 2024-03-10 is a 23 hour day in New York.
	before := time.Date(2024, 3, 9, 9, 0, 0, 0, loc)
	after := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysRemaining(after, before))

	// 2024-11-03 is a 25 hour day.
	before = time.Date(2024, 11, 2, 9, 0, 0, 0, loc)
	after = time.Date(2024, 11, 4, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysRemaining(after, before))
}

func TestPredicates(t *testing.T) {
	expired := today.AddDate(0, 0, -1)
	dueToday := today
	inThree := today.AddDate(0, 0, 3)
	inFour := today.AddDate(0, 0, 4)

	assert.True(t, IsExpired(expired, today))
	assert.False(t, IsExpired(dueToday, today))

	assert.False(t, IsExpiringWithin(expired, today, 3), "expired items are excluded")
	assert.True(t, IsExpiringWithin(dueToday, today, 3))
	assert.True(t, IsExpiringWithin(inThree, today, 3))
	assert.False(t, IsExpiringWithin(inFour, today, 3))
	assert.True(t, IsExpiringWithin(inFour, today, 7))
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(fixedClock(today))

	urgency, days := c.Classify(model.InventoryItem{Name: "Sữa tươi", ExpiryDate: today.AddDate(0, 0, 2)})
	assert.Equal(t, model.UrgencyCritical, urgency)
	assert.Equal(t, 2, days)

	urgency, days = c.Classify(model.InventoryItem{Name: "Gạo tẻ", ExpiryDate: today.AddDate(0, 2, 0)})
	assert.Equal(t, model.UrgencyFresh, urgency)
	assert.Greater(t, days, 7)
}

func TestClassifier_Summarize(t *testing.T) {
	c := NewClassifier(fixedClock(today))

	items := []model.InventoryItem{
		{Name: "Thịt heo", ExpiryDate: today.AddDate(0, 0, -2)},
		{Name: "Cá hồi", ExpiryDate: today},
		{Name: "Cà chua", ExpiryDate: today.AddDate(0, 0, 3)},
		{Name: "Cà rốt", ExpiryDate: today.AddDate(0, 0, 5)},
		{Name: "Gạo tẻ", ExpiryDate: today.AddDate(0, 6, 0)},
	}

	summary := c.Summarize(items)
	assert.Equal(t, model.ExpirySummary{Total: 5, ExpiringSoon: 2, Expired: 1}, summary)

	assert.Equal(t, model.ExpirySummary{}, c.Summarize(nil))
}
