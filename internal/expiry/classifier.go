// Package expiry classifies inventory items by how soon they expire.
package expiry

import (
	"time"

	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
)

// SoonThreshold is the day count up to which an item counts as "expiring soon"
// on the summary cards.
const SoonThreshold = 3

const (
	criticalDays = 3
	soonDays     = 7
	day          = 24 * time.Hour
)

// DaysRemaining returns the whole calendar days from today until expiry.
// Both dates are reduced to their calendar day in today's location, so the
// time of day and daylight saving shifts never change the result.
func DaysRemaining(expiry, today time.Time) int {
	loc := today.Location()
	e := expiry.In(loc)
	return int(civilDay(e).Sub(civilDay(today)) / day)
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClassifyDays maps a day count onto its urgency bucket.
func ClassifyDays(days int) model.Urgency {
	switch {
	case days < 0:
		return model.UrgencyExpired
	case days == 0:
		return model.UrgencyDueToday
	case days <= criticalDays:
		return model.UrgencyCritical
	case days <= soonDays:
		return model.UrgencySoon
	default:
		return model.UrgencyFresh
	}
}

// IsExpired reports whether the expiry date is before today.
func IsExpired(expiry, today time.Time) bool {
	return DaysRemaining(expiry, today) < 0
}

// IsExpiringWithin reports whether the item expires today or within n days.
// Items that have already expired are not included.
func IsExpiringWithin(expiry, today time.Time, n int) bool {
	days := DaysRemaining(expiry, today)
	return days >= 0 && days <= n
}

// Classifier evaluates items against the date supplied by its clock.
type Classifier struct {
	clock service.Clock
}

// NewClassifier creates a classifier reading "today" from clock.
func NewClassifier(clock service.Clock) *Classifier {
	if clock == nil {
		clock = service.SystemClock
	}
	return &Classifier{clock: clock}
}

// Today returns the current date as seen by the classifier.
func (c *Classifier) Today() time.Time {
	return c.clock.Today()
}

// Classify returns the urgency bucket and the remaining days for an item.
func (c *Classifier) Classify(item model.InventoryItem) (model.Urgency, int) {
	days := DaysRemaining(item.ExpiryDate, c.clock.Today())
	return ClassifyDays(days), days
}

// Summarize counts the items for the inventory summary cards.
func (c *Classifier) Summarize(items []model.InventoryItem) model.ExpirySummary {
	today := c.clock.Today()
	summary := model.ExpirySummary{Total: len(items)}
	for _, item := range items {
		switch {
		case IsExpired(item.ExpiryDate, today):
			summary.Expired++
		case IsExpiringWithin(item.ExpiryDate, today, SoonThreshold):
			summary.ExpiringSoon++
		}
	}
	return summary
}
