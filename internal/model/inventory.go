package model

import "time"

// DefaultCategory is applied to inventory items created without a category.
const DefaultCategory = "Khác"

// InventoryItem represents a perishable food unit tracked in the household fridge.
// An item whose quantity reaches zero is deleted rather than stored.
type InventoryItem struct {
	ExpiryDate      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ID              string
	Name            string
	Unit            string
	Category        string
	StorageLocation string
	Quantity        float64
}

// InventoryFilter narrows an inventory listing for display.
type InventoryFilter struct {
	Search   string // Case-insensitive substring of the item name
	Category string // Exact category, empty or "all" for every category
}

// Urgency classifies how soon an inventory item expires.
// Values are ordered from most to least urgent.
type Urgency int

const (
	// UrgencyExpired means the expiry date is already in the past.
	UrgencyExpired Urgency = iota
	// UrgencyDueToday means the item expires today.
	UrgencyDueToday
	// UrgencyCritical means the item expires within one to three days.
	UrgencyCritical
	// UrgencySoon means the item expires within four to seven days.
	UrgencySoon
	// UrgencyFresh means the item has more than a week left.
	UrgencyFresh
)

// String returns a short label for the urgency bucket.
func (u Urgency) String() string {
	switch u {
	case UrgencyExpired:
		return "expired"
	case UrgencyDueToday:
		return "today"
	case UrgencyCritical:
		return "critical"
	case UrgencySoon:
		return "soon"
	case UrgencyFresh:
		return "fresh"
	default:
		return "unknown"
	}
}

// ExpirySummary holds the aggregate counts shown on the inventory summary cards.
type ExpirySummary struct {
	Total        int
	ExpiringSoon int // 0 to 3 days remaining, expired items excluded
	Expired      int
}
