package pantry

// Entry is one item of a fixture.
type Entry struct {
	Name     ItemName
	Quantity float64
	DaysLeft int
}

// Fixture represents a predefined fridge for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Entries returns the items included in this fixture.
	Entries() []Entry
}

type fixture struct {
	name    string
	entries []Entry
}

func (f *fixture) Name() string     { return f.name }
func (f *fixture) Entries() []Entry { return f.entries }

// Predefined fixtures for common test scenarios.
var (
	// FixtureBasic is a small everyday fridge with nothing close to expiry.
	FixtureBasic = &fixture{
		name: "Basic",
		entries: []Entry{
			{Name: ItemEgg, Quantity: 10, DaysLeft: 14},
			{Name: ItemScallion, Quantity: 1, DaysLeft: 5},
			{Name: ItemFishSauce, Quantity: 1, DaysLeft: 180},
		},
	}

	// FixtureExpiryLadder has one item in every urgency bucket, including the
	// boundary days 0, 3 and 7.
	FixtureExpiryLadder = &fixture{
		name: "Expiry ladder",
		entries: []Entry{
			{Name: ItemMilk, Quantity: 1, DaysLeft: -1},
			{Name: ItemTofu, Quantity: 2, DaysLeft: 0},
			{Name: ItemSpinach, Quantity: 1, DaysLeft: 3},
			{Name: ItemTomato, Quantity: 0.5, DaysLeft: 7},
			{Name: ItemCarrot, Quantity: 1, DaysLeft: 8},
		},
	}
)
