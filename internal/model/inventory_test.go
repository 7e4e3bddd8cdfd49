package model

import "testing"

func TestUrgency_String(t *testing.T) {
	tests := []struct {
		want    string
		urgency Urgency
	}{
		{urgency: UrgencyExpired, want: "expired"},
		{urgency: UrgencyDueToday, want: "today"},
		{urgency: UrgencyCritical, want: "critical"},
		{urgency: UrgencySoon, want: "soon"},
		{urgency: UrgencyFresh, want: "fresh"},
		{urgency: Urgency(42), want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.urgency.String(); got != tt.want {
				t.Errorf("Urgency(%d).String() = %q, want %q", tt.urgency, got, tt.want)
			}
		})
	}
}

func TestUrgency_Ordering(t *testing.T) {
	ordered := []Urgency{UrgencyExpired, UrgencyDueToday, UrgencyCritical, UrgencySoon, UrgencyFresh}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1] >= ordered[i] {
			t.Errorf("%s should sort before %s", ordered[i-1], ordered[i])
		}
	}
}

func TestDifficulty_IsValid(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !d.IsValid() {
			t.Errorf("expected %q to be valid", d)
		}
	}
	for _, d := range []Difficulty{"", "easy", "all"} {
		if d.IsValid() {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}

func TestMatchResult_CanMake(t *testing.T) {
	if !(MatchResult{Available: []string{"Trứng gà"}}).CanMake() {
		t.Error("recipe with no missing ingredients should be makeable")
	}
	if (MatchResult{Missing: []string{"Ớt tươi"}}).CanMake() {
		t.Error("recipe with missing ingredients should not be makeable")
	}
}
