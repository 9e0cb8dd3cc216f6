package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestNewAvailabilityRuleNormalizesToSevenDays(t *testing.T) {
	rule, err := NewAvailabilityRule(uuid.New(), []SlotRule{
		{Day: "Monday", StartTime: "09:00", EndTime: "17:00", Enabled: true},
		{Day: "Friday", StartTime: "10:00", EndTime: "14:00", BufferMinutes: 30, Enabled: true},
	})
	if err != nil {
		t.Fatalf("NewAvailabilityRule: %v", err)
	}

	if len(rule.SlotRules) != 7 {
		t.Fatalf("rule count = %d, want 7", len(rule.SlotRules))
	}
	for i, day := range Weekdays {
		if rule.SlotRules[i].Day != day {
			t.Errorf("rule[%d].Day = %s, want %s", i, rule.SlotRules[i].Day, day)
		}
	}

	mon, ok := rule.RuleForDay("Monday")
	if !ok || !mon.Enabled || mon.StartTime != "09:00" {
		t.Errorf("Monday rule = %+v, want enabled 09:00", mon)
	}
	// Unnamed days become disabled zero entries.
	tue, ok := rule.RuleForDay("Tuesday")
	if !ok {
		t.Fatal("Tuesday entry missing")
	}
	if tue.Enabled || !tue.IsZero() {
		t.Errorf("Tuesday rule = %+v, want disabled zero entry", tue)
	}
}

func TestNewAvailabilityRuleRejections(t *testing.T) {
	cases := []struct {
		name  string
		rules []SlotRule
	}{
		{"unknown day", []SlotRule{{Day: "Funday", StartTime: "09:00", EndTime: "17:00", Enabled: true}}},
		{"duplicate day", []SlotRule{
			{Day: "Monday", StartTime: "09:00", EndTime: "12:00", Enabled: true},
			{Day: "Monday", StartTime: "13:00", EndTime: "17:00", Enabled: true},
		}},
		{"bad time format", []SlotRule{{Day: "Monday", StartTime: "9.00", EndTime: "17:00", Enabled: true}}},
		{"start not before end", []SlotRule{{Day: "Monday", StartTime: "17:00", EndTime: "17:00", Enabled: true}}},
		{"buffer too large", []SlotRule{{Day: "Monday", StartTime: "09:00", EndTime: "17:00", BufferMinutes: 90, Enabled: true}}},
		{"negative buffer", []SlotRule{{Day: "Monday", StartTime: "09:00", EndTime: "17:00", BufferMinutes: -5, Enabled: true}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewAvailabilityRule(uuid.New(), tc.rules); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// ExcludedRanges is stored as JSONB; the column default must decode into the
// map form, so an empty rule set has to round-trip as a JSON object, not an
// array.
func TestExcludedRangesEncodeAsObject(t *testing.T) {
	rule, err := NewAvailabilityRule(uuid.New(), nil)
	if err != nil {
		t.Fatalf("NewAvailabilityRule: %v", err)
	}

	raw, err := json.Marshal(rule.ExcludedRanges)
	if err != nil {
		t.Fatalf("marshal excluded ranges: %v", err)
	}
	if string(raw) != "{}" {
		t.Errorf("empty excluded ranges encode as %s, want {}", raw)
	}

	var decoded map[string][]TimeRange
	if err := json.Unmarshal([]byte(`{}`), &decoded); err != nil {
		t.Errorf("decode column default: %v", err)
	}
}

func TestIsBlocked(t *testing.T) {
	rule := &AvailabilityRule{BlockedDates: []string{"2024-01-08", "2024-02-14"}}
	if !rule.IsBlocked("2024-01-08") {
		t.Error("blocked date reported free")
	}
	if rule.IsBlocked("2024-01-09") {
		t.Error("free date reported blocked")
	}
}
