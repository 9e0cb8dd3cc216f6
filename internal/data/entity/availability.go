package entity

import (
	"fmt"
	"time"

	"interview-booking/pkg/timeutil"

	"github.com/google/uuid"
)

// Weekdays in storage order. A rule set always carries exactly one entry per day.
var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const (
	MinBufferMinutes = 0
	MaxBufferMinutes = 60
)

// SlotRule is one weekday's availability window.
type SlotRule struct {
	Day           string `json:"day" db:"day"`
	StartTime     string `json:"start_time" db:"start_time"`
	EndTime       string `json:"end_time" db:"end_time"`
	BufferMinutes int    `json:"buffer_minutes" db:"buffer_minutes"`
	Enabled       bool   `json:"enabled" db:"enabled"`
}

// IsZero reports whether the rule is the disabled 00:00-00:00 placeholder.
func (r SlotRule) IsZero() bool {
	return r.StartTime == "00:00" && r.EndTime == "00:00"
}

// TimeRange is a sub-range excluded from a specific date's generated slots.
type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityRule is the per-interviewer weekly rule set plus date-level overrides.
type AvailabilityRule struct {
	Base
	InterviewerID  uuid.UUID              `db:"interviewer_id"`
	SlotRules      []SlotRule             `db:"slot_rules"`
	BlockedDates   []string               `db:"blocked_dates"`
	ExcludedRanges map[string][]TimeRange `db:"excluded_ranges"`
}

// NewAvailabilityRule builds a validated rule set. Incoming rules are matched
// to weekdays by name; missing weekdays get a disabled 00:00-00:00 entry so the
// stored set always has exactly 7 entries in Sunday..Saturday order.
func NewAvailabilityRule(interviewerID uuid.UUID, rules []SlotRule) (*AvailabilityRule, error) {
	byDay := make(map[string]SlotRule, len(rules))
	for _, r := range rules {
		if _, dup := byDay[r.Day]; dup {
			return nil, fmt.Errorf("duplicate rule for %s", r.Day)
		}
		if err := validateSlotRule(r); err != nil {
			return nil, err
		}
		byDay[r.Day] = r
	}

	normalized := make([]SlotRule, 0, len(Weekdays))
	for _, day := range Weekdays {
		rule, ok := byDay[day]
		if !ok {
			rule = SlotRule{Day: day, StartTime: "00:00", EndTime: "00:00"}
		}
		normalized = append(normalized, rule)
		delete(byDay, day)
	}
	for day := range byDay {
		return nil, fmt.Errorf("unknown weekday %q", day)
	}

	now := time.Now()
	return &AvailabilityRule{
		Base: Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		InterviewerID:  interviewerID,
		SlotRules:      normalized,
		BlockedDates:   []string{},
		ExcludedRanges: map[string][]TimeRange{},
	}, nil
}

func validateSlotRule(r SlotRule) error {
	if !timeutil.ValidHHMM(r.StartTime) {
		return fmt.Errorf("%s: invalid start time %q", r.Day, r.StartTime)
	}
	if !timeutil.ValidHHMM(r.EndTime) {
		return fmt.Errorf("%s: invalid end time %q", r.Day, r.EndTime)
	}
	if r.BufferMinutes < MinBufferMinutes || r.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%s: buffer minutes must be between %d and %d", r.Day, MinBufferMinutes, MaxBufferMinutes)
	}
	if r.IsZero() {
		return nil
	}

	start, _ := timeutil.ParseHHMM(r.StartTime)
	end, _ := timeutil.ParseHHMM(r.EndTime)
	if start >= end {
		return fmt.Errorf("%s: start time %s must be before end time %s", r.Day, r.StartTime, r.EndTime)
	}

	return nil
}

// RuleForDay returns the day-rule matching a weekday name, if present.
func (a *AvailabilityRule) RuleForDay(weekday string) (SlotRule, bool) {
	for _, r := range a.SlotRules {
		if r.Day == weekday {
			return r, true
		}
	}
	return SlotRule{}, false
}

// IsBlocked reports whether a full date is blocked.
func (a *AvailabilityRule) IsBlocked(date string) bool {
	for _, d := range a.BlockedDates {
		if d == date {
			return true
		}
	}
	return false
}
