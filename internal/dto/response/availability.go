package response

import (
	"interview-booking/internal/data/entity"
)

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
	IsBooked  bool   `json:"is_booked"`
}

type DaySlotsResponse struct {
	Date    string         `json:"date"`
	Weekday string         `json:"weekday"`
	Slots   []SlotResponse `json:"slots"`
}

type AvailabilityResponse struct {
	InterviewerID  string                        `json:"interviewer_id"`
	SlotRules      []entity.SlotRule             `json:"slot_rules"`
	BlockedDates   []string                      `json:"blocked_dates"`
	ExcludedRanges map[string][]entity.TimeRange `json:"excluded_ranges"`
}

func AvailabilityToResponse(rule *entity.AvailabilityRule) *AvailabilityResponse {
	return &AvailabilityResponse{
		InterviewerID:  rule.InterviewerID.String(),
		SlotRules:      rule.SlotRules,
		BlockedDates:   rule.BlockedDates,
		ExcludedRanges: rule.ExcludedRanges,
	}
}
