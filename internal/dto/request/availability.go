package request

type SlotRuleRequest struct {
	Day           string `json:"day" validate:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	BufferMinutes int    `json:"buffer_minutes" validate:"min=0,max=60"`
	Enabled       bool   `json:"enabled"`
}

type SaveAvailabilityRequest struct {
	SlotRules []SlotRuleRequest `json:"slot_rules" validate:"required,min=1,max=7,dive"`
}

type BlockDateRequest struct {
	Date string `json:"date" validate:"required"`
}

type ExcludeRangeRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}
