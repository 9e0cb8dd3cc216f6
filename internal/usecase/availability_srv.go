package usecase

import (
	"context"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/internal/dto/response"
	"interview-booking/pkg/database"
	"interview-booking/pkg/timeutil"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotDurationMinutes is the fixed length of every bookable slot.
const SlotDurationMinutes = 60

type AvailabilityService interface {
	SaveRules(ctx context.Context, interviewerID string, req *request.SaveAvailabilityRequest) (*response.AvailabilityResponse, error)
	GetRules(ctx context.Context, interviewerID string) (*response.AvailabilityResponse, error)
	AddBlockedDate(ctx context.Context, interviewerID string, req *request.BlockDateRequest) error
	RemoveBlockedDate(ctx context.Context, interviewerID, date string) error
	AddExcludedRange(ctx context.Context, interviewerID string, req *request.ExcludeRangeRequest) error
	GetAvailableSlots(ctx context.Context, interviewerID, date string) (*response.DaySlotsResponse, error)
}

type availabilityService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewAvailabilityService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) SaveRules(ctx context.Context, interviewerID string, req *request.SaveAvailabilityRequest) (*response.AvailabilityResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Save availability validation failed", zap.Any("errors", errs))
		return nil, utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	slotRules := make([]entity.SlotRule, len(req.SlotRules))
	for i, r := range req.SlotRules {
		slotRules[i] = entity.SlotRule{
			Day:           r.Day,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			BufferMinutes: r.BufferMinutes,
			Enabled:       r.Enabled,
		}
	}

	rule, err := entity.NewAvailabilityRule(id, slotRules)
	if err != nil {
		return nil, utils.WrapError(utils.KindValidation, err.Error(), err)
	}

	// Save wholesale, but keep existing overrides when a rule set already exists.
	existing, err := s.repo.Availability.FindByInterviewerID(ctx, id)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load availability rules", err)
	}
	if existing != nil {
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
		rule.BlockedDates = existing.BlockedDates
		rule.ExcludedRanges = existing.ExcludedRanges
	}

	if err := s.repo.Availability.Upsert(ctx, rule); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to save availability rules", err)
	}

	s.log.Info("Availability rules saved",
		zap.String("interviewer_id", interviewerID),
		zap.Int("rule_count", len(req.SlotRules)),
	)

	return response.AvailabilityToResponse(rule), nil
}

func (s *availabilityService) GetRules(ctx context.Context, interviewerID string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	rule, err := s.repo.Availability.FindByInterviewerID(ctx, id)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load availability rules", err)
	}
	if rule == nil {
		return nil, utils.NewError(utils.KindNotFound, "availability rules not found")
	}

	return response.AvailabilityToResponse(rule), nil
}

func (s *availabilityService) AddBlockedDate(ctx context.Context, interviewerID string, req *request.BlockDateRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if _, err := timeutil.ParseDate(req.Date); err != nil {
		return utils.NewErrorf(utils.KindValidation, "invalid date %s", req.Date)
	}

	rule, id, err := s.loadRule(ctx, interviewerID)
	if err != nil {
		return err
	}

	if rule.IsBlocked(req.Date) {
		return nil
	}

	rule.BlockedDates = append(rule.BlockedDates, req.Date)
	rule.UpdatedAt = time.Now()

	if err := s.repo.Availability.Upsert(ctx, rule); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to save blocked date", err)
	}

	s.log.Info("Blocked date added",
		zap.String("interviewer_id", id.String()),
		zap.String("date", req.Date),
	)
	return nil
}

func (s *availabilityService) RemoveBlockedDate(ctx context.Context, interviewerID, date string) error {
	rule, id, err := s.loadRule(ctx, interviewerID)
	if err != nil {
		return err
	}

	kept := rule.BlockedDates[:0]
	removed := false
	for _, d := range rule.BlockedDates {
		if d == date {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if !removed {
		return utils.NewErrorf(utils.KindNotFound, "date %s is not blocked", date)
	}

	rule.BlockedDates = kept
	rule.UpdatedAt = time.Now()

	if err := s.repo.Availability.Upsert(ctx, rule); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to remove blocked date", err)
	}

	s.log.Info("Blocked date removed",
		zap.String("interviewer_id", id.String()),
		zap.String("date", date),
	)
	return nil
}

func (s *availabilityService) AddExcludedRange(ctx context.Context, interviewerID string, req *request.ExcludeRangeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if _, err := timeutil.ParseDate(req.Date); err != nil {
		return utils.NewErrorf(utils.KindValidation, "invalid date %s", req.Date)
	}

	start, err := timeutil.ParseHHMM(req.StartTime)
	if err != nil {
		return utils.NewErrorf(utils.KindValidation, "invalid start time %s", req.StartTime)
	}
	end, err := timeutil.ParseHHMM(req.EndTime)
	if err != nil {
		return utils.NewErrorf(utils.KindValidation, "invalid end time %s", req.EndTime)
	}
	if start >= end {
		return utils.NewError(utils.KindValidation, "start time must be before end time")
	}

	rule, id, err := s.loadRule(ctx, interviewerID)
	if err != nil {
		return err
	}

	if rule.ExcludedRanges == nil {
		rule.ExcludedRanges = map[string][]entity.TimeRange{}
	}
	rule.ExcludedRanges[req.Date] = append(rule.ExcludedRanges[req.Date], entity.TimeRange{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	rule.UpdatedAt = time.Now()

	if err := s.repo.Availability.Upsert(ctx, rule); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to save excluded range", err)
	}

	s.log.Info("Excluded range added",
		zap.String("interviewer_id", id.String()),
		zap.String("date", req.Date),
		zap.String("range", req.StartTime+"-"+req.EndTime),
	)
	return nil
}

func (s *availabilityService) loadRule(ctx context.Context, interviewerID string) (*entity.AvailabilityRule, uuid.UUID, error) {
	id, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, uuid.Nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	rule, err := s.repo.Availability.FindByInterviewerID(ctx, id)
	if err != nil {
		return nil, uuid.Nil, utils.WrapError(utils.KindInternal, "failed to load availability rules", err)
	}
	if rule == nil {
		return nil, uuid.Nil, utils.NewError(utils.KindNotFound, "availability rules not found")
	}

	return rule, id, nil
}

// GetAvailableSlots expands an interviewer's day-rule into bookable slots for
// one date. Output is a pure function of the rule set, the date, and the
// persisted booking snapshot.
func (s *availabilityService) GetAvailableSlots(ctx context.Context, interviewerID, date string) (*response.DaySlotsResponse, error) {
	id, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	weekday, err := timeutil.WeekdayName(date)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid date %s", date)
	}

	result := &response.DaySlotsResponse{
		Date:    date,
		Weekday: weekday,
		Slots:   []response.SlotResponse{},
	}

	rule, err := s.repo.Availability.FindByInterviewerID(ctx, id)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load availability rules", err)
	}
	if rule == nil || rule.IsBlocked(date) {
		return result, nil
	}

	dayRule, ok := rule.RuleForDay(weekday)
	if !ok || !dayRule.Enabled || dayRule.IsZero() {
		return result, nil
	}

	start, err := timeutil.ParseHHMM(dayRule.StartTime)
	if err != nil {
		return result, nil
	}
	end, err := timeutil.ParseHHMM(dayRule.EndTime)
	if err != nil {
		return result, nil
	}

	excluded := rule.ExcludedRanges[date]
	step := SlotDurationMinutes + dayRule.BufferMinutes

	for slotStart := start; slotStart+SlotDurationMinutes <= end; slotStart += step {
		slotEnd := slotStart + SlotDurationMinutes

		if s.isExcluded(slotStart, slotEnd, excluded) {
			continue
		}

		startStr := timeutil.FormatMinutes(slotStart)
		endStr := timeutil.FormatMinutes(slotEnd)

		existing, err := s.repo.Booking.FindBlockingSlot(ctx, s.db, id, date, startStr, endStr)
		if err != nil {
			return nil, utils.WrapError(utils.KindInternal, "failed to check slot availability", err)
		}
		if existing != nil {
			continue
		}

		result.Slots = append(result.Slots, response.SlotResponse{
			StartTime: startStr,
			EndTime:   endStr,
			Available: true,
			IsBooked:  false,
		})
	}

	return result, nil
}

func (s *availabilityService) isExcluded(slotStart, slotEnd int, excluded []entity.TimeRange) bool {
	for _, r := range excluded {
		exStart, err := timeutil.ParseHHMM(r.StartTime)
		if err != nil {
			continue
		}
		exEnd, err := timeutil.ParseHHMM(r.EndTime)
		if err != nil {
			continue
		}
		if timeutil.Overlaps(slotStart, slotEnd, exStart, exEnd) {
			return true
		}
	}
	return false
}
