package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"interview-booking/internal/data/entity"
	"interview-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AvailabilityRepository interface {
	Upsert(ctx context.Context, rule *entity.AvailabilityRule) error
	FindByInterviewerID(ctx context.Context, interviewerID uuid.UUID) (*entity.AvailabilityRule, error)
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

// Upsert replaces an interviewer's rule set wholesale. Slot rules and excluded
// ranges are stored as JSONB, blocked dates as a text array.
func (r *availabilityRepository) Upsert(ctx context.Context, rule *entity.AvailabilityRule) error {
	slotRules, err := json.Marshal(rule.SlotRules)
	if err != nil {
		return fmt.Errorf("marshal slot rules: %w", err)
	}

	excludedRanges, err := json.Marshal(rule.ExcludedRanges)
	if err != nil {
		return fmt.Errorf("marshal excluded ranges: %w", err)
	}

	query := `
		INSERT INTO availability_rules (id, interviewer_id, slot_rules, blocked_dates,
		                               excluded_ranges, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (interviewer_id) DO UPDATE
		SET slot_rules = EXCLUDED.slot_rules,
		    blocked_dates = EXCLUDED.blocked_dates,
		    excluded_ranges = EXCLUDED.excluded_ranges,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Exec(ctx, query,
		rule.ID,
		rule.InterviewerID,
		slotRules,
		rule.BlockedDates,
		excludedRanges,
		rule.CreatedAt,
		rule.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert availability rule",
			zap.Error(err),
			zap.String("interviewer_id", rule.InterviewerID.String()),
		)
		return fmt.Errorf("upsert availability rule for %s: %w", rule.InterviewerID.String(), err)
	}

	return nil
}

func (r *availabilityRepository) FindByInterviewerID(ctx context.Context, interviewerID uuid.UUID) (*entity.AvailabilityRule, error) {
	query := `
		SELECT id, interviewer_id, slot_rules, blocked_dates, excluded_ranges,
		       created_at, updated_at
		FROM availability_rules
		WHERE interviewer_id = $1
	`

	var rule entity.AvailabilityRule
	var slotRules, excludedRanges []byte

	err := r.db.QueryRow(ctx, query, interviewerID).Scan(
		&rule.ID,
		&rule.InterviewerID,
		&slotRules,
		&rule.BlockedDates,
		&excludedRanges,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find availability rule",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
		)
		return nil, fmt.Errorf("find availability rule for %s: %w", interviewerID.String(), err)
	}

	if err := json.Unmarshal(slotRules, &rule.SlotRules); err != nil {
		return nil, fmt.Errorf("unmarshal slot rules for %s: %w", interviewerID.String(), err)
	}
	if err := json.Unmarshal(excludedRanges, &rule.ExcludedRanges); err != nil {
		return nil, fmt.Errorf("unmarshal excluded ranges for %s: %w", interviewerID.String(), err)
	}

	return &rule, nil
}
