package entity

import (
	"github.com/google/uuid"
)

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Rating is a candidate's post-session score for an interviewer. One rating
// per booking; only completed sessions can be rated.
type Rating struct {
	BaseSimple
	BookingID     uuid.UUID `db:"booking_id"`
	UserID        uuid.UUID `db:"user_id"`
	InterviewerID uuid.UUID `db:"interviewer_id"`
	Score         int       `db:"score"` // 1-5
	Comment       *string   `db:"comment"`
}
