package response

import (
	"time"

	"interview-booking/internal/data/entity"
)

type RatingResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	InterviewerID string    `json:"interviewer_id"`
	Score         int       `json:"score"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type InterviewerRatingStats struct {
	AverageScore float64 `json:"average_score"`
	RatingCount  int64   `json:"rating_count"`
}

func RatingToResponse(rating *entity.Rating, username string) RatingResponse {
	return RatingResponse{
		ID:            rating.ID.String(),
		BookingID:     rating.BookingID.String(),
		UserID:        rating.UserID.String(),
		Username:      username,
		InterviewerID: rating.InterviewerID.String(),
		Score:         rating.Score,
		Comment:       rating.Comment,
		CreatedAt:     rating.CreatedAt,
	}
}
