package repository

import (
	"context"
	"fmt"

	"interview-booking/internal/data/entity"
	"interview-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *entity.Rating) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error)
	FindByInterviewerID(ctx context.Context, interviewerID uuid.UUID, limit, offset int) ([]*entity.Rating, error)
	CountByInterviewerID(ctx context.Context, interviewerID uuid.UUID) (int64, error)

	// GetInterviewerStats returns the average score and rating count.
	GetInterviewerStats(ctx context.Context, interviewerID uuid.UUID) (float64, int64, error)
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, booking_id, user_id, interviewer_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		rating.ID,
		rating.BookingID,
		rating.UserID,
		rating.InterviewerID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create rating",
			zap.Error(err),
			zap.String("booking_id", rating.BookingID.String()),
			zap.String("user_id", rating.UserID.String()),
		)
		return fmt.Errorf("create rating for booking %s: %w", rating.BookingID.String(), err)
	}

	return nil
}

func (r *ratingRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, booking_id, user_id, interviewer_id, score, comment, created_at
		FROM ratings
		WHERE booking_id = $1
	`

	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&rating.ID,
		&rating.BookingID,
		&rating.UserID,
		&rating.InterviewerID,
		&rating.Score,
		&rating.Comment,
		&rating.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find rating for booking %s: %w", bookingID.String(), err)
	}

	return &rating, nil
}

func (r *ratingRepository) FindByInterviewerID(ctx context.Context, interviewerID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	query := `
		SELECT id, booking_id, user_id, interviewer_id, score, comment, created_at
		FROM ratings
		WHERE interviewer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, interviewerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find ratings by interviewer ID",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
		)
		return nil, fmt.Errorf("find ratings for interviewer %s: %w", interviewerID.String(), err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		if err := rows.Scan(
			&rating.ID,
			&rating.BookingID,
			&rating.UserID,
			&rating.InterviewerID,
			&rating.Score,
			&rating.Comment,
			&rating.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	return ratings, rows.Err()
}

func (r *ratingRepository) CountByInterviewerID(ctx context.Context, interviewerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE interviewer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, interviewerID).Scan(&count); err != nil {
		r.log.Error("Failed to count ratings",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
		)
		return 0, fmt.Errorf("count ratings for interviewer %s: %w", interviewerID.String(), err)
	}

	return count, nil
}

func (r *ratingRepository) GetInterviewerStats(ctx context.Context, interviewerID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM ratings
		WHERE interviewer_id = $1
	`

	var avg float64
	var count int64
	if err := r.db.QueryRow(ctx, query, interviewerID).Scan(&avg, &count); err != nil {
		r.log.Error("Failed to get rating stats",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
		)
		return 0, 0, fmt.Errorf("rating stats for interviewer %s: %w", interviewerID.String(), err)
	}

	return avg, count, nil
}
