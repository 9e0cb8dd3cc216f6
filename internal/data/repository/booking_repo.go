package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrSlotTaken is returned when an insert loses the race for a slot: the
// partial unique index on (interviewer_id, date, start_time, end_time) over
// blocking statuses rejected the row.
var ErrSlotTaken = errors.New("slot already booked")

type BookingRepository interface {
	Create(ctx context.Context, q database.Querier, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBlockingSlot(ctx context.Context, q database.Querier, interviewerID uuid.UUID, date, startTime, endTime string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindByInterviewerID(ctx context.Context, interviewerID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByInterviewerID(ctx context.Context, interviewerID uuid.UUID) (int64, error)

	// Lifecycle transitions
	Confirm(ctx context.Context, q database.Querier, id uuid.UUID, paymentID string) error
	Complete(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, q database.Querier, id uuid.UUID, reason string) error

	// Sweep queries
	FindConfirmedByDate(ctx context.Context, date string) ([]*entity.Booking, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, window int) error
	FindExpiredPending(ctx context.Context, olderThan time.Time) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, interviewer_id, date, start_time, end_time,
		       amount, admin_fee, interviewer_amount, status, payment_method,
		       payment_id, cancel_reason, reminder_15_sent, reminder_5_sent,
		       created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.InterviewerID,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Amount,
		&b.AdminFee,
		&b.InterviewerAmount,
		&b.Status,
		&b.PaymentMethod,
		&b.PaymentID,
		&b.CancelReason,
		&b.Reminder15Sent,
		&b.Reminder5Sent,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) scanBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) Create(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, interviewer_id, date, start_time, end_time,
		                     amount, admin_fee, interviewer_amount, status, payment_method,
		                     payment_id, cancel_reason, reminder_15_sent, reminder_5_sent,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.InterviewerID,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Amount,
		booking.AdminFee,
		booking.InterviewerAmount,
		booking.Status,
		booking.PaymentMethod,
		booking.PaymentID,
		booking.CancelReason,
		booking.Reminder15Sent,
		booking.Reminder5Sent,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		// Unique violation on the slot index means we lost a concurrent race.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSlotTaken
		}

		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("interviewer_id", booking.InterviewerID.String()),
		)
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindBlockingSlot(ctx context.Context, q database.Querier, interviewerID uuid.UUID, date, startTime, endTime string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE interviewer_id = $1 AND date = $2 AND start_time = $3 AND end_time = $4
		  AND status IN ('pending', 'confirmed', 'completed')
		LIMIT 1
	`

	booking, err := scanBooking(q.QueryRow(ctx, query, interviewerID, date, startTime, endTime))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to check slot availability",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
			zap.String("date", date),
			zap.String("start_time", startTime),
		)
		return nil, fmt.Errorf("check slot %s %s-%s: %w", date, startTime, endTime, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByInterviewerID(ctx context.Context, interviewerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE interviewer_id = $1
		ORDER BY date DESC, start_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, interviewerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by interviewer ID",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
		)
		return nil, fmt.Errorf("find bookings by interviewer ID %s: %w", interviewerID.String(), err)
	}

	return r.scanBookings(rows)
}

func (r *bookingRepository) CountByInterviewerID(ctx context.Context, interviewerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE interviewer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, interviewerID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by interviewer ID",
			zap.Error(err),
			zap.String("interviewer_id", interviewerID.String()),
		)
		return 0, fmt.Errorf("count bookings by interviewer ID %s: %w", interviewerID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Confirm(ctx context.Context, q database.Querier, id uuid.UUID, paymentID string) error {
	query := `
		UPDATE bookings
		SET status = 'confirmed', payment_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := q.Exec(ctx, query, id, paymentID)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("confirm booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s is not pending", id.String())
	}

	return nil
}

func (r *bookingRepository) Complete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to complete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("complete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s is not confirmed", id.String())
	}

	return nil
}

func (r *bookingRepository) Cancel(ctx context.Context, q database.Querier, id uuid.UUID, reason string) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancel_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := q.Exec(ctx, query, id, reason)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s cannot be cancelled", id.String())
	}

	return nil
}

func (r *bookingRepository) FindConfirmedByDate(ctx context.Context, date string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date = $1 AND status = 'confirmed'
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		r.log.Error("Failed to find confirmed bookings by date",
			zap.Error(err),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("find confirmed bookings for %s: %w", date, err)
	}

	return r.scanBookings(rows)
}

// MarkReminderSent records that the 15- or 5-minute reminder has gone out.
func (r *bookingRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, window int) error {
	var query string
	switch window {
	case 15:
		query = `UPDATE bookings SET reminder_15_sent = TRUE, updated_at = NOW() WHERE id = $1`
	case 5:
		query = `UPDATE bookings SET reminder_5_sent = TRUE, updated_at = NOW() WHERE id = $1`
	default:
		return fmt.Errorf("unknown reminder window %d", window)
	}

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to mark reminder sent",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.Int("window", window),
		)
		return fmt.Errorf("mark %d-minute reminder for booking %s: %w", window, id.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindExpiredPending(ctx context.Context, olderThan time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'pending' AND payment_method = 'razorpay' AND created_at < $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, olderThan)
	if err != nil {
		r.log.Error("Failed to find expired pending bookings", zap.Error(err))
		return nil, fmt.Errorf("find expired pending bookings: %w", err)
	}

	return r.scanBookings(rows)
}
