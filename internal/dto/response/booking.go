package response

import (
	"time"

	"interview-booking/internal/data/entity"
)

type BookingResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	InterviewerID     string    `json:"interviewer_id"`
	Date              string    `json:"date"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	Amount            int64     `json:"amount"`
	AdminFee          int64     `json:"admin_fee"`
	InterviewerAmount int64     `json:"interviewer_amount"`
	Status            string    `json:"status"`
	PaymentMethod     string    `json:"payment_method"`
	PaymentID         *string   `json:"payment_id,omitempty"`
	CancelReason      *string   `json:"cancel_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type OrderResponse struct {
	OrderID   string `json:"order_id"`
	BookingID string `json:"booking_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID.String(),
		UserID:            b.UserID.String(),
		InterviewerID:     b.InterviewerID.String(),
		Date:              b.Date,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		Amount:            b.Amount,
		AdminFee:          b.AdminFee,
		InterviewerAmount: b.InterviewerAmount,
		Status:            string(b.Status),
		PaymentMethod:     string(b.PaymentMethod),
		PaymentID:         b.PaymentID,
		CancelReason:      b.CancelReason,
		CreatedAt:         b.CreatedAt,
	}
}
