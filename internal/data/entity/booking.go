package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsBlocking reports whether a booking in this status still holds its slot.
func (s BookingStatus) IsBlocking() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusCompleted
}

type PaymentMethod string

const (
	PaymentMethodWallet   PaymentMethod = "wallet"
	PaymentMethodRazorpay PaymentMethod = "razorpay"
)

// ExpiredPendingReason is the fixed reason recorded by the expiry sweep.
const ExpiredPendingReason = "Payment not completed within 10 minutes"

type Booking struct {
	Base
	UserID            uuid.UUID     `db:"user_id"`
	InterviewerID     uuid.UUID     `db:"interviewer_id"`
	Date              string        `db:"date"`
	StartTime         string        `db:"start_time"`
	EndTime           string        `db:"end_time"`
	Amount            int64         `db:"amount"`
	AdminFee          int64         `db:"admin_fee"`
	InterviewerAmount int64         `db:"interviewer_amount"`
	Status            BookingStatus `db:"status"`
	PaymentMethod     PaymentMethod `db:"payment_method"`
	PaymentID         *string       `db:"payment_id"`
	CancelReason      *string       `db:"cancel_reason"`
	Reminder15Sent    bool          `db:"reminder_15_sent"`
	Reminder5Sent     bool          `db:"reminder_5_sent"`
}

// SplitFee computes the platform's cut and the interviewer's share of an
// amount. Rounding is half-up on the fee, so the remainder always lands on
// the interviewer side and adminFee + interviewerAmount == amount holds for
// every positive amount.
func SplitFee(amount int64, feePercent int) (adminFee, interviewerAmount int64) {
	adminFee = (amount*int64(feePercent) + 50) / 100
	interviewerAmount = amount - adminFee
	return adminFee, interviewerAmount
}

// IsParticipant reports whether the given user is a party to the booking.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.UserID == userID || b.InterviewerID == userID
}
