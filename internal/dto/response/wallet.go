package response

import (
	"time"

	"interview-booking/internal/data/entity"
)

type WalletSummaryResponse struct {
	Balance      int64 `json:"balance"`
	TotalCredits int64 `json:"total_credits"`
	TotalDebits  int64 `json:"total_debits"`
}

type WalletTransactionResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	BookingID *string   `json:"booking_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func WalletTransactionToResponse(t *entity.WalletTransaction) WalletTransactionResponse {
	resp := WalletTransactionResponse{
		ID:        t.ID.String(),
		Type:      string(t.Type),
		Amount:    t.Amount,
		Reason:    t.Reason,
		CreatedAt: t.CreatedAt,
	}
	if t.BookingID != nil {
		id := t.BookingID.String()
		resp.BookingID = &id
	}
	return resp
}
