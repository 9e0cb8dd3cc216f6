package entity

import (
	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Wallet holds the cached balance for one (user, role) pair. The balance is
// derived from the append-only transaction log and updated atomically with
// each transaction insert.
type Wallet struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	Role    UserRole  `db:"role"`
	Balance int64     `db:"balance"`
}

// WalletTransaction is an immutable ledger row. Rows are never updated or
// deleted once written.
type WalletTransaction struct {
	BaseSimple
	WalletID       uuid.UUID       `db:"wallet_id"`
	Type           TransactionType `db:"type"`
	Amount         int64           `db:"amount"`
	Reason         string          `db:"reason"`
	BookingID      *uuid.UUID      `db:"booking_id"`
	InterviewerFee *int64          `db:"interviewer_fee"`
	AdminFee       *int64          `db:"admin_fee"`
}
