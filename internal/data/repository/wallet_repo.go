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
	"go.uber.org/zap"
)

// ErrInsufficientBalance is returned when a debit would take a wallet below zero.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")

// PostParams describes one ledger posting.
type PostParams struct {
	UserID         uuid.UUID
	Role           entity.UserRole
	Type           entity.TransactionType
	Amount         int64
	Reason         string
	BookingID      *uuid.UUID
	InterviewerFee *int64
	AdminFee       *int64
}

// WalletSummary aggregates a wallet's transaction history.
type WalletSummary struct {
	Balance      int64
	TotalCredits int64
	TotalDebits  int64
}

type WalletRepository interface {
	// Post applies one ledger posting: balance update plus transaction-row
	// insert on the same querier. Callers bundle multiple postings and a
	// booking status change by passing an open transaction.
	Post(ctx context.Context, q database.Querier, p PostParams) (*entity.WalletTransaction, error)
	FindWallet(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.Wallet, error)
	GetSummary(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*WalletSummary, error)
	FindTransactions(ctx context.Context, userID uuid.UUID, role entity.UserRole, limit, offset int) ([]*entity.WalletTransaction, error)
	CountTransactions(ctx context.Context, userID uuid.UUID, role entity.UserRole) (int64, error)
}

type walletRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWalletRepository(db database.PgxIface, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet")),
	}
}

func (r *walletRepository) Post(ctx context.Context, q database.Querier, p PostParams) (*entity.WalletTransaction, error) {
	if p.Amount <= 0 {
		return nil, fmt.Errorf("posting amount must be positive, got %d", p.Amount)
	}

	// Get-or-create the wallet row, then apply the balance delta atomically.
	// The UPDATE serializes concurrent postings on the wallet row lock.
	now := time.Now()
	ensure := `
		INSERT INTO wallets (id, user_id, role, balance, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $4)
		ON CONFLICT (user_id, role) DO NOTHING
	`
	if _, err := q.Exec(ctx, ensure, uuid.New(), p.UserID, p.Role, now); err != nil {
		r.log.Error("Failed to ensure wallet",
			zap.Error(err),
			zap.String("user_id", p.UserID.String()),
			zap.String("role", string(p.Role)),
		)
		return nil, fmt.Errorf("ensure wallet for %s/%s: %w", p.UserID.String(), p.Role, err)
	}

	var update string
	if p.Type == entity.TransactionCredit {
		update = `
			UPDATE wallets SET balance = balance + $3, updated_at = NOW()
			WHERE user_id = $1 AND role = $2
			RETURNING id
		`
	} else {
		update = `
			UPDATE wallets SET balance = balance - $3, updated_at = NOW()
			WHERE user_id = $1 AND role = $2 AND balance >= $3
			RETURNING id
		`
	}

	var walletID uuid.UUID
	err := q.QueryRow(ctx, update, p.UserID, p.Role, p.Amount).Scan(&walletID)
	if err == pgx.ErrNoRows {
		// Debit guard rejected the update.
		return nil, ErrInsufficientBalance
	}
	if err != nil {
		r.log.Error("Failed to update wallet balance",
			zap.Error(err),
			zap.String("user_id", p.UserID.String()),
			zap.String("role", string(p.Role)),
			zap.String("type", string(p.Type)),
			zap.Int64("amount", p.Amount),
		)
		return nil, fmt.Errorf("update wallet balance for %s/%s: %w", p.UserID.String(), p.Role, err)
	}

	txn := &entity.WalletTransaction{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		WalletID:       walletID,
		Type:           p.Type,
		Amount:         p.Amount,
		Reason:         p.Reason,
		BookingID:      p.BookingID,
		InterviewerFee: p.InterviewerFee,
		AdminFee:       p.AdminFee,
	}

	insert := `
		INSERT INTO wallet_transactions (id, wallet_id, type, amount, reason,
		                                booking_id, interviewer_fee, admin_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = q.Exec(ctx, insert,
		txn.ID,
		txn.WalletID,
		txn.Type,
		txn.Amount,
		txn.Reason,
		txn.BookingID,
		txn.InterviewerFee,
		txn.AdminFee,
		txn.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert wallet transaction",
			zap.Error(err),
			zap.String("wallet_id", walletID.String()),
		)
		return nil, fmt.Errorf("insert wallet transaction for %s: %w", walletID.String(), err)
	}

	return txn, nil
}

func (r *walletRepository) FindWallet(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.Wallet, error) {
	query := `
		SELECT id, user_id, role, balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1 AND role = $2
	`

	var w entity.Wallet
	err := r.db.QueryRow(ctx, query, userID, role).Scan(
		&w.ID,
		&w.UserID,
		&w.Role,
		&w.Balance,
		&w.CreatedAt,
		&w.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wallet",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("find wallet for %s/%s: %w", userID.String(), role, err)
	}

	return &w, nil
}

func (r *walletRepository) GetSummary(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*WalletSummary, error) {
	query := `
		SELECT COALESCE(w.balance, 0),
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'credit'), 0),
		       COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'debit'), 0)
		FROM wallets w
		LEFT JOIN wallet_transactions t ON t.wallet_id = w.id
		WHERE w.user_id = $1 AND w.role = $2
		GROUP BY w.balance
	`

	var summary WalletSummary
	err := r.db.QueryRow(ctx, query, userID, role).Scan(
		&summary.Balance,
		&summary.TotalCredits,
		&summary.TotalDebits,
	)

	if err == pgx.ErrNoRows {
		// No wallet yet: everything is zero.
		return &WalletSummary{}, nil
	}
	if err != nil {
		r.log.Error("Failed to get wallet summary",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("wallet summary for %s/%s: %w", userID.String(), role, err)
	}

	return &summary, nil
}

func (r *walletRepository) FindTransactions(ctx context.Context, userID uuid.UUID, role entity.UserRole, limit, offset int) ([]*entity.WalletTransaction, error) {
	query := `
		SELECT t.id, t.wallet_id, t.type, t.amount, t.reason,
		       t.booking_id, t.interviewer_fee, t.admin_fee, t.created_at
		FROM wallet_transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1 AND w.role = $2
		ORDER BY t.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, userID, role, limit, offset)
	if err != nil {
		r.log.Error("Failed to find wallet transactions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return nil, fmt.Errorf("find wallet transactions for %s/%s: %w", userID.String(), role, err)
	}
	defer rows.Close()

	var txns []*entity.WalletTransaction
	for rows.Next() {
		var t entity.WalletTransaction
		err := rows.Scan(
			&t.ID,
			&t.WalletID,
			&t.Type,
			&t.Amount,
			&t.Reason,
			&t.BookingID,
			&t.InterviewerFee,
			&t.AdminFee,
			&t.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan wallet transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan wallet transaction row: %w", err)
		}
		txns = append(txns, &t)
	}

	return txns, rows.Err()
}

func (r *walletRepository) CountTransactions(ctx context.Context, userID uuid.UUID, role entity.UserRole) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM wallet_transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1 AND w.role = $2
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, role).Scan(&count); err != nil {
		r.log.Error("Failed to count wallet transactions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
		)
		return 0, fmt.Errorf("count wallet transactions for %s/%s: %w", userID.String(), role, err)
	}

	return count, nil
}
