package usecase

import (
	"context"
	"errors"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/internal/dto/response"
	"interview-booking/pkg/database"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WalletService interface {
	PostTransaction(ctx context.Context, p repository.PostParams) (*entity.WalletTransaction, error)
	GetSummary(ctx context.Context, userID string, role entity.UserRole) (*response.WalletSummaryResponse, error)
	GetTransactions(ctx context.Context, userID string, role entity.UserRole, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WalletTransactionResponse], error)
}

type walletService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewWalletService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) WalletService {
	return &walletService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "wallet")),
	}
}

// PostTransaction applies a standalone ledger posting in its own transaction.
// Booking flows bundle their postings with the booking row change instead.
func (s *walletService) PostTransaction(ctx context.Context, p repository.PostParams) (*entity.WalletTransaction, error) {
	if p.Amount <= 0 {
		return nil, utils.NewError(utils.KindValidation, "amount must be positive")
	}
	if p.Type != entity.TransactionCredit && p.Type != entity.TransactionDebit {
		return nil, utils.NewErrorf(utils.KindValidation, "unknown transaction type %s", p.Type)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	txn, err := s.repo.Wallet.Post(ctx, tx, p)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, utils.NewError(utils.KindValidation, "insufficient wallet balance")
		}
		return nil, utils.WrapError(utils.KindInternal, "failed to post transaction", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to commit transaction", err)
	}

	s.log.Info("Wallet transaction posted",
		zap.String("user_id", p.UserID.String()),
		zap.String("role", string(p.Role)),
		zap.String("type", string(p.Type)),
		zap.Int64("amount", p.Amount),
		zap.String("reason", p.Reason),
	)
	return txn, nil
}

func (s *walletService) GetSummary(ctx context.Context, userID string, role entity.UserRole) (*response.WalletSummaryResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", userID)
	}

	summary, err := s.repo.Wallet.GetSummary(ctx, id, role)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load wallet summary", err)
	}

	return &response.WalletSummaryResponse{
		Balance:      summary.Balance,
		TotalCredits: summary.TotalCredits,
		TotalDebits:  summary.TotalDebits,
	}, nil
}

func (s *walletService) GetTransactions(ctx context.Context, userID string, role entity.UserRole, req *request.PaginatedRequest) (*response.PaginatedResponse[response.WalletTransactionResponse], error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", userID)
	}

	txns, err := s.repo.Wallet.FindTransactions(ctx, id, role, req.Limit(), req.Offset())
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load wallet transactions", err)
	}

	total, err := s.repo.Wallet.CountTransactions(ctx, id, role)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to count wallet transactions", err)
	}

	items := make([]response.WalletTransactionResponse, len(txns))
	for i, t := range txns {
		items[i] = response.WalletTransactionToResponse(t)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
