package wire

import (
	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWallet(
	r chi.Router,
	walletHandler *adaptor.WalletHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/wallet", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/wallet - balance plus credit/debit totals
		r.Get("/", walletHandler.GetSummary)

		// GET /api/wallet/transactions - paginated ledger history
		r.Get("/transactions", walletHandler.GetTransactions)
	})
}
