package adaptor

import (
	"net/http"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/dto/request"
	"interview-booking/internal/usecase"
	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

type WalletHandler struct {
	service usecase.WalletService
	log     *zap.Logger
}

func NewWalletHandler(service usecase.WalletService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{
		service: service,
		log:     log,
	}
}

// walletRole derives the wallet role from the authenticated user's role.
// Admins read the platform fee wallet, everyone else their own.
func walletRole(r *http.Request) (entity.UserRole, bool) {
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return "", false
	}
	return entity.UserRole(role), true
}

// GetSummary handles GET /api/wallet (protected)
func (h *WalletHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, ok := walletRole(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	summary, err := h.service.GetSummary(r.Context(), userID.String(), role)
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// GetTransactions handles GET /api/wallet/transactions (protected)
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, ok := walletRole(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	transactions, err := h.service.GetTransactions(r.Context(), userID.String(), role, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get wallet transactions")
		return
	}

	utils.ResponseSuccess(w, "success", transactions)
}
