package wire

import (
	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/payments", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/payments/order - create a gateway order for a pending booking
		r.Post("/order", paymentHandler.CreateOrder)

		// POST /api/payments/verify - verify gateway signature and confirm
		r.Post("/verify", paymentHandler.VerifyPayment)
	})
}
