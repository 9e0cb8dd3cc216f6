package wire

import (
	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Public routes (tanpa auth middleware)
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	// Logout - PROTECTED (butuh auth)
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Post("/api/auth/logout", authHandler.Logout)
}
