package wire

import (
	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).Get("/api/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/interviewers", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// PUT /api/admin/interviewers/{id}/approval - approve or revoke an interviewer
		r.Put("/{id}/approval", userHandler.ApproveInterviewer)
	})
}
