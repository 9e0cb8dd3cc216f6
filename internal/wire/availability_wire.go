package wire

import (
	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAvailability(
	r chi.Router,
	availabilityHandler *adaptor.AvailabilityHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// Slot lookup is open to any authenticated user
	r.With(middleware.AuthSession(repo.Session, repo.User, log)).
		Get("/api/interviewers/{id}/slots", availabilityHandler.GetAvailableSlots)

	// ==================== INTERVIEWER ROUTES ====================
	// Availability management belongs to the interviewer themselves
	r.Route("/api/interviewer/availability", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireRole(entity.RoleInterviewer, log))

		r.Put("/", availabilityHandler.SaveRules)
		r.Get("/", availabilityHandler.GetRules)
		r.Post("/blocked-dates", availabilityHandler.AddBlockedDate)
		r.Delete("/blocked-dates/{date}", availabilityHandler.RemoveBlockedDate)
		r.Post("/excluded-ranges", availabilityHandler.AddExcludedRange)
	})
}
