package wire

import (
	"interview-booking/internal/adaptor"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/middleware"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/interviewers/{id}/ratings - browse an interviewer's ratings
	r.Get("/api/interviewers/{id}/ratings", ratingHandler.GetInterviewerRatings)

	// GET /api/interviewers/{id}/rating-stats - average score + count
	r.Get("/api/interviewers/{id}/rating-stats", ratingHandler.GetInterviewerRatingStats)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/ratings - rate a completed session (candidate only)
		r.Post("/api/ratings", ratingHandler.RateBooking)
	})
}
