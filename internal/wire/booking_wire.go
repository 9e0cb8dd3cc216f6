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

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - Create new booking
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/{id} - View a booking (participants only, enforced in usecase)
		r.Get("/api/bookings/{id}", bookingHandler.GetBookingByID)

		// PUT /api/bookings/{id}/cancel - Cancel own booking
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)

		// PUT /api/bookings/{id}/complete - Mark session done
		r.Put("/api/bookings/{id}/complete", bookingHandler.CompleteBooking)

		// GET /api/user/bookings - View own booking history
		r.Get("/api/user/bookings", bookingHandler.GetMyBookings)
	})

	// ==================== INTERVIEWER ROUTES ====================
	r.With(
		middleware.AuthSession(repo.Session, repo.User, log),
		middleware.RequireRole(entity.RoleInterviewer, log),
	).Get("/api/interviewer/bookings", bookingHandler.GetInterviewerBookings)
}
