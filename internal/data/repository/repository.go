package repository

import (
	"interview-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Availability AvailabilityRepository
	Booking      BookingRepository
	Wallet       WalletRepository
	Rating       RatingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Availability: NewAvailabilityRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Wallet:       NewWalletRepository(db, log),
		Rating:       NewRatingRepository(db, log),
	}
}
