package usecase

import (
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/database"
	"interview-booking/pkg/mailer"
	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Availability AvailabilityService
	Booking      BookingService
	Wallet       WalletService
	Payment      PaymentService
	Rating       RatingService
}

func NewService(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.EmailService,
	gateway PaymentGateway,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, mail, log),
		Availability: NewAvailabilityService(db, repo, log),
		Booking:      NewBookingService(db, repo, config, log),
		Wallet:       NewWalletService(db, repo, log),
		Payment:      NewPaymentService(db, repo, gateway, config, log),
		Rating:       NewRatingService(repo, log),
	}
}
