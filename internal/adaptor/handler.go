package adaptor

import (
	"net/http"

	"interview-booking/internal/usecase"
	"interview-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Wallet       *WalletHandler
	Payment      *PaymentHandler
	Rating       *RatingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Wallet:       NewWalletHandler(service.Wallet, log),
		Payment:      NewPaymentHandler(service.Payment, log),
		Rating:       NewRatingHandler(service.Rating, log),
	}
}

// handleServiceError maps a classified usecase error onto the right HTTP
// response. Unclassified errors stay 500 and never leak internals.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	msg := utils.MessageOf(err)

	switch utils.KindOf(err) {
	case utils.KindValidation:
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	case utils.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, msg)

	case utils.KindForbidden:
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, msg)

	case utils.KindUnauthorized:
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, msg)

	case utils.KindPayment:
		log.Warn(operation+" failed - payment", zap.Error(err))
		utils.ResponseBadRequest(w, msg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
