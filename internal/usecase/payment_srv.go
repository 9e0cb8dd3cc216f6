package usecase

import (
	"context"
	"errors"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/internal/dto/response"
	"interview-booking/pkg/database"
	"interview-booking/pkg/razorpay"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway creates externally-payable orders. Implemented by the
// razorpay client.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*razorpay.Order, error)
}

type PaymentService interface {
	CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	VerifyPayment(ctx context.Context, userID string, req *request.VerifyPaymentRequest) (*response.BookingResponse, error)
}

type paymentService struct {
	db      database.PgxIface
	repo    *repository.Repository
	gateway PaymentGateway
	config  *utils.Config
	log     *zap.Logger
}

func NewPaymentService(db database.PgxIface, repo *repository.Repository, gateway PaymentGateway, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		db:      db,
		repo:    repo,
		gateway: gateway,
		config:  config,
		log:     log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.loadPendingGatewayBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	// The gateway wants minor currency units.
	order, err := s.gateway.CreateOrder(ctx, booking.Amount*100, "INR", booking.ID.String())
	if err != nil {
		s.log.Error("Failed to create payment order",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, utils.WrapError(utils.KindPayment, "failed to create payment order", err)
	}

	s.log.Info("Payment order created",
		zap.String("booking_id", req.BookingID),
		zap.String("order_id", order.ID),
	)

	return &response.OrderResponse{
		OrderID:   order.ID,
		BookingID: booking.ID.String(),
		Amount:    order.Amount,
		Currency:  order.Currency,
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, userID string, req *request.VerifyPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.loadPendingGatewayBooking(ctx, userID, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Signature check first: a mismatch leaves the booking untouched.
	if !razorpay.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.config.Payment.RazorpaySecret) {
		s.log.Warn("Payment signature mismatch",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.OrderID),
		)
		return nil, utils.NewError(utils.KindPayment, "payment signature verification failed")
	}

	// Confirmation and the earnings/fee postings apply as one unit. The user
	// side was settled at the gateway, so no user-wallet entry here.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Booking.Confirm(ctx, tx, booking.ID, req.PaymentID); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to confirm booking", err)
	}

	admin, err := s.repo.User.FindAdmin(ctx)
	if err != nil || admin == nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to resolve platform admin", err)
	}

	bookingID := booking.ID
	postings := []repository.PostParams{
		{
			UserID: booking.InterviewerID, Role: entity.RoleInterviewer,
			Type: entity.TransactionCredit, Amount: booking.InterviewerAmount,
			Reason: reasonBookingEarnings, BookingID: &bookingID,
			InterviewerFee: &booking.InterviewerAmount, AdminFee: &booking.AdminFee,
		},
		{
			UserID: admin.ID, Role: entity.RoleAdmin,
			Type: entity.TransactionCredit, Amount: booking.AdminFee,
			Reason: reasonPlatformFee, BookingID: &bookingID,
			AdminFee: &booking.AdminFee,
		},
	}
	for _, p := range postings {
		if _, err := s.repo.Wallet.Post(ctx, tx, p); err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				return nil, utils.NewError(utils.KindInternal, "ledger rejected payment posting")
			}
			return nil, utils.WrapError(utils.KindInternal, "failed to post ledger entry", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to commit payment confirmation", err)
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentID = &req.PaymentID

	s.log.Info("Payment verified",
		zap.String("booking_id", req.BookingID),
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// loadPendingGatewayBooking enforces the shared preconditions of both payment
// operations: the booking exists, belongs to the caller, pays through the
// gateway, and is still pending.
func (s *paymentService) loadPendingGatewayBooking(ctx context.Context, userID, bookingID string) (*entity.Booking, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", userID)
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load booking", err)
	}
	if booking == nil {
		return nil, utils.NewErrorf(utils.KindNotFound, "booking %s not found", bookingID)
	}
	if booking.UserID != userUUID {
		return nil, utils.NewError(utils.KindForbidden, "booking belongs to another user")
	}
	if booking.PaymentMethod != entity.PaymentMethodRazorpay {
		return nil, utils.NewError(utils.KindValidation, "booking is not paid through the payment gateway")
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, utils.NewErrorf(utils.KindValidation, "booking is %s, payment can only apply to a pending booking", booking.Status)
	}

	return booking, nil
}
