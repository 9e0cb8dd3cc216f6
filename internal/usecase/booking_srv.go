package usecase

import (
	"context"
	"errors"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/internal/dto/response"
	"interview-booking/pkg/database"
	"interview-booking/pkg/timeutil"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// slotUnavailableMsg is returned both by the pre-insert recheck and by the
// unique-index race loss, so callers cannot tell the two apart.
const slotUnavailableMsg = "slot is no longer available"

const (
	reasonBookingPayment   = "Booking payment"
	reasonBookingEarnings  = "Booking earnings"
	reasonPlatformFee      = "Platform fee"
	reasonBookingRefund    = "Booking refund"
	reasonEarningsReversal = "Booking cancelled - earnings reversed"
	reasonFeeReversal      = "Booking cancelled - fee reversed"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, userID, bookingID string, req *request.CancelBookingRequest) error
	CompleteBooking(ctx context.Context, actorID, bookingID string) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, actorID, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetInterviewerBookings(ctx context.Context, interviewerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	db     database.PgxIface
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewBookingService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		db:     db,
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
		now:    time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", userID)
	}
	interviewerUUID, err := uuid.Parse(req.InterviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", req.InterviewerID)
	}

	// Date must be a real calendar date, not in the past, and within the
	// booking horizon.
	day, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid date %s", req.Date)
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, utils.NewError(utils.KindValidation, "cannot book a past date")
	}
	if day.After(today.AddDate(0, 0, s.config.Booking.MaxAdvanceDays)) {
		return nil, utils.NewErrorf(utils.KindValidation, "bookings can be made at most %d days in advance", s.config.Booking.MaxAdvanceDays)
	}

	start, err := timeutil.ParseHHMM(req.StartTime)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid start time %s", req.StartTime)
	}
	end, err := timeutil.ParseHHMM(req.EndTime)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid end time %s", req.EndTime)
	}
	if start >= end {
		return nil, utils.NewError(utils.KindValidation, "start time must be before end time")
	}

	interviewer, err := s.repo.User.FindApprovedInterviewerByID(ctx, interviewerUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to look up interviewer", err)
	}
	if interviewer == nil {
		return nil, utils.NewError(utils.KindNotFound, "interviewer not found or not accepting bookings")
	}

	amount := interviewer.SessionRate
	adminFee, interviewerAmount := entity.SplitFee(amount, s.config.Booking.AdminFeePercent)

	method := entity.PaymentMethod(req.PaymentMethod)
	if method == entity.PaymentMethodWallet {
		wallet, err := s.repo.Wallet.FindWallet(ctx, userUUID, entity.RoleUser)
		if err != nil {
			return nil, utils.WrapError(utils.KindInternal, "failed to check wallet balance", err)
		}
		if wallet == nil || wallet.Balance < amount {
			return nil, utils.NewError(utils.KindValidation, "insufficient wallet balance")
		}
	}

	status := entity.BookingStatusPending
	if method == entity.PaymentMethodWallet {
		// Wallet payment settles synchronously, so the booking confirms
		// immediately.
		status = entity.BookingStatusConfirmed
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:            userUUID,
		InterviewerID:     interviewerUUID,
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		Amount:            amount,
		AdminFee:          adminFee,
		InterviewerAmount: interviewerAmount,
		Status:            status,
		PaymentMethod:     method,
	}

	// The recheck and the insert run in one transaction, and the bookings
	// table carries a partial unique index over blocking statuses. Losing
	// the race surfaces as the same validation error as the recheck.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	existing, err := s.repo.Booking.FindBlockingSlot(ctx, tx, interviewerUUID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to check slot availability", err)
	}
	if existing != nil {
		return nil, utils.NewError(utils.KindValidation, slotUnavailableMsg)
	}

	if err := s.repo.Booking.Create(ctx, tx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, utils.NewError(utils.KindValidation, slotUnavailableMsg)
		}
		return nil, utils.WrapError(utils.KindInternal, "failed to create booking", err)
	}

	if method == entity.PaymentMethodWallet {
		if err := s.postPaymentEntries(ctx, tx, booking); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to commit booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("interviewer_id", req.InterviewerID),
		zap.String("date", req.Date),
		zap.String("slot", req.StartTime+"-"+req.EndTime),
		zap.String("payment_method", req.PaymentMethod),
		zap.String("status", string(booking.Status)),
		zap.Int64("amount", amount),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// postPaymentEntries posts the wallet-payment ledger entries for a booking:
// the user pays, the interviewer earns their share, the platform takes its fee.
func (s *bookingService) postPaymentEntries(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	admin, err := s.repo.User.FindAdmin(ctx)
	if err != nil || admin == nil {
		return utils.WrapError(utils.KindInternal, "failed to resolve platform admin", err)
	}

	bookingID := booking.ID
	postings := []repository.PostParams{
		{
			UserID: booking.UserID, Role: entity.RoleUser,
			Type: entity.TransactionDebit, Amount: booking.Amount,
			Reason: reasonBookingPayment, BookingID: &bookingID,
		},
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
		if _, err := s.repo.Wallet.Post(ctx, q, p); err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				return utils.NewError(utils.KindValidation, "insufficient wallet balance")
			}
			return utils.WrapError(utils.KindInternal, "failed to post ledger entry", err)
		}
	}

	return nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string, req *request.CancelBookingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, actorUUID, err := s.findBooking(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != actorUUID {
		return utils.NewError(utils.KindForbidden, "only the booking owner can cancel it")
	}

	switch booking.Status {
	case entity.BookingStatusCancelled:
		return utils.NewError(utils.KindValidation, "booking is already cancelled")
	case entity.BookingStatusCompleted:
		return utils.NewError(utils.KindValidation, "completed bookings cannot be cancelled")
	}

	sessionStart, err := timeutil.CombineUTC(booking.Date, booking.StartTime)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "stored booking has invalid date or time", err)
	}
	if sessionStart.Sub(s.now().UTC()) <= s.config.Booking.CancelCutoff {
		return utils.NewError(utils.KindValidation, "bookings can only be cancelled more than 24 hours before the session starts")
	}

	// Refund postings and the status flip apply as one unit; a failed posting
	// leaves the booking untouched.
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return utils.WrapError(utils.KindInternal, "failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	if booking.Status == entity.BookingStatusConfirmed {
		if err := s.postRefundEntries(ctx, tx, booking); err != nil {
			return err
		}
	}

	if err := s.repo.Booking.Cancel(ctx, tx, booking.ID, req.Reason); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to cancel booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return utils.WrapError(utils.KindInternal, "failed to commit cancellation", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("user_id", userID),
		zap.String("reason", req.Reason),
	)
	return nil
}

// postRefundEntries reverses the payment ledger: the user gets the full amount
// back, the interviewer and the platform give up their shares.
func (s *bookingService) postRefundEntries(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	admin, err := s.repo.User.FindAdmin(ctx)
	if err != nil || admin == nil {
		return utils.WrapError(utils.KindInternal, "failed to resolve platform admin", err)
	}

	bookingID := booking.ID
	postings := []repository.PostParams{
		{
			UserID: booking.UserID, Role: entity.RoleUser,
			Type: entity.TransactionCredit, Amount: booking.Amount,
			Reason: reasonBookingRefund, BookingID: &bookingID,
		},
		{
			UserID: booking.InterviewerID, Role: entity.RoleInterviewer,
			Type: entity.TransactionDebit, Amount: booking.InterviewerAmount,
			Reason: reasonEarningsReversal, BookingID: &bookingID,
			InterviewerFee: &booking.InterviewerAmount, AdminFee: &booking.AdminFee,
		},
		{
			UserID: admin.ID, Role: entity.RoleAdmin,
			Type: entity.TransactionDebit, Amount: booking.AdminFee,
			Reason: reasonFeeReversal, BookingID: &bookingID,
			AdminFee: &booking.AdminFee,
		},
	}

	for _, p := range postings {
		if _, err := s.repo.Wallet.Post(ctx, q, p); err != nil {
			if errors.Is(err, repository.ErrInsufficientBalance) {
				return utils.NewError(utils.KindValidation, "wallet balance too low to reverse this booking")
			}
			return utils.WrapError(utils.KindInternal, "failed to post refund entry", err)
		}
	}

	return nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, actorID, bookingID string) (*response.BookingResponse, error) {
	booking, actorUUID, err := s.findBooking(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(actorUUID) {
		return nil, utils.NewError(utils.KindForbidden, "only a participant can complete this booking")
	}

	switch booking.Status {
	case entity.BookingStatusCancelled:
		return nil, utils.NewError(utils.KindValidation, "cancelled bookings cannot be completed")
	case entity.BookingStatusCompleted:
		// Repeat calls are a no-op.
		resp := response.BookingToResponse(booking)
		return &resp, nil
	case entity.BookingStatusPending:
		return nil, utils.NewError(utils.KindValidation, "booking has not been paid yet")
	}

	if err := s.repo.Booking.Complete(ctx, booking.ID); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to complete booking", err)
	}

	booking.Status = entity.BookingStatusCompleted
	booking.UpdatedAt = s.now()

	s.log.Info("Booking completed",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actorID),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, actorID, bookingID string) (*response.BookingResponse, error) {
	booking, actorUUID, err := s.findBooking(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsParticipant(actorUUID) {
		return nil, utils.NewError(utils.KindForbidden, "not a participant of this booking")
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) findBooking(ctx context.Context, actorID, bookingID string) (*entity.Booking, uuid.UUID, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, uuid.Nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", actorID)
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, uuid.Nil, utils.NewErrorf(utils.KindValidation, "invalid booking ID format %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, uuid.Nil, utils.WrapError(utils.KindInternal, "failed to load booking", err)
	}
	if booking == nil {
		return nil, uuid.Nil, utils.NewErrorf(utils.KindNotFound, "booking %s not found", bookingID)
	}

	return booking, actorUUID, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", userID)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load bookings", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to count bookings", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetInterviewerBookings(ctx context.Context, interviewerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	bookings, err := s.repo.Booking.FindByInterviewerID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load bookings", err)
	}

	total, err := s.repo.Booking.CountByInterviewerID(ctx, id)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to count bookings", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = response.BookingToResponse(b)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
