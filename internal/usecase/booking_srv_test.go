package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
)

func testBookingConfig() *utils.Config {
	return &utils.Config{
		Booking: utils.BookingConfig{
			AdminFeePercent: 10,
			PendingExpiry:   10 * time.Minute,
			CancelCutoff:    24 * time.Hour,
			MaxAdvanceDays:  365,
		},
	}
}

type bookingFixture struct {
	svc      *bookingService
	db       *fakeDB
	users    *stubUserRepo
	bookings *stubBookingRepo
	wallets  *stubWalletRepo

	userID        uuid.UUID
	interviewerID uuid.UUID
	adminID       uuid.UUID
}

// newBookingFixture wires a booking service against stub repos with one
// approved interviewer charging 500 and a user wallet holding `balance`.
func newBookingFixture(t *testing.T, balance int64) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		db:            newFakeDB(),
		userID:        uuid.New(),
		interviewerID: uuid.New(),
		adminID:       uuid.New(),
	}

	f.users = &stubUserRepo{
		findApprovedInterviewer: func(id uuid.UUID) (*entity.User, error) {
			if id == f.interviewerID {
				return &entity.User{
					Base:        entity.Base{ID: f.interviewerID},
					Role:        entity.RoleInterviewer,
					SessionRate: 500,
				}, nil
			}
			return nil, nil
		},
		findAdmin: func() (*entity.User, error) {
			return &entity.User{Base: entity.Base{ID: f.adminID}, Role: entity.RoleAdmin}, nil
		},
	}
	f.bookings = &stubBookingRepo{
		create:           func(*entity.Booking) error { return nil },
		findBlockingSlot: func(uuid.UUID, string, string, string) (*entity.Booking, error) { return nil, nil },
		cancel:           func(uuid.UUID, string) error { return nil },
		complete:         func(uuid.UUID) error { return nil },
	}
	f.wallets = &stubWalletRepo{
		findWallet: func(userID uuid.UUID, role entity.UserRole) (*entity.Wallet, error) {
			return &entity.Wallet{UserID: userID, Role: role, Balance: balance}, nil
		},
	}

	repo := &repository.Repository{
		User:    f.users,
		Booking: f.bookings,
		Wallet:  f.wallets,
	}
	f.svc = &bookingService{
		db:     f.db,
		repo:   repo,
		config: testBookingConfig(),
		log:    testLogger,
		now:    fixedNow("2024-01-01T12:00:00Z"),
	}
	return f
}

func (f *bookingFixture) createRequest(method string) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		InterviewerID: f.interviewerID.String(),
		Date:          "2024-01-10",
		StartTime:     "10:00",
		EndTime:       "11:00",
		PaymentMethod: method,
	}
}

func TestCreateBookingWalletConfirmsAndPosts(t *testing.T) {
	f := newBookingFixture(t, 1000)

	got, err := f.svc.CreateBooking(context.Background(), f.userID.String(), f.createRequest("wallet"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if got.Status != string(entity.BookingStatusConfirmed) {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
	if got.Amount != 500 || got.AdminFee != 50 || got.InterviewerAmount != 450 {
		t.Errorf("split = %d/%d/%d, want 500/50/450", got.Amount, got.AdminFee, got.InterviewerAmount)
	}
	if !f.db.tx.committed {
		t.Error("transaction was not committed")
	}

	if len(f.wallets.postings) != 3 {
		t.Fatalf("posting count = %d, want 3", len(f.wallets.postings))
	}
	p := f.wallets.postings
	if p[0].Type != entity.TransactionDebit || p[0].Amount != 500 || p[0].UserID != f.userID {
		t.Errorf("user posting = %+v, want 500 debit for user", p[0])
	}
	if p[1].Type != entity.TransactionCredit || p[1].Amount != 450 || p[1].UserID != f.interviewerID {
		t.Errorf("interviewer posting = %+v, want 450 credit", p[1])
	}
	if p[2].Type != entity.TransactionCredit || p[2].Amount != 50 || p[2].UserID != f.adminID {
		t.Errorf("admin posting = %+v, want 50 credit", p[2])
	}
}

func TestCreateBookingRazorpayStaysPending(t *testing.T) {
	f := newBookingFixture(t, 0)

	got, err := f.svc.CreateBooking(context.Background(), f.userID.String(), f.createRequest("razorpay"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if got.Status != string(entity.BookingStatusPending) {
		t.Errorf("status = %s, want pending", got.Status)
	}
	if len(f.wallets.postings) != 0 {
		t.Errorf("razorpay booking posted %d ledger entries before payment", len(f.wallets.postings))
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture(t, 1000)

	cases := []struct {
		name   string
		mutate func(r *request.CreateBookingRequest)
	}{
		{"past date", func(r *request.CreateBookingRequest) { r.Date = "2023-12-31" }},
		{"impossible date", func(r *request.CreateBookingRequest) { r.Date = "2024-02-30" }},
		{"beyond horizon", func(r *request.CreateBookingRequest) { r.Date = "2026-01-01" }},
		{"bad start time", func(r *request.CreateBookingRequest) { r.StartTime = "10am" }},
		{"start after end", func(r *request.CreateBookingRequest) { r.StartTime = "12:00"; r.EndTime = "11:00" }},
		{"unknown method", func(r *request.CreateBookingRequest) { r.PaymentMethod = "cash" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := f.createRequest("wallet")
			tc.mutate(req)
			_, err := f.svc.CreateBooking(context.Background(), f.userID.String(), req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if utils.KindOf(err) != utils.KindValidation {
				t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
			}
		})
	}
}

func TestCreateBookingInterviewerNotBookable(t *testing.T) {
	f := newBookingFixture(t, 1000)
	f.users.findApprovedInterviewer = func(uuid.UUID) (*entity.User, error) { return nil, nil }

	_, err := f.svc.CreateBooking(context.Background(), f.userID.String(), f.createRequest("wallet"))
	if err == nil {
		t.Fatal("expected error for unapproved interviewer")
	}
	if utils.KindOf(err) != utils.KindNotFound {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindNotFound)
	}
}

func TestCreateBookingInsufficientBalance(t *testing.T) {
	f := newBookingFixture(t, 499)

	_, err := f.svc.CreateBooking(context.Background(), f.userID.String(), f.createRequest("wallet"))
	if err == nil {
		t.Fatal("expected error for low balance")
	}
	if utils.KindOf(err) != utils.KindValidation {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
	}
	if len(f.wallets.postings) != 0 {
		t.Errorf("ledger was touched despite failed balance check")
	}
}

func TestCreateBookingSlotTakenPrecheck(t *testing.T) {
	f := newBookingFixture(t, 1000)
	f.bookings.findBlockingSlot = func(uuid.UUID, string, string, string) (*entity.Booking, error) {
		return &entity.Booking{Status: entity.BookingStatusConfirmed}, nil
	}

	_, err := f.svc.CreateBooking(context.Background(), f.userID.String(), f.createRequest("wallet"))
	if err == nil {
		t.Fatal("expected slot-taken error")
	}
	if utils.MessageOf(err) != slotUnavailableMsg {
		t.Errorf("message = %q, want %q", utils.MessageOf(err), slotUnavailableMsg)
	}
}

func TestCreateBookingSlotTakenRace(t *testing.T) {
	// A concurrent writer wins between the recheck and the insert: the
	// unique index rejects our row, and the caller sees the same message
	// as a precheck miss.
	f := newBookingFixture(t, 1000)
	f.bookings.create = func(*entity.Booking) error { return repository.ErrSlotTaken }

	_, err := f.svc.CreateBooking(context.Background(), f.userID.String(), f.createRequest("wallet"))
	if err == nil {
		t.Fatal("expected slot-taken error")
	}
	if utils.KindOf(err) != utils.KindValidation {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
	}
	if utils.MessageOf(err) != slotUnavailableMsg {
		t.Errorf("message = %q, want %q", utils.MessageOf(err), slotUnavailableMsg)
	}
	if f.db.tx.committed {
		t.Error("transaction committed despite losing the race")
	}
}

func confirmedBooking(f *bookingFixture, date, start string) *entity.Booking {
	adminFee, interviewerAmount := entity.SplitFee(500, 10)
	return &entity.Booking{
		Base:              entity.Base{ID: uuid.New()},
		UserID:            f.userID,
		InterviewerID:     f.interviewerID,
		Date:              date,
		StartTime:         start,
		EndTime:           "11:00",
		Amount:            500,
		AdminFee:          adminFee,
		InterviewerAmount: interviewerAmount,
		Status:            entity.BookingStatusConfirmed,
		PaymentMethod:     entity.PaymentMethodWallet,
	}
}

func TestCancelBookingRefundsConfirmed(t *testing.T) {
	f := newBookingFixture(t, 1000)
	// now is 2024-01-01T12:00Z; the session is comfortably past the cutoff.
	booking := confirmedBooking(f, "2024-01-10", "10:00")
	f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

	cancelled := false
	f.bookings.cancel = func(_ uuid.UUID, reason string) error {
		cancelled = true
		if reason != "schedule conflict" {
			t.Errorf("cancel reason = %q", reason)
		}
		return nil
	}

	err := f.svc.CancelBooking(context.Background(), f.userID.String(), booking.ID.String(),
		&request.CancelBookingRequest{Reason: "schedule conflict"})
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if !cancelled {
		t.Error("booking row was not cancelled")
	}
	if !f.db.tx.committed {
		t.Error("transaction was not committed")
	}

	if len(f.wallets.postings) != 3 {
		t.Fatalf("posting count = %d, want 3 reversals", len(f.wallets.postings))
	}
	p := f.wallets.postings
	if p[0].Type != entity.TransactionCredit || p[0].Amount != 500 || p[0].UserID != f.userID {
		t.Errorf("refund posting = %+v, want 500 credit to user", p[0])
	}
	if p[1].Type != entity.TransactionDebit || p[1].Amount != 450 || p[1].UserID != f.interviewerID {
		t.Errorf("reversal posting = %+v, want 450 debit from interviewer", p[1])
	}
	if p[2].Type != entity.TransactionDebit || p[2].Amount != 50 || p[2].UserID != f.adminID {
		t.Errorf("fee reversal = %+v, want 50 debit from admin", p[2])
	}
}

func TestCancelBookingInsideCutoff(t *testing.T) {
	f := newBookingFixture(t, 1000)
	// Session starts 22 hours after the fixed now.
	booking := confirmedBooking(f, "2024-01-02", "10:00")
	f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

	err := f.svc.CancelBooking(context.Background(), f.userID.String(), booking.ID.String(),
		&request.CancelBookingRequest{Reason: "too late"})
	if err == nil {
		t.Fatal("expected cutoff error")
	}
	if utils.KindOf(err) != utils.KindValidation {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
	}
	if !strings.Contains(utils.MessageOf(err), "24 hours") {
		t.Errorf("message = %q, want cutoff explanation", utils.MessageOf(err))
	}
	if len(f.wallets.postings) != 0 {
		t.Errorf("ledger was touched despite cutoff rejection")
	}
}

func TestCancelBookingPendingSkipsLedger(t *testing.T) {
	f := newBookingFixture(t, 1000)
	booking := confirmedBooking(f, "2024-01-10", "10:00")
	booking.Status = entity.BookingStatusPending
	booking.PaymentMethod = entity.PaymentMethodRazorpay
	f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

	err := f.svc.CancelBooking(context.Background(), f.userID.String(), booking.ID.String(),
		&request.CancelBookingRequest{Reason: "changed my mind"})
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if len(f.wallets.postings) != 0 {
		t.Errorf("pending booking produced %d reversals, want 0", len(f.wallets.postings))
	}
}

func TestCancelBookingNotOwner(t *testing.T) {
	f := newBookingFixture(t, 1000)
	booking := confirmedBooking(f, "2024-01-10", "10:00")
	f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

	// Even the interviewer cannot cancel through this path.
	err := f.svc.CancelBooking(context.Background(), f.interviewerID.String(), booking.ID.String(),
		&request.CancelBookingRequest{Reason: "nope"})
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if utils.KindOf(err) != utils.KindForbidden {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindForbidden)
	}
}

func TestCancelBookingTerminalStates(t *testing.T) {
	f := newBookingFixture(t, 1000)
	for _, status := range []entity.BookingStatus{entity.BookingStatusCancelled, entity.BookingStatusCompleted} {
		booking := confirmedBooking(f, "2024-01-10", "10:00")
		booking.Status = status
		f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

		err := f.svc.CancelBooking(context.Background(), f.userID.String(), booking.ID.String(),
			&request.CancelBookingRequest{Reason: "retry"})
		if err == nil {
			t.Fatalf("status %s: expected error", status)
		}
		if utils.KindOf(err) != utils.KindValidation {
			t.Errorf("status %s: kind = %s, want %s", status, utils.KindOf(err), utils.KindValidation)
		}
	}
}

func TestCompleteBookingTransitions(t *testing.T) {
	f := newBookingFixture(t, 1000)

	t.Run("confirmed completes", func(t *testing.T) {
		booking := confirmedBooking(f, "2024-01-10", "10:00")
		f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

		completed := false
		f.bookings.complete = func(uuid.UUID) error { completed = true; return nil }

		got, err := f.svc.CompleteBooking(context.Background(), f.interviewerID.String(), booking.ID.String())
		if err != nil {
			t.Fatalf("CompleteBooking: %v", err)
		}
		if !completed {
			t.Error("repository Complete was not called")
		}
		if got.Status != string(entity.BookingStatusCompleted) {
			t.Errorf("status = %s, want completed", got.Status)
		}
	})

	t.Run("completed is idempotent", func(t *testing.T) {
		booking := confirmedBooking(f, "2024-01-10", "10:00")
		booking.Status = entity.BookingStatusCompleted
		f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }
		f.bookings.complete = func(uuid.UUID) error {
			t.Error("repository Complete called on already-completed booking")
			return nil
		}

		got, err := f.svc.CompleteBooking(context.Background(), f.userID.String(), booking.ID.String())
		if err != nil {
			t.Fatalf("CompleteBooking: %v", err)
		}
		if got.Status != string(entity.BookingStatusCompleted) {
			t.Errorf("status = %s, want completed", got.Status)
		}
	})

	t.Run("pending rejected", func(t *testing.T) {
		booking := confirmedBooking(f, "2024-01-10", "10:00")
		booking.Status = entity.BookingStatusPending
		f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

		_, err := f.svc.CompleteBooking(context.Background(), f.userID.String(), booking.ID.String())
		if err == nil || utils.KindOf(err) != utils.KindValidation {
			t.Errorf("pending completion: err = %v, want validation error", err)
		}
	})

	t.Run("cancelled rejected", func(t *testing.T) {
		booking := confirmedBooking(f, "2024-01-10", "10:00")
		booking.Status = entity.BookingStatusCancelled
		f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

		_, err := f.svc.CompleteBooking(context.Background(), f.userID.String(), booking.ID.String())
		if err == nil || utils.KindOf(err) != utils.KindValidation {
			t.Errorf("cancelled completion: err = %v, want validation error", err)
		}
	})

	t.Run("outsider forbidden", func(t *testing.T) {
		booking := confirmedBooking(f, "2024-01-10", "10:00")
		f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return booking, nil }

		_, err := f.svc.CompleteBooking(context.Background(), uuid.NewString(), booking.ID.String())
		if err == nil || utils.KindOf(err) != utils.KindForbidden {
			t.Errorf("outsider completion: err = %v, want forbidden", err)
		}
	})
}
