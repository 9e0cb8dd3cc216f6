package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/pkg/razorpay"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
)

const testGatewaySecret = "test_secret"

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type stubGateway struct {
	order *razorpay.Order
	err   error
}

func (g *stubGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (*razorpay.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	o := *g.order
	o.Amount = amountMinor
	o.Currency = currency
	return &o, nil
}

type paymentFixture struct {
	svc      *paymentService
	db       *fakeDB
	bookings *stubBookingRepo
	wallets  *stubWalletRepo
	booking  *entity.Booking

	userID        uuid.UUID
	interviewerID uuid.UUID
	adminID       uuid.UUID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		db:            newFakeDB(),
		userID:        uuid.New(),
		interviewerID: uuid.New(),
		adminID:       uuid.New(),
	}

	adminFee, interviewerAmount := entity.SplitFee(500, 10)
	f.booking = &entity.Booking{
		Base:              entity.Base{ID: uuid.New()},
		UserID:            f.userID,
		InterviewerID:     f.interviewerID,
		Date:              "2024-01-10",
		StartTime:         "10:00",
		EndTime:           "11:00",
		Amount:            500,
		AdminFee:          adminFee,
		InterviewerAmount: interviewerAmount,
		Status:            entity.BookingStatusPending,
		PaymentMethod:     entity.PaymentMethodRazorpay,
	}

	f.bookings = &stubBookingRepo{
		findByID: func(uuid.UUID) (*entity.Booking, error) { return f.booking, nil },
		confirm:  func(uuid.UUID, string) error { return nil },
	}
	f.wallets = &stubWalletRepo{}
	users := &stubUserRepo{
		findAdmin: func() (*entity.User, error) {
			return &entity.User{Base: entity.Base{ID: f.adminID}, Role: entity.RoleAdmin}, nil
		},
	}

	repo := &repository.Repository{
		User:    users,
		Booking: f.bookings,
		Wallet:  f.wallets,
	}
	f.svc = &paymentService{
		db:      f.db,
		repo:    repo,
		gateway: &stubGateway{order: &razorpay.Order{ID: "order_123"}},
		config: &utils.Config{
			Payment: utils.PaymentConfig{RazorpaySecret: testGatewaySecret},
		},
		log: testLogger,
	}
	return f
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	f := newPaymentFixture(t)

	got, err := f.svc.CreateOrder(context.Background(), f.userID.String(),
		&request.CreateOrderRequest{BookingID: f.booking.ID.String()})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if got.OrderID != "order_123" {
		t.Errorf("order ID = %s", got.OrderID)
	}
	if got.Amount != 50000 {
		t.Errorf("amount = %d, want 50000 (minor units)", got.Amount)
	}
	if got.Currency != "INR" {
		t.Errorf("currency = %s, want INR", got.Currency)
	}
}

func TestVerifyPaymentValidSignatureConfirms(t *testing.T) {
	f := newPaymentFixture(t)

	confirmedWith := ""
	f.bookings.confirm = func(_ uuid.UUID, paymentID string) error {
		confirmedWith = paymentID
		return nil
	}

	got, err := f.svc.VerifyPayment(context.Background(), f.userID.String(), &request.VerifyPaymentRequest{
		BookingID: f.booking.ID.String(),
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: signPayment("order_123", "pay_456"),
	})
	if err != nil {
		t.Fatalf("VerifyPayment: %v", err)
	}
	if got.Status != string(entity.BookingStatusConfirmed) {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
	if confirmedWith != "pay_456" {
		t.Errorf("confirmed with payment ID %q, want pay_456", confirmedWith)
	}
	if !f.db.tx.committed {
		t.Error("transaction was not committed")
	}

	// Earnings and fee postings only; the user side settled at the gateway.
	if len(f.wallets.postings) != 2 {
		t.Fatalf("posting count = %d, want 2", len(f.wallets.postings))
	}
	p := f.wallets.postings
	if p[0].UserID != f.interviewerID || p[0].Type != entity.TransactionCredit || p[0].Amount != 450 {
		t.Errorf("interviewer posting = %+v, want 450 credit", p[0])
	}
	if p[1].UserID != f.adminID || p[1].Type != entity.TransactionCredit || p[1].Amount != 50 {
		t.Errorf("admin posting = %+v, want 50 credit", p[1])
	}
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	f := newPaymentFixture(t)
	f.bookings.confirm = func(uuid.UUID, string) error {
		t.Error("booking confirmed despite bad signature")
		return nil
	}

	_, err := f.svc.VerifyPayment(context.Background(), f.userID.String(), &request.VerifyPaymentRequest{
		BookingID: f.booking.ID.String(),
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: signPayment("order_123", "pay_tampered"),
	})
	if err == nil {
		t.Fatal("expected signature error")
	}
	if utils.KindOf(err) != utils.KindPayment {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindPayment)
	}
	if len(f.wallets.postings) != 0 {
		t.Errorf("ledger was touched on signature mismatch")
	}
}

func TestVerifyPaymentStateGuards(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *paymentFixture) (actor string)
		want   utils.ErrorKind
	}{
		{
			"wrong owner",
			func(f *paymentFixture) string { return f.interviewerID.String() },
			utils.KindForbidden,
		},
		{
			"already confirmed",
			func(f *paymentFixture) string {
				f.booking.Status = entity.BookingStatusConfirmed
				return f.userID.String()
			},
			utils.KindValidation,
		},
		{
			"wallet booking",
			func(f *paymentFixture) string {
				f.booking.PaymentMethod = entity.PaymentMethodWallet
				return f.userID.String()
			},
			utils.KindValidation,
		},
		{
			"missing booking",
			func(f *paymentFixture) string {
				f.bookings.findByID = func(uuid.UUID) (*entity.Booking, error) { return nil, nil }
				return f.userID.String()
			},
			utils.KindNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPaymentFixture(t)
			actor := tc.mutate(f)

			_, err := f.svc.VerifyPayment(context.Background(), actor, &request.VerifyPaymentRequest{
				BookingID: f.booking.ID.String(),
				OrderID:   "order_123",
				PaymentID: "pay_456",
				Signature: signPayment("order_123", "pay_456"),
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if utils.KindOf(err) != tc.want {
				t.Errorf("kind = %s, want %s", utils.KindOf(err), tc.want)
			}
		})
	}
}

func TestVerifySignatureRoundTrip(t *testing.T) {
	if !razorpay.VerifySignature("order_123", "pay_456", signPayment("order_123", "pay_456"), testGatewaySecret) {
		t.Error("valid signature rejected")
	}
	if razorpay.VerifySignature("order_123", "pay_456", signPayment("order_123", "pay_456"), "other_secret") {
		t.Error("signature accepted with wrong secret")
	}
	if razorpay.VerifySignature("order_123", "pay_456", "not-hex", testGatewaySecret) {
		t.Error("garbage signature accepted")
	}
}
