package usecase

// Shared test doubles. Stubs embed the repository interfaces so each test
// only fills in the methods its code path touches; an unstubbed call panics
// with a nil dereference, which is exactly the signal we want.

import (
	"context"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var testLogger = zap.NewNop()

// fakeTx satisfies pgx.Tx through embedding; only the lifecycle methods are
// real so services can commit and roll back against it.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	database.PgxIface
	tx *fakeTx
}

func newFakeDB() *fakeDB {
	return &fakeDB{tx: &fakeTx{}}
}

func (db *fakeDB) Begin(_ context.Context) (pgx.Tx, error) {
	return db.tx, nil
}

type stubUserRepo struct {
	repository.UserRepository
	create                  func(u *entity.User) error
	findByID                func(id uuid.UUID) (*entity.User, error)
	findByEmail             func(email string) (*entity.User, error)
	findByUsername          func(username string) (*entity.User, error)
	findApprovedInterviewer func(id uuid.UUID) (*entity.User, error)
	findAdmin               func() (*entity.User, error)
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	return r.create(u)
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findByID(id)
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.findByEmail(email)
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.findByUsername(username)
}

func (r *stubUserRepo) FindApprovedInterviewerByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findApprovedInterviewer(id)
}

func (r *stubUserRepo) FindAdmin(_ context.Context) (*entity.User, error) {
	return r.findAdmin()
}

type stubSessionRepo struct {
	repository.SessionRepository
	created *entity.Session
	revoked string
}

func (r *stubSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.created = session
	return nil
}

func (r *stubSessionRepo) Revoke(_ context.Context, token string) error {
	r.revoked = token
	return nil
}

type stubBookingRepo struct {
	repository.BookingRepository
	create           func(b *entity.Booking) error
	findByID         func(id uuid.UUID) (*entity.Booking, error)
	findBlockingSlot func(interviewerID uuid.UUID, date, start, end string) (*entity.Booking, error)
	confirm          func(id uuid.UUID, paymentID string) error
	complete         func(id uuid.UUID) error
	cancel           func(id uuid.UUID, reason string) error
}

func (r *stubBookingRepo) Create(_ context.Context, _ database.Querier, b *entity.Booking) error {
	return r.create(b)
}

func (r *stubBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findByID(id)
}

func (r *stubBookingRepo) FindBlockingSlot(_ context.Context, _ database.Querier, interviewerID uuid.UUID, date, start, end string) (*entity.Booking, error) {
	return r.findBlockingSlot(interviewerID, date, start, end)
}

func (r *stubBookingRepo) Confirm(_ context.Context, _ database.Querier, id uuid.UUID, paymentID string) error {
	return r.confirm(id, paymentID)
}

func (r *stubBookingRepo) Complete(_ context.Context, id uuid.UUID) error {
	return r.complete(id)
}

func (r *stubBookingRepo) Cancel(_ context.Context, _ database.Querier, id uuid.UUID, reason string) error {
	return r.cancel(id, reason)
}

// stubWalletRepo records every posting so tests can assert on the ledger.
type stubWalletRepo struct {
	repository.WalletRepository
	findWallet func(userID uuid.UUID, role entity.UserRole) (*entity.Wallet, error)
	getSummary func(userID uuid.UUID, role entity.UserRole) (*repository.WalletSummary, error)
	postErr    error
	postings   []repository.PostParams
}

func (r *stubWalletRepo) GetSummary(_ context.Context, userID uuid.UUID, role entity.UserRole) (*repository.WalletSummary, error) {
	return r.getSummary(userID, role)
}

func (r *stubWalletRepo) FindWallet(_ context.Context, userID uuid.UUID, role entity.UserRole) (*entity.Wallet, error) {
	return r.findWallet(userID, role)
}

func (r *stubWalletRepo) Post(_ context.Context, _ database.Querier, p repository.PostParams) (*entity.WalletTransaction, error) {
	if r.postErr != nil {
		return nil, r.postErr
	}
	r.postings = append(r.postings, p)
	return &entity.WalletTransaction{}, nil
}

type stubRatingRepo struct {
	repository.RatingRepository
	findByBookingID     func(bookingID uuid.UUID) (*entity.Rating, error)
	findByInterviewerID func(interviewerID uuid.UUID, limit, offset int) ([]*entity.Rating, error)
	countByInterviewer  func(interviewerID uuid.UUID) (int64, error)
	stats               func(interviewerID uuid.UUID) (float64, int64, error)
	created             *entity.Rating
}

func (r *stubRatingRepo) Create(_ context.Context, rating *entity.Rating) error {
	r.created = rating
	return nil
}

func (r *stubRatingRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Rating, error) {
	return r.findByBookingID(bookingID)
}

func (r *stubRatingRepo) FindByInterviewerID(_ context.Context, interviewerID uuid.UUID, limit, offset int) ([]*entity.Rating, error) {
	return r.findByInterviewerID(interviewerID, limit, offset)
}

func (r *stubRatingRepo) CountByInterviewerID(_ context.Context, interviewerID uuid.UUID) (int64, error) {
	return r.countByInterviewer(interviewerID)
}

func (r *stubRatingRepo) GetInterviewerStats(_ context.Context, interviewerID uuid.UUID) (float64, int64, error) {
	return r.stats(interviewerID)
}

type stubAvailabilityRepo struct {
	repository.AvailabilityRepository
	findByInterviewerID func(id uuid.UUID) (*entity.AvailabilityRule, error)
	upsert              func(rule *entity.AvailabilityRule) error
}

func (r *stubAvailabilityRepo) FindByInterviewerID(_ context.Context, id uuid.UUID) (*entity.AvailabilityRule, error) {
	return r.findByInterviewerID(id)
}

func (r *stubAvailabilityRepo) Upsert(_ context.Context, rule *entity.AvailabilityRule) error {
	return r.upsert(rule)
}

func fixedNow(value string) func() time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}
