package usecase

import (
	"context"
	"testing"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
)

func newWalletFixture() (WalletService, *stubWalletRepo, *fakeDB) {
	wallets := &stubWalletRepo{}
	db := newFakeDB()
	repo := &repository.Repository{Wallet: wallets}
	return NewWalletService(db, repo, testLogger), wallets, db
}

func TestPostTransactionValidation(t *testing.T) {
	svc, wallets, _ := newWalletFixture()

	cases := []struct {
		name   string
		params repository.PostParams
	}{
		{"zero amount", repository.PostParams{UserID: uuid.New(), Role: entity.RoleUser, Type: entity.TransactionCredit, Amount: 0}},
		{"negative amount", repository.PostParams{UserID: uuid.New(), Role: entity.RoleUser, Type: entity.TransactionCredit, Amount: -10}},
		{"unknown type", repository.PostParams{UserID: uuid.New(), Role: entity.RoleUser, Type: "transfer", Amount: 100}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PostTransaction(context.Background(), tc.params)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if utils.KindOf(err) != utils.KindValidation {
				t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
			}
		})
	}
	if len(wallets.postings) != 0 {
		t.Errorf("invalid params reached the ledger")
	}
}

func TestPostTransactionCommits(t *testing.T) {
	svc, wallets, db := newWalletFixture()

	_, err := svc.PostTransaction(context.Background(), repository.PostParams{
		UserID: uuid.New(),
		Role:   entity.RoleUser,
		Type:   entity.TransactionCredit,
		Amount: 250,
		Reason: "Wallet top-up",
	})
	if err != nil {
		t.Fatalf("PostTransaction: %v", err)
	}
	if len(wallets.postings) != 1 {
		t.Fatalf("posting count = %d, want 1", len(wallets.postings))
	}
	if !db.tx.committed {
		t.Error("transaction was not committed")
	}
}

func TestPostTransactionInsufficientBalance(t *testing.T) {
	svc, wallets, db := newWalletFixture()
	wallets.postErr = repository.ErrInsufficientBalance

	_, err := svc.PostTransaction(context.Background(), repository.PostParams{
		UserID: uuid.New(),
		Role:   entity.RoleUser,
		Type:   entity.TransactionDebit,
		Amount: 100,
		Reason: "Withdrawal",
	})
	if err == nil {
		t.Fatal("expected insufficient balance error")
	}
	if utils.KindOf(err) != utils.KindValidation {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
	}
	if db.tx.committed {
		t.Error("transaction committed after rejected debit")
	}
}

func TestGetSummary(t *testing.T) {
	svc, wallets, _ := newWalletFixture()
	wallets.getSummary = func(uuid.UUID, entity.UserRole) (*repository.WalletSummary, error) {
		return &repository.WalletSummary{Balance: 300, TotalCredits: 800, TotalDebits: 500}, nil
	}

	got, err := svc.GetSummary(context.Background(), uuid.NewString(), entity.RoleInterviewer)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if got.Balance != 300 || got.TotalCredits != 800 || got.TotalDebits != 500 {
		t.Errorf("summary = %+v, want 300/800/500", got)
	}
}
