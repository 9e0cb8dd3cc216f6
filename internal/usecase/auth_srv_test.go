package usecase

import (
	"context"
	"testing"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
)

type authFixture struct {
	svc      AuthService
	users    *stubUserRepo
	sessions *stubSessionRepo
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users: &stubUserRepo{
			create:         func(*entity.User) error { return nil },
			findByEmail:    func(string) (*entity.User, error) { return nil, nil },
			findByUsername: func(string) (*entity.User, error) { return nil, nil },
		},
		sessions: &stubSessionRepo{},
	}
	repo := &repository.Repository{
		User:    f.users,
		Session: f.sessions,
	}
	f.svc = NewAuthService(repo, &utils.Config{}, testLogger)
	return f
}

func TestRegisterUser(t *testing.T) {
	f := newAuthFixture()

	var created *entity.User
	f.users.create = func(u *entity.User) error {
		created = u
		return nil
	}

	got, err := f.svc.Register(context.Background(), &request.RegisterRequest{
		Username: "candidate",
		Email:    "candidate@example.com",
		Password: "hunter2hunter2",
		Role:     "user",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}
	if created.Role != entity.RoleUser {
		t.Errorf("role = %s, want user", created.Role)
	}
	if created.PasswordHash == "hunter2hunter2" {
		t.Error("password stored in plaintext")
	}
	if !utils.CheckPasswordHash("hunter2hunter2", created.PasswordHash) {
		t.Error("stored hash does not verify")
	}
	if got.Token == "" {
		t.Error("register did not auto-login")
	}
}

func TestRegisterInterviewer(t *testing.T) {
	f := newAuthFixture()

	var created *entity.User
	f.users.create = func(u *entity.User) error {
		created = u
		return nil
	}

	_, err := f.svc.Register(context.Background(), &request.RegisterRequest{
		Username:    "interviewer",
		Email:       "interviewer@example.com",
		Password:    "hunter2hunter2",
		Role:        "interviewer",
		SessionRate: 500,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created.Role != entity.RoleInterviewer {
		t.Errorf("role = %s, want interviewer", created.Role)
	}
	if !created.Verified {
		t.Error("interviewer should start verified")
	}
	if created.Approved {
		t.Error("interviewer should wait for admin approval")
	}
	if created.SessionRate != 500 {
		t.Errorf("session rate = %d, want 500", created.SessionRate)
	}
	if created.CanTakeBookings() {
		t.Error("unapproved interviewer should not be bookable")
	}
}

func TestRegisterInterviewerWithoutRate(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), &request.RegisterRequest{
		Username: "interviewer",
		Email:    "interviewer@example.com",
		Password: "hunter2hunter2",
		Role:     "interviewer",
	})
	if err == nil {
		t.Fatal("expected error for missing session rate")
	}
	if utils.KindOf(err) != utils.KindValidation {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.users.findByEmail = func(string) (*entity.User, error) {
		return &entity.User{}, nil
	}

	_, err := f.svc.Register(context.Background(), &request.RegisterRequest{
		Username: "candidate",
		Email:    "taken@example.com",
		Password: "hunter2hunter2",
		Role:     "user",
	})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
	if utils.KindOf(err) != utils.KindValidation {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindValidation)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()

	hash, err := utils.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	f.users.findByEmail = func(string) (*entity.User, error) {
		return &entity.User{
			Base:         entity.Base{ID: uuid.New()},
			Username:     "candidate",
			PasswordHash: hash,
			IsActive:     true,
		}, nil
	}

	_, err = f.svc.Login(context.Background(), &request.LoginRequest{
		Username: "candidate@example.com",
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatal("expected credential error")
	}
	if utils.KindOf(err) != utils.KindUnauthorized {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindUnauthorized)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	f := newAuthFixture()

	hash, err := utils.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	f.users.findByEmail = func(string) (*entity.User, error) {
		return &entity.User{
			Base:         entity.Base{ID: uuid.New()},
			PasswordHash: hash,
			IsActive:     false,
		}, nil
	}

	_, err = f.svc.Login(context.Background(), &request.LoginRequest{
		Username: "candidate@example.com",
		Password: "correct-password",
	})
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	if utils.KindOf(err) != utils.KindForbidden {
		t.Errorf("kind = %s, want %s", utils.KindOf(err), utils.KindForbidden)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture()
	token := uuid.NewString()

	if err := f.svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if f.sessions.revoked != token {
		t.Errorf("revoked token = %q, want %q", f.sessions.revoked, token)
	}
}
