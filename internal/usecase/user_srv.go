package usecase

import (
	"context"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/response"
	"interview-booking/pkg/mailer"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	ApproveInterviewer(ctx context.Context, interviewerID string, approved bool) error
}

type userService struct {
	userRepo repository.UserRepository
	mailer   mailer.EmailService
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, mail mailer.EmailService, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		mailer:   mail,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	// Parse userID
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return nil, utils.NewError(utils.KindValidation, "invalid user ID")
	}

	// Find user
	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, utils.WrapError(utils.KindInternal, "failed to get profile", err)
	}
	if user == nil {
		return nil, utils.NewError(utils.KindNotFound, "user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ApproveInterviewer flips an interviewer's approval flag. Only approved
// interviewers show up for booking. The notification email is best-effort.
func (us *userService) ApproveInterviewer(ctx context.Context, interviewerID string, approved bool) error {
	id, err := uuid.Parse(interviewerID)
	if err != nil {
		us.log.Warn("Invalid interviewer ID", zap.String("interviewer_id", interviewerID), zap.Error(err))
		return utils.NewError(utils.KindValidation, "invalid interviewer ID")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find interviewer", zap.Error(err), zap.String("interviewer_id", interviewerID))
		return utils.WrapError(utils.KindInternal, "failed to find interviewer", err)
	}
	if user == nil {
		return utils.NewError(utils.KindNotFound, "interviewer not found")
	}
	if user.Role != entity.RoleInterviewer {
		return utils.NewError(utils.KindValidation, "user is not an interviewer")
	}

	if err := us.userRepo.SetInterviewerApproval(ctx, id, approved); err != nil {
		us.log.Error("Failed to update approval", zap.Error(err), zap.String("interviewer_id", interviewerID))
		return utils.WrapError(utils.KindInternal, "failed to update approval", err)
	}

	us.log.Info("Interviewer approval updated",
		zap.String("interviewer_id", interviewerID),
		zap.Bool("approved", approved))

	// Notify async; failures only logged
	go us.sendApprovalEmail(user.Email, user.Username, approved)

	return nil
}

func (us *userService) sendApprovalEmail(email, name string, approved bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := us.mailer.SendInterviewerApproval(ctx, email, name, approved); err != nil {
		us.log.Error("Failed to send approval email", zap.Error(err), zap.String("email", email))
	}
}
