package usecase

import (
	"context"
	"time"

	"interview-booking/internal/data/entity"
	"interview-booking/internal/data/repository"
	"interview-booking/internal/dto/request"
	"interview-booking/internal/dto/response"
	"interview-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	RateBooking(ctx context.Context, userID string, req *request.CreateRatingRequest) (*response.RatingResponse, error)
	GetInterviewerRatings(ctx context.Context, interviewerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error)
	GetInterviewerRatingStats(ctx context.Context, interviewerID string) (*response.InterviewerRatingStats, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) RateBooking(ctx context.Context, userID string, req *request.CreateRatingRequest) (*response.RatingResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Rate booking validation failed", zap.Any("errors", errs))
		return nil, utils.NewErrorf(utils.KindValidation, "validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid user ID format %s", userID)
	}
	bookingUUID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid booking ID format %s", req.BookingID)
	}

	// 2. Booking must exist, belong to the rater, and be completed
	booking, err := s.repo.Booking.FindByID(ctx, bookingUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load booking", err)
	}
	if booking == nil {
		return nil, utils.NewError(utils.KindNotFound, "booking not found")
	}
	if booking.UserID != userUUID {
		return nil, utils.NewError(utils.KindForbidden, "only the booking's candidate can rate the session")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, utils.NewError(utils.KindValidation, "only completed sessions can be rated")
	}

	// 3. One rating per booking
	existing, err := s.repo.Rating.FindByBookingID(ctx, bookingUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to check existing rating", err)
	}
	if existing != nil {
		return nil, utils.NewError(utils.KindValidation, "session already rated")
	}

	// 4. Create rating
	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID:     bookingUUID,
		UserID:        userUUID,
		InterviewerID: booking.InterviewerID,
		Score:         req.Score,
		Comment:       req.Comment,
	}
	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to create rating", err)
	}

	s.log.Info("Booking rated",
		zap.String("rating_id", rating.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("interviewer_id", booking.InterviewerID.String()),
		zap.Int("score", req.Score),
	)

	user, _ := s.repo.User.FindByID(ctx, userUUID)
	username := ""
	if user != nil {
		username = user.Username
	}

	resp := response.RatingToResponse(rating, username)
	return &resp, nil
}

func (s *ratingService) GetInterviewerRatings(ctx context.Context, interviewerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RatingResponse], error) {
	interviewerUUID, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	interviewer, err := s.repo.User.FindByID(ctx, interviewerUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load interviewer", err)
	}
	if interviewer == nil || interviewer.Role != entity.RoleInterviewer {
		return nil, utils.NewError(utils.KindNotFound, "interviewer not found")
	}

	ratings, err := s.repo.Rating.FindByInterviewerID(ctx, interviewerUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load ratings", err)
	}
	total, err := s.repo.Rating.CountByInterviewerID(ctx, interviewerUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to count ratings", err)
	}

	items := make([]response.RatingResponse, len(ratings))
	for i, rating := range ratings {
		username := ""
		if user, _ := s.repo.User.FindByID(ctx, rating.UserID); user != nil {
			username = user.Username
		}
		items[i] = response.RatingToResponse(rating, username)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *ratingService) GetInterviewerRatingStats(ctx context.Context, interviewerID string) (*response.InterviewerRatingStats, error) {
	interviewerUUID, err := uuid.Parse(interviewerID)
	if err != nil {
		return nil, utils.NewErrorf(utils.KindValidation, "invalid interviewer ID format %s", interviewerID)
	}

	interviewer, err := s.repo.User.FindByID(ctx, interviewerUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load interviewer", err)
	}
	if interviewer == nil || interviewer.Role != entity.RoleInterviewer {
		return nil, utils.NewError(utils.KindNotFound, "interviewer not found")
	}

	avg, count, err := s.repo.Rating.GetInterviewerStats(ctx, interviewerUUID)
	if err != nil {
		return nil, utils.WrapError(utils.KindInternal, "failed to load rating stats", err)
	}

	return &response.InterviewerRatingStats{
		AverageScore: avg,
		RatingCount:  count,
	}, nil
}
