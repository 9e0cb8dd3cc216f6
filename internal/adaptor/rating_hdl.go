package adaptor

import (
	"encoding/json"
	"net/http"

	"interview-booking/internal/dto/request"
	"interview-booking/internal/usecase"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log,
	}
}

// RateBooking handles POST /api/ratings (protected)
func (h *RatingHandler) RateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(&req); len(errs) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	rating, err := h.service.RateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate booking")
		return
	}

	utils.ResponseCreated(w, "Rating created", rating)
}

// GetInterviewerRatings handles GET /api/interviewers/{id}/ratings (public)
func (h *RatingHandler) GetInterviewerRatings(w http.ResponseWriter, r *http.Request) {
	interviewerID := chi.URLParam(r, "id")

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	ratings, err := h.service.GetInterviewerRatings(r.Context(), interviewerID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get interviewer ratings")
		return
	}

	utils.ResponseSuccess(w, "success", ratings)
}

// GetInterviewerRatingStats handles GET /api/interviewers/{id}/rating-stats (public)
func (h *RatingHandler) GetInterviewerRatingStats(w http.ResponseWriter, r *http.Request) {
	interviewerID := chi.URLParam(r, "id")

	stats, err := h.service.GetInterviewerRatingStats(r.Context(), interviewerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get interviewer rating stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
