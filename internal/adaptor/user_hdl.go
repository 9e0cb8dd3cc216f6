package adaptor

import (
	"encoding/json"
	"net/http"

	"interview-booking/internal/usecase"
	"interview-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/profile (protected)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

// ApproveInterviewer handles PUT /api/admin/interviewers/{id}/approval (admin only)
func (h *UserHandler) ApproveInterviewer(w http.ResponseWriter, r *http.Request) {
	interviewerID := chi.URLParam(r, "id")
	if interviewerID == "" {
		utils.ResponseBadRequest(w, "Interviewer ID is required", nil)
		return
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ApproveInterviewer(r.Context(), interviewerID, req.Approved); err != nil {
		handleServiceError(w, h.log, err, "approve interviewer")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
