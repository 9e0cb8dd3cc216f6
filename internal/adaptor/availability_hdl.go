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

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// SaveRules handles PUT /api/interviewer/availability (interviewer only)
func (h *AvailabilityHandler) SaveRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SaveAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rules, err := h.service.SaveRules(r.Context(), userID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "save availability rules")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// GetRules handles GET /api/interviewer/availability (interviewer only)
func (h *AvailabilityHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	rules, err := h.service.GetRules(r.Context(), userID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get availability rules")
		return
	}

	utils.ResponseSuccess(w, "success", rules)
}

// AddBlockedDate handles POST /api/interviewer/availability/blocked-dates (interviewer only)
func (h *AvailabilityHandler) AddBlockedDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.BlockDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AddBlockedDate(r.Context(), userID.String(), &req); err != nil {
		handleServiceError(w, h.log, err, "add blocked date")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// RemoveBlockedDate handles DELETE /api/interviewer/availability/blocked-dates/{date} (interviewer only)
func (h *AvailabilityHandler) RemoveBlockedDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	date := chi.URLParam(r, "date")
	if date == "" {
		utils.ResponseBadRequest(w, "Date is required", nil)
		return
	}

	if err := h.service.RemoveBlockedDate(r.Context(), userID.String(), date); err != nil {
		handleServiceError(w, h.log, err, "remove blocked date")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// AddExcludedRange handles POST /api/interviewer/availability/excluded-ranges (interviewer only)
func (h *AvailabilityHandler) AddExcludedRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ExcludeRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.AddExcludedRange(r.Context(), userID.String(), &req); err != nil {
		handleServiceError(w, h.log, err, "add excluded range")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetAvailableSlots handles GET /api/interviewers/{id}/slots?date= (protected)
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	interviewerID := chi.URLParam(r, "id")
	if interviewerID == "" {
		utils.ResponseBadRequest(w, "Interviewer ID is required", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	slots, err := h.service.GetAvailableSlots(r.Context(), interviewerID, date)
	if err != nil {
		handleServiceError(w, h.log, err, "get available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}
