package request

type CreateBookingRequest struct {
	InterviewerID string `json:"interviewer_id" validate:"required,uuid4"`
	Date          string `json:"date" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=wallet razorpay"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}
