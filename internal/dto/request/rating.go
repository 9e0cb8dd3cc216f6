package request

type CreateRatingRequest struct {
	BookingID string  `json:"booking_id" validate:"required,uuid4"`
	Score     int     `json:"score" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment" validate:"omitempty,max=500"`
}
