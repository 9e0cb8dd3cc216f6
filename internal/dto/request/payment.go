package request

type CreateOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

type VerifyPaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
