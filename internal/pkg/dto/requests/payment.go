package requests

type CreatePaymentOrder struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
}

type VerifyPayment struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}
