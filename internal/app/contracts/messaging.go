package contracts

import "context"

// AppointmentPaidEvent is published once per successful payment flip and
// drives the post-payment fan-out (meet link, invoice, email).
type AppointmentPaidEvent struct {
	AppointmentID string `json:"appointment_id"`
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	PaidAt        int64  `json:"paid_at"`
}

type AppointmentEventPublisher interface {
	PublishAppointmentPaid(ctx context.Context, event *AppointmentPaidEvent) error
}
