package contracts

import "context"

type CreateGatewayOrderInput struct {
	// Amount is in the smallest currency unit.
	Amount   int64
	Currency string
	Receipt  string
}

type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

type GatewayPayment struct {
	ID     string
	Status string
}

type PaymentGatewayService interface {
	CreateOrder(ctx context.Context, input *CreateGatewayOrderInput) (*GatewayOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*GatewayOrder, error)
	// FetchOrderPayments lists the payment attempts recorded against an
	// order on the gateway side.
	FetchOrderPayments(ctx context.Context, orderID string) ([]GatewayPayment, error)
	// VerifySignature checks the HMAC-SHA256 of "<orderID>|<paymentID>"
	// against the signature sent by the checkout callback.
	VerifySignature(orderID, paymentID, signature string) bool
}
