package contracts

import (
	"context"

	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
)

type PaymentUsecase interface {
	CreateOrder(ctx context.Context, userID string, request *requests.CreatePaymentOrder) (*responses.PaymentOrder, error)
	VerifyPayment(ctx context.Context, request *requests.VerifyPayment) error
	// ReconcilePendingOrders sweeps appointments that have an order attached
	// but never saw a verify callback, and settles the ones the gateway
	// reports as paid.
	ReconcilePendingOrders(ctx context.Context) error
}
