package payment_gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/exceptions"

	"github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

var (
	razorpayServiceInstance contracts.PaymentGatewayService
	onceRazorpayService     sync.Once
)

type razorpayService struct {
	client    *razorpay.Client
	keySecret string
	Log       *zap.Logger
}

func NewRazorpayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	onceRazorpayService.Do(func() {
		instance := &razorpayService{
			client:    razorpay.NewClient(internalConfig.Razorpay.KeyID, internalConfig.Razorpay.KeySecret),
			keySecret: internalConfig.Razorpay.KeySecret,
			Log:       logger,
		}
		razorpayServiceInstance = instance
	})
	return razorpayServiceInstance
}

func (s *razorpayService) CreateOrder(ctx context.Context, input *contracts.CreateGatewayOrderInput) (*contracts.GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   input.Amount,
		"currency": input.Currency,
		"receipt":  input.Receipt,
	}

	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.Log.Error("razorpayService.CreateOrder error calling gateway",
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewayCreateOrder(err)
	}

	order, err := mapOrderBody(body)
	if err != nil {
		return nil, exceptions.ErrGatewayCreateOrder(err)
	}

	s.Log.Info("razorpayService.CreateOrder created order",
		zap.String(constvars.LoggingOrderIDKey, order.ID),
	)
	return order, nil
}

func (s *razorpayService) FetchOrder(ctx context.Context, orderID string) (*contracts.GatewayOrder, error) {
	body, err := s.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, exceptions.ErrGatewayFetchOrder(err, orderID)
	}

	order, err := mapOrderBody(body)
	if err != nil {
		return nil, exceptions.ErrGatewayFetchOrder(err, orderID)
	}
	return order, nil
}

func (s *razorpayService) FetchOrderPayments(ctx context.Context, orderID string) ([]contracts.GatewayPayment, error) {
	body, err := s.client.Order.Payments(orderID, nil, nil)
	if err != nil {
		s.Log.Error("razorpayService.FetchOrderPayments error calling gateway",
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewayFetchOrder(err, orderID)
	}
	return mapPaymentItems(body), nil
}

func (s *razorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func mapPaymentItems(body map[string]interface{}) []contracts.GatewayPayment {
	items, _ := body["items"].([]interface{})
	payments := make([]contracts.GatewayPayment, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var payment contracts.GatewayPayment
		payment.ID, _ = entry["id"].(string)
		payment.Status, _ = entry["status"].(string)
		if payment.ID != "" {
			payments = append(payments, payment)
		}
	}
	return payments
}

func mapOrderBody(body map[string]interface{}) (*contracts.GatewayOrder, error) {
	id, ok := body["id"].(string)
	if !ok {
		return nil, fmt.Errorf("order response missing id")
	}

	order := &contracts.GatewayOrder{ID: id}
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if currency, ok := body["currency"].(string); ok {
		order.Currency = currency
	}
	if receipt, ok := body["receipt"].(string); ok {
		order.Receipt = receipt
	}
	if status, ok := body["status"].(string); ok {
		order.Status = status
	}
	return order, nil
}
