package payments

import (
	"context"
	"fmt"
	"sync"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"
	"medilink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// pendingOrderMinAge keeps the reconciliation sweep away from orders whose
// checkout is plausibly still in flight.
const pendingOrderMinAge = 10 * time.Minute

type paymentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	Gateway               contracts.PaymentGatewayService
	EventPublisher        contracts.AppointmentEventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	appointmentMongoRepository contracts.AppointmentRepository,
	gateway contracts.PaymentGatewayService,
	eventPublisher contracts.AppointmentEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = &paymentUsecase{
			AppointmentRepository: appointmentMongoRepository,
			Gateway:               gateway,
			EventPublisher:        eventPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return paymentUsecaseInstance
}

func (uc *paymentUsecase) CreateOrder(ctx context.Context, userID string, request *requests.CreatePaymentOrder) (*responses.PaymentOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotExist(nil)
	}
	if appointment.UserID != userID {
		return nil, exceptions.ErrNotResourceOwner(fmt.Errorf("appointment %s belongs to another user", request.AppointmentID))
	}
	if appointment.Cancelled {
		return nil, exceptions.ErrAppointmentCancelled(nil)
	}
	if appointment.Payment {
		return nil, exceptions.ErrAppointmentAlreadyPaid(nil)
	}

	order, err := uc.Gateway.CreateOrder(ctx, &contracts.CreateGatewayOrderInput{
		// Gateway amounts are in the smallest currency unit.
		Amount:   appointment.Amount * 100,
		Currency: uc.InternalConfig.App.Currency,
		Receipt:  appointment.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.AppointmentRepository.AttachPaymentOrder(ctx, appointment.ID, order.ID); err != nil {
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreateOrder order created",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingOrderIDKey, order.ID),
	)
	return &responses.PaymentOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		KeyID:    uc.InternalConfig.Razorpay.KeyID,
	}, nil
}

func (uc *paymentUsecase) VerifyPayment(ctx context.Context, request *requests.VerifyPayment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
		zap.String(constvars.LoggingPaymentIDKey, request.RazorpayPaymentID),
	)

	if !uc.Gateway.VerifySignature(request.RazorpayOrderID, request.RazorpayPaymentID, request.RazorpaySignature) {
		return exceptions.ErrInvalidPaymentSignature(nil)
	}

	order, err := uc.Gateway.FetchOrder(ctx, request.RazorpayOrderID)
	if err != nil {
		return err
	}
	if order.Status != constvars.RazorpayOrderStatusPaid {
		return exceptions.ErrPaymentFailed(fmt.Errorf("order %s status %s", order.ID, order.Status))
	}

	// The receipt carries the appointment id.
	appointment, err := uc.AppointmentRepository.FindByID(ctx, order.Receipt)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrAppointmentNotExist(nil)
	}

	return uc.settle(ctx, appointment, order.ID, request.RazorpayPaymentID)
}

// settle flips the payment flag and publishes the fan-out event exactly once.
// A verify that loses the conditional update to an earlier one succeeds
// silently and publishes nothing.
func (uc *paymentUsecase) settle(ctx context.Context, appointment *models.Appointment, orderID, paymentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	detail := &models.PaymentDetail{
		OrderID:   orderID,
		PaymentID: paymentID,
		PaidAt:    time.Now().UnixMilli(),
	}
	flipped, err := uc.AppointmentRepository.MarkPaid(ctx, appointment.ID, detail)
	if err != nil {
		return err
	}
	if !flipped {
		// The snapshot passed in may predate a racing cancel, so the
		// cancelled-vs-already-paid call is made on a fresh read.
		current, err := uc.AppointmentRepository.FindByID(ctx, appointment.ID)
		if err != nil {
			return err
		}
		if current == nil || (current.Cancelled && !current.Payment) {
			return exceptions.ErrAppointmentCancelled(nil)
		}
		uc.Log.Info("paymentUsecase.settle payment already recorded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		)
		return nil
	}

	event := &contracts.AppointmentPaidEvent{
		AppointmentID: appointment.ID,
		OrderID:       orderID,
		PaymentID:     paymentID,
		PaidAt:        detail.PaidAt,
	}
	if err := uc.EventPublisher.PublishAppointmentPaid(ctx, event); err != nil {
		// The payment state stands, the fan-out will be repaired by the
		// reconciliation sweep or by hand.
		uc.Log.Error("paymentUsecase.settle error publishing paid event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}

	uc.Log.Info("paymentUsecase.settle payment recorded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)
	return nil
}

// ReconcilePendingOrders settles appointments whose order was paid on the
// gateway side but whose verify callback never arrived.
func (uc *paymentUsecase) ReconcilePendingOrders(ctx context.Context) error {
	pending, err := uc.AppointmentRepository.ListPendingPaidOrders(ctx)
	if err != nil {
		return err
	}

	for i := range pending {
		appointment := &pending[i]
		if appointment.PaymentDetail == nil || appointment.PaymentDetail.OrderID == "" {
			continue
		}
		if time.Since(appointment.UpdatedAt) < pendingOrderMinAge {
			continue
		}

		order, err := uc.Gateway.FetchOrder(ctx, appointment.PaymentDetail.OrderID)
		if err != nil {
			uc.Log.Error("paymentUsecase.ReconcilePendingOrders error fetching order",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.String(constvars.LoggingOrderIDKey, appointment.PaymentDetail.OrderID),
				zap.Error(err),
			)
			continue
		}
		if order.Status != constvars.RazorpayOrderStatusPaid {
			continue
		}

		// Without a verify callback only the order id is on record; the
		// payment id has to come from the gateway.
		paymentID := appointment.PaymentDetail.PaymentID
		if paymentID == "" {
			payments, err := uc.Gateway.FetchOrderPayments(ctx, order.ID)
			if err != nil {
				uc.Log.Error("paymentUsecase.ReconcilePendingOrders error fetching payments",
					zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
					zap.String(constvars.LoggingOrderIDKey, order.ID),
					zap.Error(err),
				)
				continue
			}
			for _, payment := range payments {
				if payment.Status == constvars.RazorpayPaymentStatusCaptured {
					paymentID = payment.ID
					break
				}
			}
		}

		uc.Log.Info("paymentUsecase.ReconcilePendingOrders settling stale order",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
		)
		if err := uc.settle(ctx, appointment, order.ID, paymentID); err != nil {
			uc.Log.Error("paymentUsecase.ReconcilePendingOrders error settling",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}
