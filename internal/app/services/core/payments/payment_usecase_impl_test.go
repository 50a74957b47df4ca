package payments

import (
	"context"
	"testing"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/app/models"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateAppointment(ctx context.Context, appointmentModel *models.Appointment) (string, error) {
	args := m.Called(ctx, appointmentModel)
	return args.String(0), args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if appointment, ok := args.Get(0).(*models.Appointment); ok {
		return appointment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Appointment, error) {
	args := m.Called(ctx, orderID)
	if appointment, ok := args.Get(0).(*models.Appointment); ok {
		return appointment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListPendingPaidOrders(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) MarkCancelled(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentRepository) AttachPaymentOrder(ctx context.Context, appointmentID, orderID string) error {
	args := m.Called(ctx, appointmentID, orderID)
	return args.Error(0)
}

func (m *MockAppointmentRepository) MarkPaid(ctx context.Context, appointmentID string, detail *models.PaymentDetail) (bool, error) {
	args := m.Called(ctx, appointmentID, detail)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) MarkCompleted(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockAppointmentRepository) SetMeetLink(ctx context.Context, appointmentID, meetLink string) error {
	args := m.Called(ctx, appointmentID, meetLink)
	return args.Error(0)
}

func (m *MockAppointmentRepository) SetInvoiceObject(ctx context.Context, appointmentID, objectName string) error {
	args := m.Called(ctx, appointmentID, objectName)
	return args.Error(0)
}

func (m *MockAppointmentRepository) MarkConfirmationSent(ctx context.Context, appointmentID string) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, input *contracts.CreateGatewayOrderInput) (*contracts.GatewayOrder, error) {
	args := m.Called(ctx, input)
	if order, ok := args.Get(0).(*contracts.GatewayOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentGateway) FetchOrder(ctx context.Context, orderID string) (*contracts.GatewayOrder, error) {
	args := m.Called(ctx, orderID)
	if order, ok := args.Get(0).(*contracts.GatewayOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentGateway) FetchOrderPayments(ctx context.Context, orderID string) ([]contracts.GatewayPayment, error) {
	args := m.Called(ctx, orderID)
	if payments, ok := args.Get(0).([]contracts.GatewayPayment); ok {
		return payments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishAppointmentPaid(ctx context.Context, event *contracts.AppointmentPaidEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newTestPaymentUsecase(repo *MockAppointmentRepository, gateway *MockPaymentGateway, publisher *MockEventPublisher) *paymentUsecase {
	return &paymentUsecase{
		AppointmentRepository: repo,
		Gateway:               gateway,
		EventPublisher:        publisher,
		InternalConfig: &config.InternalConfig{
			App:      config.App{Currency: "INR"},
			Razorpay: config.Razorpay{KeyID: "rzp_test_key"},
		},
		Log: zap.NewNop(),
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates order and attaches it", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			UserID: "user-1",
			Amount: 500,
		}, nil)
		gateway.On("CreateOrder", mock.Anything, mock.MatchedBy(func(input *contracts.CreateGatewayOrderInput) bool {
			return input.Amount == 50000 && input.Currency == "INR" && input.Receipt == "apt-1"
		})).Return(&contracts.GatewayOrder{
			ID:       "order-1",
			Amount:   50000,
			Currency: "INR",
			Receipt:  "apt-1",
			Status:   "created",
		}, nil)
		repo.On("AttachPaymentOrder", mock.Anything, "apt-1", "order-1").Return(nil)

		response, err := uc.CreateOrder(ctx, "user-1", &requests.CreatePaymentOrder{AppointmentID: "apt-1"})
		assert.NoError(t, err)
		assert.Equal(t, "order-1", response.OrderID)
		assert.Equal(t, "rzp_test_key", response.KeyID)
		repo.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("Rejects someone else's appointment", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			UserID: "someone-else",
		}, nil)

		_, err := uc.CreateOrder(ctx, "user-1", &requests.CreatePaymentOrder{AppointmentID: "apt-1"})
		assert.Error(t, err)
		gateway.AssertNotCalled(t, "CreateOrder")
	})

	t.Run("Rejects an already paid appointment", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:      "apt-1",
			UserID:  "user-1",
			Payment: true,
		}, nil)

		_, err := uc.CreateOrder(ctx, "user-1", &requests.CreatePaymentOrder{AppointmentID: "apt-1"})
		assert.Error(t, err)
		gateway.AssertNotCalled(t, "CreateOrder")
	})
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()
	verifyRequest := &requests.VerifyPayment{
		RazorpayOrderID:   "order-1",
		RazorpayPaymentID: "pay-1",
		RazorpaySignature: "sig-1",
	}

	t.Run("Bad signature is rejected before touching the gateway", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(false)

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.Error(t, err)
		gateway.AssertNotCalled(t, "FetchOrder")
		repo.AssertNotCalled(t, "MarkPaid")
	})

	t.Run("Unpaid gateway order is rejected", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(true)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  "attempted",
		}, nil)

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "MarkPaid")
	})

	t.Run("Paid order flips the flag and publishes once", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(true)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			UserID: "user-1",
		}, nil)
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.AnythingOfType("*models.PaymentDetail")).Return(true, nil)
		publisher.On("PublishAppointmentPaid", mock.Anything, mock.MatchedBy(func(event *contracts.AppointmentPaidEvent) bool {
			return event.AppointmentID == "apt-1" && event.OrderID == "order-1" && event.PaymentID == "pay-1"
		})).Return(nil)

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Replay of a settled payment succeeds without publishing", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(true)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:      "apt-1",
			UserID:  "user-1",
			Payment: true,
		}, nil)
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.AnythingOfType("*models.PaymentDetail")).Return(false, nil)

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.NoError(t, err)
		publisher.AssertNotCalled(t, "PublishAppointmentPaid")
	})

	t.Run("Cancel racing the flip is caught on re-read", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(true)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		// The first read sees a live appointment; the cancel lands before
		// the conditional flip, so the second read sees it cancelled.
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			UserID: "user-1",
		}, nil).Once()
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.AnythingOfType("*models.PaymentDetail")).Return(false, nil)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:        "apt-1",
			UserID:    "user-1",
			Cancelled: true,
		}, nil).Once()

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.Error(t, err)
		publisher.AssertNotCalled(t, "PublishAppointmentPaid")
		repo.AssertExpectations(t)
	})

	t.Run("Cancelled appointment cannot be settled", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(true)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:        "apt-1",
			UserID:    "user-1",
			Cancelled: true,
		}, nil)
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.AnythingOfType("*models.PaymentDetail")).Return(false, nil)

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.Error(t, err)
		publisher.AssertNotCalled(t, "PublishAppointmentPaid")
	})

	t.Run("Publish failure does not fail the verify", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		gateway.On("VerifySignature", "order-1", "pay-1", "sig-1").Return(true)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		repo.On("FindByID", mock.Anything, "apt-1").Return(&models.Appointment{
			ID:     "apt-1",
			UserID: "user-1",
		}, nil)
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.AnythingOfType("*models.PaymentDetail")).Return(true, nil)
		publisher.On("PublishAppointmentPaid", mock.Anything, mock.Anything).Return(assert.AnError)

		err := uc.VerifyPayment(ctx, verifyRequest)
		assert.NoError(t, err)
	})
}

func TestReconcilePendingOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Skips orders younger than the minimum age", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		young := models.Appointment{
			ID:            "apt-1",
			PaymentDetail: &models.PaymentDetail{OrderID: "order-1"},
		}
		young.UpdatedAt = time.Now()
		repo.On("ListPendingPaidOrders", mock.Anything).Return([]models.Appointment{young}, nil)

		err := uc.ReconcilePendingOrders(ctx)
		assert.NoError(t, err)
		gateway.AssertNotCalled(t, "FetchOrder")
	})

	t.Run("Settles a stale paid order", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		stale := models.Appointment{
			ID:            "apt-1",
			PaymentDetail: &models.PaymentDetail{OrderID: "order-1", PaymentID: "pay-1"},
		}
		stale.UpdatedAt = time.Now().Add(-time.Hour)
		repo.On("ListPendingPaidOrders", mock.Anything).Return([]models.Appointment{stale}, nil)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.AnythingOfType("*models.PaymentDetail")).Return(true, nil)
		publisher.On("PublishAppointmentPaid", mock.Anything, mock.Anything).Return(nil)

		err := uc.ReconcilePendingOrders(ctx)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Fetches the payment id when the callback never arrived", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		stale := models.Appointment{
			ID:            "apt-1",
			PaymentDetail: &models.PaymentDetail{OrderID: "order-1"},
		}
		stale.UpdatedAt = time.Now().Add(-time.Hour)
		repo.On("ListPendingPaidOrders", mock.Anything).Return([]models.Appointment{stale}, nil)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  constvars.RazorpayOrderStatusPaid,
		}, nil)
		gateway.On("FetchOrderPayments", mock.Anything, "order-1").Return([]contracts.GatewayPayment{
			{ID: "pay-77", Status: "failed"},
			{ID: "pay-78", Status: constvars.RazorpayPaymentStatusCaptured},
		}, nil)
		repo.On("MarkPaid", mock.Anything, "apt-1", mock.MatchedBy(func(detail *models.PaymentDetail) bool {
			return detail.PaymentID == "pay-78" && detail.OrderID == "order-1"
		})).Return(true, nil)
		publisher.On("PublishAppointmentPaid", mock.Anything, mock.MatchedBy(func(event *contracts.AppointmentPaidEvent) bool {
			return event.PaymentID == "pay-78"
		})).Return(nil)

		err := uc.ReconcilePendingOrders(ctx)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("Leaves unpaid stale orders pending", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		uc := newTestPaymentUsecase(repo, gateway, publisher)

		stale := models.Appointment{
			ID:            "apt-1",
			PaymentDetail: &models.PaymentDetail{OrderID: "order-1"},
		}
		stale.UpdatedAt = time.Now().Add(-time.Hour)
		repo.On("ListPendingPaidOrders", mock.Anything).Return([]models.Appointment{stale}, nil)
		gateway.On("FetchOrder", mock.Anything, "order-1").Return(&contracts.GatewayOrder{
			ID:      "order-1",
			Receipt: "apt-1",
			Status:  "created",
		}, nil)

		err := uc.ReconcilePendingOrders(ctx)
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "MarkPaid")
	})
}
