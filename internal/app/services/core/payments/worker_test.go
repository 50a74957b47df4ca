package payments

import (
	"context"
	"testing"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/pkg/constvars"
	"medilink-service/internal/pkg/dto/requests"
	"medilink-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLocker) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLocker) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) CreateOrder(ctx context.Context, userID string, request *requests.CreatePaymentOrder) (*responses.PaymentOrder, error) {
	args := m.Called(ctx, userID, request)
	if order, ok := args.Get(0).(*responses.PaymentOrder); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentUsecase) VerifyPayment(ctx context.Context, request *requests.VerifyPayment) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPaymentUsecase) ReconcilePendingOrders(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestReconcileWorker(locker *MockLocker, usecase *MockPaymentUsecase) *Worker {
	return &Worker{
		log:            zap.NewNop(),
		cfg:            &config.InternalConfig{Worker: config.Worker{LeaderLockTTLInSeconds: 60}},
		locker:         locker,
		paymentUsecase: usecase,
	}
}

func TestRunOnce(t *testing.T) {
	t.Run("Sweeps under the leader lock and releases it", func(t *testing.T) {
		locker := new(MockLocker)
		usecase := new(MockPaymentUsecase)
		worker := newTestReconcileWorker(locker, usecase)

		locker.On("TryLock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, mock.Anything).Return(true, "token-1", nil)
		usecase.On("ReconcilePendingOrders", mock.Anything).Return(nil)
		locker.On("Unlock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, "token-1").Return(nil)

		worker.runOnce(context.Background())

		locker.AssertExpectations(t)
		usecase.AssertExpectations(t)
	})

	t.Run("Skips the sweep when another instance holds the lock", func(t *testing.T) {
		locker := new(MockLocker)
		usecase := new(MockPaymentUsecase)
		worker := newTestReconcileWorker(locker, usecase)

		locker.On("TryLock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, mock.Anything).Return(false, "", nil)

		worker.runOnce(context.Background())

		usecase.AssertNotCalled(t, "ReconcilePendingOrders", mock.Anything)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Releases the lock on a live context after shutdown cancels the sweep", func(t *testing.T) {
		locker := new(MockLocker)
		usecase := new(MockPaymentUsecase)
		worker := newTestReconcileWorker(locker, usecase)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		locker.On("TryLock", mock.Anything, constvars.RedisKeyReconcileLeaderLock, mock.Anything).Return(true, "token-1", nil)
		usecase.On("ReconcilePendingOrders", mock.Anything).Run(func(mock.Arguments) {
			cancel()
		}).Return(context.Canceled)
		locker.On("Unlock", mock.MatchedBy(func(unlockCtx context.Context) bool {
			return unlockCtx.Err() == nil
		}), constvars.RedisKeyReconcileLeaderLock, "token-1").Return(nil)

		worker.runOnce(ctx)

		assert.Error(t, ctx.Err())
		locker.AssertExpectations(t)
	})
}
