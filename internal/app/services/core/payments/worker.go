package payments

import (
	"context"
	"time"

	"medilink-service/internal/app/config"
	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker periodically reconciles orders that settled on the gateway without a
// verify callback ever reaching us.
type Worker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	paymentUsecase contracts.PaymentUsecase
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, paymentUsecase contracts.PaymentUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, paymentUsecase: paymentUsecase}
}

// Start begins the periodic loop.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Worker.ReconcileCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("payments.worker: failed to schedule with provided cron spec; falling back to @every 10m",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc("@every 10m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the cron and waits for an in-flight sweep.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := time.Duration(w.cfg.Worker.LeaderLockTTLInSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReconcileLeaderLock, ttl)
	if err != nil {
		w.log.Warn("payments.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("payments.worker: leader lock not acquired; another instance is running")
		return
	}
	// The sweep context may already be cancelled by shutdown when the unlock
	// runs; releasing on a fresh context keeps other replicas from waiting
	// out the TTL.
	defer func() {
		unlockCtx, cancelUnlock := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelUnlock()
		if err := w.locker.Unlock(unlockCtx, constvars.RedisKeyReconcileLeaderLock, token); err != nil {
			w.log.Warn("payments.worker: failed to release leader lock", zap.Error(err))
		}
	}()

	// Keep the lock alive while the sweep runs.
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.RedisKeyReconcileLeaderLock, token, ttl); err != nil {
					w.log.Warn("payments.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	if err := w.paymentUsecase.ReconcilePendingOrders(ctx); err != nil {
		w.log.Error("payments.worker: reconciliation sweep failed", zap.Error(err))
	}
}
