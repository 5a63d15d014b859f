package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicefinder/config"
	"servicefinder/services/apperror"
	"servicefinder/services/booking"
	"servicefinder/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// SweepInterval is how often stale pending bookings are swept up, in case a
// scheduled expiry task was lost.
const SweepInterval = "@every 10m"

// RedisOpt returns the asynq connection for the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker runs the booking expiry handlers and the periodic sweep.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

// NewWorker wires the task handlers to bookingSvc.
func NewWorker(bookingSvc booking.BookingService, logger *zap.Logger) *Worker {
	redisOpt := RedisOpt()
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})
	return &Worker{
		server:    srv,
		scheduler: asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: time.UTC}),
		mux:       NewServeMux(bookingSvc, logger),
		logger:    logger,
	}
}

// NewServeMux routes booking task types to their handlers.
func NewServeMux(bookingSvc booking.BookingService, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExpireBooking, handleExpireTask(bookingSvc, logger))
	mux.HandleFunc(tasks.TypeExpireSweep, handleSweepTask(bookingSvc, logger))
	return mux
}

// Start runs the worker and the sweep scheduler in the background.
func (w *Worker) Start() error {
	if _, err := w.scheduler.Register(SweepInterval, tasks.NewSweepTask()); err != nil {
		return fmt.Errorf("failed to register expiry sweep: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	go func() {
		w.logger.Info("starting booking worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Run(w.mux)
			if err == nil || errors.Is(err, asynq.ErrServerClosed) {
				return
			}
			w.logger.Error("booking worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Fatal("booking worker gave up")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return nil
}

// Shutdown stops the scheduler and waits for in-flight tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleExpireTask(bookingSvc booking.BookingService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseExpirePayload(task)
		if err != nil {
			logger.Error("invalid expire payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := bookingSvc.ExpireBooking(ctx, p.BookingID); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				logger.Warn("expire task for unknown booking", zap.String("bookingId", p.BookingID))
				return nil
			}
			logger.Error("failed to expire booking", zap.String("bookingId", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleSweepTask(bookingSvc booking.BookingService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := bookingSvc.ExpireStale(ctx)
		if n > 0 {
			logger.Info("expired stale bookings", zap.Int("count", n))
		}
		return err
	}
}
