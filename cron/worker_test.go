package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"servicefinder/services/apperror"
	"servicefinder/services/booking"
	"servicefinder/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// expiringStub records expiry calls; every other method is unused here.
type expiringStub struct {
	booking.BookingService
	expired []string
	err     error
	swept   int
}

func (s *expiringStub) ExpireBooking(_ context.Context, id string) error {
	s.expired = append(s.expired, id)
	return s.err
}

func (s *expiringStub) ExpireStale(context.Context) (int, error) {
	s.swept++
	return 2, nil
}

func TestExpireTaskHandler(t *testing.T) {
	stub := &expiringStub{}
	mux := NewServeMux(stub, zap.NewNop())

	task, _, _ := tasks.NewExpireTask("b1", time.Now())
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("ProcessTask: %v", err)
	}
	if len(stub.expired) != 1 || stub.expired[0] != "b1" {
		t.Fatalf("unexpected expiries %v", stub.expired)
	}
}

func TestExpireTaskHandlerErrors(t *testing.T) {
	stub := &expiringStub{err: apperror.ErrNotFound}
	mux := NewServeMux(stub, zap.NewNop())
	task, _, _ := tasks.NewExpireTask("gone", time.Now())
	if err := mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("unknown booking should not be retried, got %v", err)
	}

	stub.err = errors.New("mongo down")
	if err := mux.ProcessTask(context.Background(), task); err == nil {
		t.Fatal("transient failure should be retried")
	}

	bad := asynq.NewTask(tasks.TypeExpireBooking, []byte(`{}`))
	if err := mux.ProcessTask(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}
}

func TestSweepTaskHandler(t *testing.T) {
	stub := &expiringStub{}
	if err := NewServeMux(stub, zap.NewNop()).ProcessTask(context.Background(), tasks.NewSweepTask()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if stub.swept != 1 {
		t.Fatalf("expected one sweep, got %d", stub.swept)
	}
}
