package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"servicefinder/models"

	"github.com/hibiken/asynq"
)

const TypeExpireBooking = "booking:expire"

// NewExpireTask builds the task that fails a booking still pending at fireAt.
// The task ID is derived from the booking so a booking is scheduled at most once.
func NewExpireTask(bookingID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.ExpirePayload{BookingID: bookingID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeExpireBooking, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("expire:" + bookingID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseExpirePayload decodes the payload of a booking:expire task.
func ParseExpirePayload(task *asynq.Task) (models.ExpirePayload, error) {
	var p models.ExpirePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeExpireBooking, err)
	}
	if p.BookingID == "" {
		return p, fmt.Errorf("invalid %s payload: missing bookingId", TypeExpireBooking)
	}
	return p, nil
}

// Enqueuer is the subset of *asynq.Client used to schedule tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExpiryScheduler schedules pending-booking expiry on an asynq queue.
type ExpiryScheduler struct {
	client Enqueuer
}

func NewExpiryScheduler(client Enqueuer) *ExpiryScheduler {
	return &ExpiryScheduler{client: client}
}

// ScheduleExpiry enqueues the expiry of bookingID at fireAt. A task already
// scheduled for the same booking is not an error.
func (s *ExpiryScheduler) ScheduleExpiry(ctx context.Context, bookingID string, fireAt time.Time) error {
	task, opts, err := NewExpireTask(bookingID, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil && err != asynq.ErrTaskIDConflict {
		return fmt.Errorf("failed to schedule expiry for booking %s: %w", bookingID, err)
	}
	return nil
}
