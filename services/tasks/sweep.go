package tasks

import "github.com/hibiken/asynq"

const TypeExpireSweep = "booking:expire-sweep"

// NewSweepTask builds the periodic task that expires every stale pending booking.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeExpireSweep, nil)
}
