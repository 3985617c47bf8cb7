package queue

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueApplicationDecided(ctx context.Context, email, missionTitle, decision string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueHoursValidated(ctx context.Context, email, missionTitle string, hours float64) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
