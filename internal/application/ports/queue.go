package ports

import "context"

// TaskEnqueuer enqueues async notification tasks. Failures are logged by
// implementations and never fail the originating request.
type TaskEnqueuer interface {
	// EnqueueApplicationDecided notifies a volunteer that their application
	// was accepted or rejected.
	EnqueueApplicationDecided(ctx context.Context, email, missionTitle, decision string) error
	// EnqueueHoursValidated notifies a volunteer that their hours were
	// validated.
	EnqueueHoursValidated(ctx context.Context, email, missionTitle string, hours float64) error
}
