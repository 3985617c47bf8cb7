package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
)

const (
	TypeApplicationDecided = "email:application_decided"
	TypeHoursValidated     = "email:hours_validated"
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueApplicationDecided(ctx context.Context, email, missionTitle, decision string) error {
	payload, _ := json.Marshal(map[string]string{
		"email":         email,
		"mission_title": missionTitle,
		"decision":      decision,
	})
	task := asynq.NewTask(TypeApplicationDecided, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue application decision email failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueHoursValidated(ctx context.Context, email, missionTitle string, hours float64) error {
	payload, _ := json.Marshal(map[string]any{
		"email":         email,
		"mission_title": missionTitle,
		"hours":         hours,
	})
	task := asynq.NewTask(TypeHoursValidated, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue hours validated email failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
