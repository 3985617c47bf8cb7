package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// applicationDecidedPayload matches the JSON enqueued by EnqueueApplicationDecided.
type applicationDecidedPayload struct {
	Email        string `json:"email"`
	MissionTitle string `json:"mission_title"`
	Decision     string `json:"decision"`
}

// hoursValidatedPayload matches the JSON enqueued by EnqueueHoursValidated.
type hoursValidatedPayload struct {
	Email        string  `json:"email"`
	MissionTitle string  `json:"mission_title"`
	Hours        float64 `json:"hours"`
}

// Worker runs Asynq task handlers for volunteer notification emails.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeApplicationDecided, w.handleApplicationDecided)
	mux.HandleFunc(TypeHoursValidated, w.handleHoursValidated)
	return w
}

func (w *Worker) handleApplicationDecided(ctx context.Context, t *asynq.Task) error {
	var p applicationDecidedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("application decided task payload invalid")
		return err
	}
	// Dev: log the notification; production would send email via SMTP etc.
	w.log.Info().
		Str("email", p.Email).
		Str("mission", p.MissionTitle).
		Str("decision", p.Decision).
		Msg("application decision email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleHoursValidated(ctx context.Context, t *asynq.Task) error {
	var p hoursValidatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("hours validated task payload invalid")
		return err
	}
	w.log.Info().
		Str("email", p.Email).
		Str("mission", p.MissionTitle).
		Float64("hours", p.Hours).
		Msg("hours validated email (log only; configure SMTP for real email)")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
