package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves /health. Postgres is required; redis is an
// optional dependency (view counters, notifications) and is reported as
// disabled rather than failing the check when not configured.
type HealthHandler struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redisClient}
}

type healthCheck struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]healthCheck{
		"database": runCheck(func() error { return h.pool.Ping(ctx) }),
	}
	if h.redis != nil {
		checks["redis"] = runCheck(func() error { return h.redis.Ping(ctx).Err() })
	} else {
		checks["redis"] = healthCheck{Status: "disabled"}
	}

	status := http.StatusOK
	overall := "ok"
	for _, c := range checks {
		if c.Status == "down" {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
			break
		}
	}
	writeJSON(w, status, map[string]interface{}{
		"status":  overall,
		"service": "dz-volunteer",
		"checks":  checks,
	})
}

func runCheck(ping func() error) healthCheck {
	start := time.Now()
	if err := ping(); err != nil {
		return healthCheck{Status: "down", LatencyMS: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	return healthCheck{Status: "ok", LatencyMS: time.Since(start).Milliseconds()}
}
