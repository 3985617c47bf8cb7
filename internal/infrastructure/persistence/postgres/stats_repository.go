package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
)

const homeStatsSQL = `
SELECT
	(SELECT COUNT(*) FROM volunteers),
	(SELECT COUNT(*) FROM missions WHERE status NOT IN ('DRAFT', 'CANCELLED')),
	(SELECT COALESCE(SUM(total_hours), 0) FROM volunteers);
`

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) Home(ctx context.Context) (ports.HomeStats, error) {
	var stats ports.HomeStats
	err := r.pool.QueryRow(ctx, homeStatsSQL).Scan(&stats.TotalVolunteers, &stats.TotalMissions, &stats.TotalHours)
	return stats, err
}

// Ensure StatsRepository implements ports.StatsRepository.
var _ ports.StatsRepository = (*StatsRepository)(nil)
