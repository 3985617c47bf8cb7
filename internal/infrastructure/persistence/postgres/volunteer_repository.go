package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

const volunteerColumns = `id, user_id, wilaya, commune, motivation, total_hours,
	completed_missions, average_rating, badge_level, created_at, updated_at`

type VolunteerRepository struct {
	pool *pgxpool.Pool
}

func NewVolunteerRepository(pool *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{pool: pool}
}

func (r *VolunteerRepository) GetByID(ctx context.Context, id domain.VolunteerID) (*domain.Volunteer, error) {
	query := fmt.Sprintf(`SELECT %s FROM volunteers WHERE id = $1`, volunteerColumns)
	return r.one(ctx, query, id.UUID)
}

func (r *VolunteerRepository) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Volunteer, error) {
	query := fmt.Sprintf(`SELECT %s FROM volunteers WHERE user_id = $1`, volunteerColumns)
	return r.one(ctx, query, userID.UUID)
}

func (r *VolunteerRepository) SetBadge(ctx context.Context, id domain.VolunteerID, badge domain.BadgeLevel) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE volunteers SET badge_level = $2, updated_at = NOW() WHERE id = $1`,
		id.UUID, string(badge))
	return err
}

func (r *VolunteerRepository) one(ctx context.Context, query string, args ...any) (*domain.Volunteer, error) {
	var v domain.Volunteer
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&v.ID.UUID, &v.UserID.UUID, &v.Wilaya, &v.Commune, &v.Motivation, &v.TotalHours,
		&v.CompletedMissions, &v.AverageRating, &v.BadgeLevel, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

// Ensure VolunteerRepository implements ports.VolunteerRepository.
var _ ports.VolunteerRepository = (*VolunteerRepository)(nil)
