package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

const organizationColumns = `id, user_id, name, type, wilaya, description, is_verified,
	total_missions, total_volunteers, average_rating, created_at`

type OrganizationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id domain.OrganizationID) (*domain.Organization, error) {
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE id = $1`, organizationColumns)
	return r.one(ctx, query, id.UUID)
}

func (r *OrganizationRepository) GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Organization, error) {
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE user_id = $1`, organizationColumns)
	return r.one(ctx, query, userID.UUID)
}

func (r *OrganizationRepository) one(ctx context.Context, query string, args ...any) (*domain.Organization, error) {
	var o domain.Organization
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&o.ID.UUID, &o.UserID.UUID, &o.Name, &o.Type, &o.Wilaya, &o.Description,
		&o.IsVerified, &o.TotalMissions, &o.TotalVolunteers, &o.AverageRating, &o.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// Ensure OrganizationRepository implements ports.OrganizationRepository.
var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)
