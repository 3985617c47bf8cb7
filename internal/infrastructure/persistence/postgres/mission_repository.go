package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

const missionColumns = `id, organization_id, title, short_description, full_description, sdg, date,
	start_time, end_time, wilaya, commune, address, required_volunteers, accepted_volunteers,
	status, view_count, application_count, created_at, published_at`

const insertMissionSQL = `
INSERT INTO missions (id, organization_id, title, short_description, full_description, sdg, date,
	start_time, end_time, wilaya, commune, address, required_volunteers, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
`

const insertSkillRequirementSQL = `
INSERT INTO mission_skill_requirements (mission_id, skill_id, verification_required)
VALUES ($1, $2, $3);
`

const publishMissionSQL = `
UPDATE missions SET status = 'PUBLISHED', published_at = $3
WHERE id = $1 AND organization_id = $2 AND status = 'DRAFT';
`

type MissionRepository struct {
	pool *pgxpool.Pool
}

func NewMissionRepository(pool *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{pool: pool}
}

func (r *MissionRepository) Create(ctx context.Context, mission *domain.Mission, requirements []domain.SkillRequirement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertMissionSQL,
		mission.ID.UUID, mission.OrganizationID.UUID, mission.Title, mission.ShortDescription,
		mission.FullDescription, mission.SDG, mission.Date, mission.StartTime, mission.EndTime,
		mission.Wilaya, mission.Commune, mission.Address, mission.RequiredVolunteers,
		string(mission.Status), mission.CreatedAt)
	if err != nil {
		return err
	}
	for _, req := range requirements {
		if _, err := tx.Exec(ctx, insertSkillRequirementSQL, req.MissionID.UUID, req.SkillID.UUID, req.VerificationRequired); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *MissionRepository) GetByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error) {
	query := fmt.Sprintf(`SELECT %s FROM missions WHERE id = $1`, missionColumns)
	return r.one(ctx, query, id.UUID)
}

func (r *MissionRepository) GetPublishedByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error) {
	query := fmt.Sprintf(`SELECT %s FROM missions WHERE id = $1 AND status = 'PUBLISHED'`, missionColumns)
	return r.one(ctx, query, id.UUID)
}

func (r *MissionRepository) GetForOrganization(ctx context.Context, id domain.MissionID, orgID domain.OrganizationID) (*domain.Mission, error) {
	query := fmt.Sprintf(`SELECT %s FROM missions WHERE id = $1 AND organization_id = $2`, missionColumns)
	return r.one(ctx, query, id.UUID, orgID.UUID)
}

func (r *MissionRepository) ListPublished(ctx context.Context, filters ports.MissionFilters) ([]*domain.Mission, error) {
	conditions := []string{"status = 'PUBLISHED'", "date >= CURRENT_DATE"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.Wilaya != "" {
		conditions = append(conditions, "wilaya = "+arg(filters.Wilaya))
	}
	if filters.SDG > 0 {
		conditions = append(conditions, "sdg = "+arg(filters.SDG))
	}
	if filters.HasPlaces {
		conditions = append(conditions, "accepted_volunteers < required_volunteers")
	}
	if len(filters.SkillIDs) > 0 {
		ids := make([]any, 0, len(filters.SkillIDs))
		for _, id := range filters.SkillIDs {
			ids = append(ids, id.UUID)
		}
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM mission_skill_requirements r WHERE r.mission_id = missions.id AND r.skill_id = ANY("+arg(ids)+"))")
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM missions WHERE %s ORDER BY date ASC, created_at DESC LIMIT %s OFFSET %s`,
		missionColumns, strings.Join(conditions, " AND "), arg(limit), arg(filters.Offset))

	return r.many(ctx, query, args...)
}

func (r *MissionRepository) ListByOrganization(ctx context.Context, orgID domain.OrganizationID, limit, offset int) ([]*domain.Mission, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM missions WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, missionColumns)
	return r.many(ctx, query, orgID.UUID, limit, offset)
}

func (r *MissionRepository) ListActiveByOrganization(ctx context.Context, orgID domain.OrganizationID, limit int) ([]*domain.Mission, error) {
	query := fmt.Sprintf(`SELECT %s FROM missions
		WHERE organization_id = $1 AND status IN ('PUBLISHED', 'ONGOING')
		ORDER BY date ASC LIMIT $2`, missionColumns)
	return r.many(ctx, query, orgID.UUID, limit)
}

func (r *MissionRepository) CountByOrganization(ctx context.Context, orgID domain.OrganizationID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM missions WHERE organization_id = $1`, orgID.UUID).Scan(&count)
	return count, err
}

func (r *MissionRepository) Publish(ctx context.Context, id domain.MissionID, orgID domain.OrganizationID, now time.Time) error {
	_, err := r.pool.Exec(ctx, publishMissionSQL, id.UUID, orgID.UUID, now)
	return err
}

func (r *MissionRepository) SkillRequirements(ctx context.Context, id domain.MissionID) ([]domain.SkillRequirement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT mission_id, skill_id, verification_required FROM mission_skill_requirements WHERE mission_id = $1`,
		id.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requirements []domain.SkillRequirement
	for rows.Next() {
		var req domain.SkillRequirement
		if err := rows.Scan(&req.MissionID.UUID, &req.SkillID.UUID, &req.VerificationRequired); err != nil {
			return nil, err
		}
		requirements = append(requirements, req)
	}
	return requirements, rows.Err()
}

func (r *MissionRepository) IncrementApplicationCount(ctx context.Context, id domain.MissionID) error {
	_, err := r.pool.Exec(ctx, `UPDATE missions SET application_count = application_count + 1 WHERE id = $1`, id.UUID)
	return err
}

func (r *MissionRepository) IncrementViewCount(ctx context.Context, id domain.MissionID) error {
	_, err := r.pool.Exec(ctx, `UPDATE missions SET view_count = view_count + 1 WHERE id = $1`, id.UUID)
	return err
}

func (r *MissionRepository) one(ctx context.Context, query string, args ...any) (*domain.Mission, error) {
	m, err := scanMission(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *MissionRepository) many(ctx context.Context, query string, args ...any) ([]*domain.Mission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []*domain.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, m)
	}
	return missions, rows.Err()
}

func scanMission(row pgx.Row) (*domain.Mission, error) {
	var m domain.Mission
	err := row.Scan(
		&m.ID.UUID, &m.OrganizationID.UUID, &m.Title, &m.ShortDescription, &m.FullDescription,
		&m.SDG, &m.Date, &m.StartTime, &m.EndTime, &m.Wilaya, &m.Commune, &m.Address,
		&m.RequiredVolunteers, &m.AcceptedVolunteers, &m.Status, &m.ViewCount,
		&m.ApplicationCount, &m.CreatedAt, &m.PublishedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Ensure MissionRepository implements ports.MissionRepository.
var _ ports.MissionRepository = (*MissionRepository)(nil)
