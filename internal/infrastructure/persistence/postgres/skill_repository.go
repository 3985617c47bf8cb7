package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

const skillColumns = `id, name, description, requires_verification, is_active, created_at`

const upsertClaimSQL = `
INSERT INTO volunteer_skills (volunteer_id, skill_id, status, document_url, rejection_reason, validated_at, created_at)
VALUES ($1, $2, $3, $4, '', $5, $6)
ON CONFLICT (volunteer_id, skill_id) DO UPDATE
SET status = EXCLUDED.status, document_url = EXCLUDED.document_url,
	rejection_reason = '', validated_at = EXCLUDED.validated_at;
`

// reviewClaimSQL resolves a PENDING claim. The skills join backstops the
// document rule: a claim on a verification-required skill cannot be
// flipped to VALIDATED while its document_url is empty.
const reviewClaimSQL = `
UPDATE volunteer_skills vs
SET status = $3, rejection_reason = $4, validated_at = $5
FROM skills s
WHERE vs.volunteer_id = $1 AND vs.skill_id = $2 AND vs.status = 'PENDING'
	AND s.id = vs.skill_id
	AND ($3 <> 'VALIDATED' OR NOT s.requires_verification OR vs.document_url <> '');
`

type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

func (r *SkillRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM skills`, skillColumns)
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []*domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID.UUID, &s.Name, &s.Description, &s.RequiresVerification, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		skills = append(skills, &s)
	}
	return skills, rows.Err()
}

func (r *SkillRepository) GetByID(ctx context.Context, id domain.SkillID) (*domain.Skill, error) {
	query := fmt.Sprintf(`SELECT %s FROM skills WHERE id = $1`, skillColumns)
	var s domain.Skill
	err := r.pool.QueryRow(ctx, query, id.UUID).Scan(
		&s.ID.UUID, &s.Name, &s.Description, &s.RequiresVerification, &s.IsActive, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepository) UpsertClaim(ctx context.Context, claim *domain.VolunteerSkill) error {
	_, err := r.pool.Exec(ctx, upsertClaimSQL,
		claim.VolunteerID.UUID, claim.SkillID.UUID, string(claim.Status),
		claim.DocumentURL, claim.ValidatedAt, claim.CreatedAt)
	return err
}

func (r *SkillRepository) ListClaims(ctx context.Context, volunteerID domain.VolunteerID) ([]*domain.VolunteerSkill, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT volunteer_id, skill_id, status, document_url, rejection_reason, validated_at, created_at
		 FROM volunteer_skills WHERE volunteer_id = $1 ORDER BY created_at DESC`,
		volunteerID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*domain.VolunteerSkill
	for rows.Next() {
		var c domain.VolunteerSkill
		if err := rows.Scan(&c.VolunteerID.UUID, &c.SkillID.UUID, &c.Status, &c.DocumentURL,
			&c.RejectionReason, &c.ValidatedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		claims = append(claims, &c)
	}
	return claims, rows.Err()
}

func (r *SkillRepository) ValidatedSkillIDs(ctx context.Context, volunteerID domain.VolunteerID) ([]domain.SkillID, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT skill_id FROM volunteer_skills WHERE volunteer_id = $1 AND status = 'VALIDATED'`,
		volunteerID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []domain.SkillID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, domain.NewSkillID(id))
	}
	return ids, rows.Err()
}

func (r *SkillRepository) ReviewClaim(ctx context.Context, volunteerID domain.VolunteerID, skillID domain.SkillID, approve bool, reason string, now time.Time) error {
	status := domain.SkillRejected
	var validatedAt *time.Time
	if approve {
		status = domain.SkillValidated
		validatedAt = &now
		reason = ""
	}
	tag, err := r.pool.Exec(ctx, reviewClaimSQL, volunteerID.UUID, skillID.UUID, string(status), reason, validatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrInvalidState
	}
	return nil
}

// Ensure SkillRepository implements ports.SkillRepository.
var _ ports.SkillRepository = (*SkillRepository)(nil)
