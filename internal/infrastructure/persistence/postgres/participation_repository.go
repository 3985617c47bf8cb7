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

const participationColumns = `id, mission_id, volunteer_id, application_id, was_present,
	hours_completed, hours_validated, validated_at, organization_rating, organization_comment,
	volunteer_rating, volunteer_comment, created_at`

// markValidatedSQL flips hours_validated with compare-and-swap semantics:
// the WHERE clause refuses rows already validated, so a rerun of the same
// batch can never double-count.
const markValidatedSQL = `
UPDATE participations
SET was_present = $3, hours_completed = $4, hours_validated = TRUE, validated_at = $5,
	organization_rating = $6, organization_comment = $7
WHERE id = $1 AND mission_id = $2 AND NOT hours_validated
RETURNING volunteer_id;
`

// creditVolunteerSQL increments the running totals in the database so
// concurrent validations never lose an update, and returns the new total
// for badge recomputation. Runs inside the MarkValidated transaction.
const creditVolunteerSQL = `
UPDATE volunteers
SET total_hours = total_hours + $2, completed_missions = completed_missions + 1, updated_at = NOW()
WHERE id = $1
RETURNING total_hours;
`

type ParticipationRepository struct {
	pool *pgxpool.Pool
}

func NewParticipationRepository(pool *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{pool: pool}
}

func (r *ParticipationRepository) GetByID(ctx context.Context, id domain.ParticipationID) (*domain.Participation, error) {
	query := fmt.Sprintf(`SELECT %s FROM participations WHERE id = $1`, participationColumns)
	p, err := scanParticipation(r.pool.QueryRow(ctx, query, id.UUID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipationRepository) ListByVolunteer(ctx context.Context, volunteerID domain.VolunteerID, limit, offset int) ([]*domain.Participation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM participations WHERE volunteer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, participationColumns)
	return r.many(ctx, query, volunteerID.UUID, limit, offset)
}

func (r *ParticipationRepository) ListByMission(ctx context.Context, missionID domain.MissionID) ([]*domain.Participation, error) {
	query := fmt.Sprintf(`SELECT %s FROM participations WHERE mission_id = $1 ORDER BY created_at ASC`, participationColumns)
	return r.many(ctx, query, missionID.UUID)
}

func (r *ParticipationRepository) MarkValidated(ctx context.Context, missionID domain.MissionID, v ports.HoursValidation, now time.Time) (*ports.ValidationOutcome, error) {
	hours := v.Hours
	if !v.WasPresent {
		// An absent volunteer records zero hours whatever was submitted.
		hours = 0
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var volunteerID uuid.UUID
	err = tx.QueryRow(ctx, markValidatedSQL,
		v.ParticipationID.UUID, missionID.UUID, v.WasPresent, hours, now, v.Rating, v.Comment).
		Scan(&volunteerID)
	if err == pgx.ErrNoRows {
		return nil, r.classifyMiss(ctx, v.ParticipationID, missionID)
	}
	if err != nil {
		return nil, err
	}

	outcome := &ports.ValidationOutcome{VolunteerID: domain.NewVolunteerID(volunteerID)}
	if hours > 0 {
		// Same transaction as the flag flip: the entry is never consumed
		// without the credit landing.
		err = tx.QueryRow(ctx, creditVolunteerSQL, volunteerID, hours).Scan(&outcome.NewTotal)
		if err == pgx.ErrNoRows {
			return nil, domerrors.ErrVolunteerNotFound
		}
		if err != nil {
			return nil, err
		}
		outcome.Credited = hours
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return outcome, nil
}

// classifyMiss tells a bad participation id apart from a repeat
// validation after the CAS update matched no row.
func (r *ParticipationRepository) classifyMiss(ctx context.Context, id domain.ParticipationID, missionID domain.MissionID) error {
	var validated bool
	err := r.pool.QueryRow(ctx,
		`SELECT hours_validated FROM participations WHERE id = $1 AND mission_id = $2`,
		id.UUID, missionID.UUID).Scan(&validated)
	if err == pgx.ErrNoRows {
		return domerrors.ErrParticipationNotFound
	}
	if err != nil {
		return err
	}
	if validated {
		return domerrors.ErrAlreadyValidated
	}
	return domerrors.ErrParticipationNotFound
}

func (r *ParticipationRepository) many(ctx context.Context, query string, args ...any) ([]*domain.Participation, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participations []*domain.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}

func scanParticipation(row pgx.Row) (*domain.Participation, error) {
	var p domain.Participation
	err := row.Scan(
		&p.ID.UUID, &p.MissionID.UUID, &p.VolunteerID.UUID, &p.ApplicationID.UUID,
		&p.WasPresent, &p.HoursCompleted, &p.HoursValidated, &p.ValidatedAt,
		&p.OrganizationRating, &p.OrganizationComment, &p.VolunteerRating,
		&p.VolunteerComment, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure ParticipationRepository implements ports.ParticipationRepository.
var _ ports.ParticipationRepository = (*ParticipationRepository)(nil)
