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

const applicationColumns = `id, mission_id, volunteer_id, status, message, organization_message,
	has_required_skills, applied_at, responded_at`

const joinedApplicationColumns = `a.id, a.mission_id, a.volunteer_id, a.status, a.message,
	a.organization_message, a.has_required_skills, a.applied_at, a.responded_at`

const insertApplicationSQL = `
INSERT INTO applications (id, mission_id, volunteer_id, status, message, has_required_skills, applied_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// lockMissionForDecisionSQL locks the mission row so concurrent accepts
// for the same mission serialize on the capacity check.
const lockMissionForDecisionSQL = `
SELECT required_volunteers, accepted_volunteers FROM missions WHERE id = $1 FOR UPDATE;
`

const rejectPendingSQL = `
UPDATE applications SET status = 'REJECTED', organization_message = $2, responded_at = $3
WHERE id = $1 AND status = 'PENDING';
`

const cancelPendingSQL = `
UPDATE applications SET status = 'CANCELLED', responded_at = $3
WHERE id = $1 AND volunteer_id = $2 AND status = 'PENDING';
`

const reopenApplicationSQL = `
UPDATE applications
SET status = 'PENDING', message = $2, organization_message = '', has_required_skills = $3,
	applied_at = $4, responded_at = NULL
WHERE id = $1 AND status IN ('REJECTED', 'CANCELLED');
`

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	_, err := r.pool.Exec(ctx, insertApplicationSQL,
		app.ID.UUID, app.MissionID.UUID, app.VolunteerID.UUID, string(app.Status),
		app.Message, app.HasRequiredSkills, app.AppliedAt)
	if isUniqueViolation(err, "applications_mission_volunteer_key") {
		return domerrors.ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id domain.ApplicationID) (*domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)
	return r.one(ctx, query, id.UUID)
}

func (r *ApplicationRepository) GetForOrganization(ctx context.Context, id domain.ApplicationID, orgID domain.OrganizationID) (*domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications a
		JOIN missions m ON m.id = a.mission_id
		WHERE a.id = $1 AND m.organization_id = $2`, joinedApplicationColumns)
	return r.one(ctx, query, id.UUID, orgID.UUID)
}

func (r *ApplicationRepository) FindByMissionAndVolunteer(ctx context.Context, missionID domain.MissionID, volunteerID domain.VolunteerID) (*domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE mission_id = $1 AND volunteer_id = $2`, applicationColumns)
	return r.one(ctx, query, missionID.UUID, volunteerID.UUID)
}

func (r *ApplicationRepository) ListByVolunteer(ctx context.Context, volunteerID domain.VolunteerID, status domain.ApplicationStatus, limit, offset int) ([]*domain.Application, error) {
	return r.list(ctx, "volunteer_id", volunteerID.UUID, status, limit, offset)
}

func (r *ApplicationRepository) ListByMission(ctx context.Context, missionID domain.MissionID, status domain.ApplicationStatus, limit, offset int) ([]*domain.Application, error) {
	return r.list(ctx, "mission_id", missionID.UUID, status, limit, offset)
}

// AcceptPending runs the accept decision in one transaction: the mission
// row is locked, capacity is re-checked, and the participation is created
// together with the status flip. Losing a capacity race rolls everything
// back and leaves the application PENDING.
func (r *ApplicationRepository) AcceptPending(ctx context.Context, id domain.ApplicationID, message string, now time.Time) (*domain.Participation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var (
		missionID   uuid.UUID
		volunteerID uuid.UUID
		status      string
	)
	err = tx.QueryRow(ctx,
		`SELECT mission_id, volunteer_id, status FROM applications WHERE id = $1 FOR UPDATE`,
		id.UUID).Scan(&missionID, &volunteerID, &status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domerrors.ErrApplicationNotFound
		}
		return nil, err
	}
	if domain.ApplicationStatus(status) != domain.ApplicationPending {
		return nil, domerrors.ErrInvalidState
	}

	var required, accepted int
	if err := tx.QueryRow(ctx, lockMissionForDecisionSQL, missionID).Scan(&required, &accepted); err != nil {
		return nil, err
	}
	if accepted >= required {
		return nil, domerrors.ErrMissionFull
	}

	_, err = tx.Exec(ctx,
		`UPDATE applications SET status = 'ACCEPTED', organization_message = $2, responded_at = $3 WHERE id = $1`,
		id.UUID, message, now)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx,
		`UPDATE missions SET accepted_volunteers = accepted_volunteers + 1 WHERE id = $1`, missionID)
	if err != nil {
		return nil, err
	}

	participation := &domain.Participation{
		ID:            domain.NewParticipationID(uuid.New()),
		MissionID:     domain.NewMissionID(missionID),
		VolunteerID:   domain.NewVolunteerID(volunteerID),
		ApplicationID: id,
		CreatedAt:     now,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO participations (id, mission_id, volunteer_id, application_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		participation.ID.UUID, missionID, volunteerID, id.UUID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return participation, nil
}

func (r *ApplicationRepository) RejectPending(ctx context.Context, id domain.ApplicationID, message string, now time.Time) error {
	tag, err := r.pool.Exec(ctx, rejectPendingSQL, id.UUID, message, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrInvalidState
	}
	return nil
}

func (r *ApplicationRepository) CancelPending(ctx context.Context, id domain.ApplicationID, volunteerID domain.VolunteerID, now time.Time) error {
	tag, err := r.pool.Exec(ctx, cancelPendingSQL, id.UUID, volunteerID.UUID, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrInvalidState
	}
	return nil
}

func (r *ApplicationRepository) Reopen(ctx context.Context, id domain.ApplicationID, message string, hasRequiredSkills bool, now time.Time) error {
	tag, err := r.pool.Exec(ctx, reopenApplicationSQL, id.UUID, message, hasRequiredSkills, now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrInvalidState
	}
	return nil
}

func (r *ApplicationRepository) CountByVolunteer(ctx context.Context, volunteerID domain.VolunteerID, status domain.ApplicationStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE volunteer_id = $1 AND status = $2`,
		volunteerID.UUID, string(status)).Scan(&count)
	return count, err
}

func (r *ApplicationRepository) CountUpcomingAccepted(ctx context.Context, volunteerID domain.VolunteerID, today time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications a
		 JOIN missions m ON m.id = a.mission_id
		 WHERE a.volunteer_id = $1 AND a.status = 'ACCEPTED' AND m.date >= $2`,
		volunteerID.UUID, today).Scan(&count)
	return count, err
}

func (r *ApplicationRepository) ListUpcomingAccepted(ctx context.Context, volunteerID domain.VolunteerID, today time.Time, limit int) ([]*domain.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications a
		JOIN missions m ON m.id = a.mission_id
		WHERE a.volunteer_id = $1 AND a.status = 'ACCEPTED' AND m.date >= $2
		ORDER BY m.date ASC LIMIT $3`, joinedApplicationColumns)
	return r.many(ctx, query, volunteerID.UUID, today, limit)
}

func (r *ApplicationRepository) CountPendingForOrganization(ctx context.Context, orgID domain.OrganizationID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications a
		 JOIN missions m ON m.id = a.mission_id
		 WHERE m.organization_id = $1 AND a.status = 'PENDING'`,
		orgID.UUID).Scan(&count)
	return count, err
}

func (r *ApplicationRepository) list(ctx context.Context, column string, id uuid.UUID, status domain.ApplicationStatus, limit, offset int) ([]*domain.Application, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE %s = $1`, applicationColumns, column)
	args := []any{id}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, string(status))
	}
	query += fmt.Sprintf(` ORDER BY applied_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.many(ctx, query, args...)
}

func (r *ApplicationRepository) one(ctx context.Context, query string, args ...any) (*domain.Application, error) {
	app, err := scanApplication(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) many(ctx context.Context, query string, args ...any) ([]*domain.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	err := row.Scan(
		&app.ID.UUID, &app.MissionID.UUID, &app.VolunteerID.UUID, &app.Status, &app.Message,
		&app.OrganizationMessage, &app.HasRequiredSkills, &app.AppliedAt, &app.RespondedAt)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Ensure ApplicationRepository implements ports.ApplicationRepository.
var _ ports.ApplicationRepository = (*ApplicationRepository)(nil)
