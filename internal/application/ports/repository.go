package ports

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

// MissionFilters narrows the public mission catalog.
type MissionFilters struct {
	Wilaya    string
	SDG       int
	SkillIDs  []domain.SkillID
	HasPlaces bool
	Limit     int
	Offset    int
}

// MissionRepository defines persistence for missions and their skill
// requirements.
type MissionRepository interface {
	Create(ctx context.Context, mission *domain.Mission, requirements []domain.SkillRequirement) error
	GetByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error)
	// GetPublishedByID returns the mission only when it is PUBLISHED.
	GetPublishedByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error)
	// GetForOrganization scopes the lookup to the owning organization.
	GetForOrganization(ctx context.Context, id domain.MissionID, orgID domain.OrganizationID) (*domain.Mission, error)
	// ListPublished returns PUBLISHED missions with a date at or after today.
	ListPublished(ctx context.Context, filters MissionFilters) ([]*domain.Mission, error)
	ListByOrganization(ctx context.Context, orgID domain.OrganizationID, limit, offset int) ([]*domain.Mission, error)
	ListActiveByOrganization(ctx context.Context, orgID domain.OrganizationID, limit int) ([]*domain.Mission, error)
	CountByOrganization(ctx context.Context, orgID domain.OrganizationID) (int, error)
	// Publish transitions DRAFT to PUBLISHED, scoped to the owning org.
	Publish(ctx context.Context, id domain.MissionID, orgID domain.OrganizationID, now time.Time) error
	SkillRequirements(ctx context.Context, id domain.MissionID) ([]domain.SkillRequirement, error)
	// IncrementApplicationCount bumps the diagnostic application counter.
	IncrementApplicationCount(ctx context.Context, id domain.MissionID) error
	// IncrementViewCount is the postgres fallback for the view counter.
	IncrementViewCount(ctx context.Context, id domain.MissionID) error
}

// ApplicationRepository defines persistence for applications, including
// the atomic decision transitions.
type ApplicationRepository interface {
	// Create inserts a PENDING application. A concurrent duplicate for the
	// same (mission, volunteer) pair fails with ErrDuplicateApplication via
	// the store's unique constraint, not just an existence check.
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id domain.ApplicationID) (*domain.Application, error)
	// GetForOrganization scopes the lookup to the org owning the mission.
	GetForOrganization(ctx context.Context, id domain.ApplicationID, orgID domain.OrganizationID) (*domain.Application, error)
	FindByMissionAndVolunteer(ctx context.Context, missionID domain.MissionID, volunteerID domain.VolunteerID) (*domain.Application, error)
	ListByVolunteer(ctx context.Context, volunteerID domain.VolunteerID, status domain.ApplicationStatus, limit, offset int) ([]*domain.Application, error)
	ListByMission(ctx context.Context, missionID domain.MissionID, status domain.ApplicationStatus, limit, offset int) ([]*domain.Application, error)

	// AcceptPending re-checks mission capacity under a row lock, moves the
	// application to ACCEPTED, increments accepted_volunteers, and creates
	// the 1:1 participation, all in one transaction. Returns ErrMissionFull
	// (application left PENDING) when capacity is exhausted, or
	// ErrInvalidState when the application is no longer PENDING.
	AcceptPending(ctx context.Context, id domain.ApplicationID, message string, now time.Time) (*domain.Participation, error)
	// RejectPending moves a PENDING application to REJECTED.
	RejectPending(ctx context.Context, id domain.ApplicationID, message string, now time.Time) error
	// CancelPending moves a volunteer's own PENDING application to CANCELLED.
	CancelPending(ctx context.Context, id domain.ApplicationID, volunteerID domain.VolunteerID, now time.Time) error
	// Reopen moves a REJECTED or CANCELLED application back to PENDING with
	// a fresh message. Used only when re-application is enabled so the
	// one-row-per-pair invariant holds either way.
	Reopen(ctx context.Context, id domain.ApplicationID, message string, hasRequiredSkills bool, now time.Time) error

	CountByVolunteer(ctx context.Context, volunteerID domain.VolunteerID, status domain.ApplicationStatus) (int, error)
	CountUpcomingAccepted(ctx context.Context, volunteerID domain.VolunteerID, today time.Time) (int, error)
	ListUpcomingAccepted(ctx context.Context, volunteerID domain.VolunteerID, today time.Time, limit int) ([]*domain.Application, error)
	CountPendingForOrganization(ctx context.Context, orgID domain.OrganizationID) (int, error)
}

// HoursValidation carries one entry of a validate-hours batch.
type HoursValidation struct {
	ParticipationID domain.ParticipationID
	WasPresent      bool
	Hours           float64
	Rating          *int
	Comment         string
}

// ValidationOutcome reports one applied validate-hours entry.
type ValidationOutcome struct {
	VolunteerID domain.VolunteerID
	// Credited is the hours added to the volunteer's totals; zero for an
	// absent volunteer or a zero-hours entry.
	Credited float64
	// NewTotal is total_hours after the credit. Meaningful only when
	// Credited > 0.
	NewTotal float64
}

// ParticipationRepository defines persistence for participations.
type ParticipationRepository interface {
	GetByID(ctx context.Context, id domain.ParticipationID) (*domain.Participation, error)
	ListByVolunteer(ctx context.Context, volunteerID domain.VolunteerID, limit, offset int) ([]*domain.Participation, error)
	ListByMission(ctx context.Context, missionID domain.MissionID) ([]*domain.Participation, error)
	// MarkValidated applies one validation entry with compare-and-swap
	// semantics on hours_validated, scoped to the mission (a cross-mission
	// id is ErrParticipationNotFound). A second validation returns
	// ErrAlreadyValidated without touching the row. Absence zeroes the
	// stored hours whatever was submitted. When hours are credited, the
	// volunteer's totals are incremented in the same transaction as the
	// flag flip, so the entry can never be consumed without the credit
	// landing.
	MarkValidated(ctx context.Context, missionID domain.MissionID, v HoursValidation, now time.Time) (*ValidationOutcome, error)
}

// VolunteerRepository defines persistence for volunteer profiles.
type VolunteerRepository interface {
	GetByID(ctx context.Context, id domain.VolunteerID) (*domain.Volunteer, error)
	GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Volunteer, error)
	// SetBadge persists the derived badge tier.
	SetBadge(ctx context.Context, id domain.VolunteerID, badge domain.BadgeLevel) error
}

// OrganizationRepository defines persistence for organization profiles.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id domain.OrganizationID) (*domain.Organization, error)
	GetByUserID(ctx context.Context, userID domain.UserID) (*domain.Organization, error)
}

// SkillRepository defines persistence for skills and volunteer claims.
type SkillRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Skill, error)
	GetByID(ctx context.Context, id domain.SkillID) (*domain.Skill, error)
	// UpsertClaim inserts or refreshes a volunteer's claim on a skill.
	UpsertClaim(ctx context.Context, claim *domain.VolunteerSkill) error
	ListClaims(ctx context.Context, volunteerID domain.VolunteerID) ([]*domain.VolunteerSkill, error)
	// ValidatedSkillIDs returns the ids of skills the volunteer holds with
	// status VALIDATED.
	ValidatedSkillIDs(ctx context.Context, volunteerID domain.VolunteerID) ([]domain.SkillID, error)
	// ReviewClaim resolves a PENDING claim to VALIDATED or REJECTED.
	ReviewClaim(ctx context.Context, volunteerID domain.VolunteerID, skillID domain.SkillID, approve bool, reason string, now time.Time) error
}

// UserRepository defines persistence for accounts. Account creation writes
// the user row and the role profile row in one transaction.
type UserRepository interface {
	CreateVolunteerAccount(ctx context.Context, user *domain.User, profile *domain.Volunteer) error
	CreateOrganizationAccount(ctx context.Context, user *domain.User, profile *domain.Organization) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// HomeStats are the public landing-page counters.
type HomeStats struct {
	TotalVolunteers int
	TotalMissions   int
	TotalHours      float64
}

// StatsRepository aggregates cross-entity counters.
type StatsRepository interface {
	Home(ctx context.Context) (HomeStats, error)
}
