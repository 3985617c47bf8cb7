package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrMissionNotFound       = errors.New("mission not found")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrParticipationNotFound = errors.New("participation not found")
	ErrVolunteerNotFound     = errors.New("volunteer not found")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrSkillNotFound         = errors.New("skill not found")

	// ErrMissionFull: accepting or applying would push accepted_volunteers
	// past required_volunteers.
	ErrMissionFull = errors.New("mission has no remaining places")

	// ErrDuplicateApplication: an application already exists for this
	// (mission, volunteer) pair, whatever its status.
	ErrDuplicateApplication = errors.New("an application already exists for this mission")

	// ErrSkillGap: a verification-required skill on the mission has no
	// VALIDATED claim from the volunteer.
	ErrSkillGap = errors.New("missing a validated skill required by this mission")

	// ErrDocumentRequired: a claim on a verification-required skill has no
	// supporting document and therefore cannot leave PENDING.
	ErrDocumentRequired = errors.New("supporting document required to validate this skill")

	ErrInvalidState     = errors.New("operation not allowed in the current state")
	ErrMissionNotEnded  = errors.New("mission has not ended yet")
	ErrAlreadyValidated = errors.New("hours already validated for this participation")
	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account already exists for this email")
)
