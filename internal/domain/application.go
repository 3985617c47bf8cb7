package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the state of a volunteer's application.
// PENDING is the only non-terminal state.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "PENDING"
	ApplicationAccepted  ApplicationStatus = "ACCEPTED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
	ApplicationCancelled ApplicationStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed.
func (s ApplicationStatus) Terminal() bool {
	return s != ApplicationPending
}

// ApplicationID is a value object for application identity.
type ApplicationID struct{ uuid.UUID }

// NewApplicationID creates a new ApplicationID from uuid.
func NewApplicationID(id uuid.UUID) ApplicationID { return ApplicationID{UUID: id} }

// String returns the canonical string form.
func (a ApplicationID) String() string { return a.UUID.String() }

// Application is a volunteer's request to join a mission. At most one row
// ever exists per (mission, volunteer) pair; the store enforces this with
// a unique constraint.
type Application struct {
	ID                  ApplicationID
	MissionID           MissionID
	VolunteerID         VolunteerID
	Status              ApplicationStatus
	Message             string
	OrganizationMessage string
	HasRequiredSkills   bool
	AppliedAt           time.Time
	RespondedAt         *time.Time
}
