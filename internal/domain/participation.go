package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationID is a value object for participation identity.
type ParticipationID struct{ uuid.UUID }

// NewParticipationID creates a new ParticipationID from uuid.
func NewParticipationID(id uuid.UUID) ParticipationID { return ParticipationID{UUID: id} }

// String returns the canonical string form.
func (p ParticipationID) String() string { return p.UUID.String() }

// Participation is the materialized record of an accepted application,
// created exactly once at the moment of acceptance and linked 1:1 back to
// it. HoursValidated is write-once: a second validation of the same
// participation must never double-count hours.
type Participation struct {
	ID                  ParticipationID
	MissionID           MissionID
	VolunteerID         VolunteerID
	ApplicationID       ApplicationID
	WasPresent          bool
	HoursCompleted      float64
	HoursValidated      bool
	ValidatedAt         *time.Time
	OrganizationRating  *int // 1-5
	OrganizationComment string
	VolunteerRating     *int // 1-5
	VolunteerComment    string
	CreatedAt           time.Time
}
