package domain

import (
	"time"

	"github.com/google/uuid"
)

// VolunteerID is a value object for volunteer profile identity.
type VolunteerID struct{ uuid.UUID }

// NewVolunteerID creates a new VolunteerID from uuid.
func NewVolunteerID(id uuid.UUID) VolunteerID { return VolunteerID{UUID: id} }

// String returns the canonical string form.
func (v VolunteerID) String() string { return v.UUID.String() }

// Volunteer is the volunteer profile attached 1:1 to a user.
// TotalHours, CompletedMissions and BadgeLevel are mutated only by the
// hours-validation workflow; BadgeLevel is derived (see BadgeForHours).
type Volunteer struct {
	ID                VolunteerID
	UserID            UserID
	Wilaya            string
	Commune           string
	Motivation        string
	TotalHours        float64
	CompletedMissions int
	AverageRating     float64
	BadgeLevel        BadgeLevel
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
