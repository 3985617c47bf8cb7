package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MissionStatus is the lifecycle status of a mission.
type MissionStatus string

const (
	MissionDraft     MissionStatus = "DRAFT"
	MissionPublished MissionStatus = "PUBLISHED"
	MissionOngoing   MissionStatus = "ONGOING"
	MissionCompleted MissionStatus = "COMPLETED"
	MissionCancelled MissionStatus = "CANCELLED"
	MissionArchived  MissionStatus = "ARCHIVED"
)

// MissionID is a value object for mission identity.
type MissionID struct{ uuid.UUID }

// NewMissionID creates a new MissionID from uuid.
func NewMissionID(id uuid.UUID) MissionID { return MissionID{UUID: id} }

// String returns the canonical string form.
func (m MissionID) String() string { return m.UUID.String() }

// Mission is a volunteering opportunity published by an organization with
// a fixed capacity. AcceptedVolunteers never exceeds RequiredVolunteers;
// the accept decision enforces this, not a clamp after the fact.
type Mission struct {
	ID                 MissionID
	OrganizationID     OrganizationID
	Title              string
	ShortDescription   string
	FullDescription    string
	SDG                int // UN sustainable development goal, 1-17
	Date               time.Time
	StartTime          string // "15:04"
	EndTime            string
	Wilaya             string
	Commune            string
	Address            string
	RequiredVolunteers int
	AcceptedVolunteers int
	Status             MissionStatus
	ViewCount          int
	ApplicationCount   int
	CreatedAt          time.Time
	PublishedAt        *time.Time
}

// RemainingPlaces returns how many volunteers can still be accepted.
func (m *Mission) RemainingPlaces() int {
	return m.RequiredVolunteers - m.AcceptedVolunteers
}

// FillPercentage returns accepted/required as a rounded percentage,
// 0 when no volunteers are required.
func (m *Mission) FillPercentage() int {
	if m.RequiredVolunteers == 0 {
		return 0
	}
	return int(math.Round(100 * float64(m.AcceptedVolunteers) / float64(m.RequiredVolunteers)))
}

// IsFull reports whether the mission has no remaining places.
func (m *Mission) IsFull() bool {
	return m.AcceptedVolunteers >= m.RequiredVolunteers
}

// SkillRequirement links a mission to a required skill. Only requirements
// with VerificationRequired gate admission; the rest are advisory and only
// feed the application's informational has_required_skills flag.
type SkillRequirement struct {
	MissionID            MissionID
	SkillID              SkillID
	VerificationRequired bool
}
