package domain

import (
	"time"

	"github.com/google/uuid"
)

// VolunteerSkillStatus is the validation state of a claimed skill.
type VolunteerSkillStatus string

const (
	SkillPending   VolunteerSkillStatus = "PENDING"
	SkillValidated VolunteerSkillStatus = "VALIDATED"
	SkillRejected  VolunteerSkillStatus = "REJECTED"
)

// SkillID is a value object for skill identity.
type SkillID struct{ uuid.UUID }

// NewSkillID creates a new SkillID from uuid.
func NewSkillID(id uuid.UUID) SkillID { return SkillID{UUID: id} }

// String returns the canonical string form.
func (s SkillID) String() string { return s.UUID.String() }

// Skill is a platform-wide skill definition. Skills with
// RequiresVerification demand a supporting document before a claim can be
// validated.
type Skill struct {
	ID                   SkillID
	Name                 string
	Description          string
	RequiresVerification bool
	IsActive             bool
	CreatedAt            time.Time
}

// VolunteerSkill is a volunteer's claim on a skill. One row per
// (volunteer, skill) pair.
type VolunteerSkill struct {
	VolunteerID     VolunteerID
	SkillID         SkillID
	Status          VolunteerSkillStatus
	DocumentURL     string
	RejectionReason string
	ValidatedAt     *time.Time
	CreatedAt       time.Time
}

// ResolveClaimStatus applies the write-time rule for a skill claim:
// a skill that does not require verification is validated immediately;
// a skill that requires verification starts PENDING and cannot be
// validated without admin review of the supporting document.
func ResolveClaimStatus(skill *Skill) VolunteerSkillStatus {
	if !skill.RequiresVerification {
		return SkillValidated
	}
	return SkillPending
}
