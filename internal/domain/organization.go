package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationType classifies an organization.
type OrganizationType string

const (
	OrgTypeAssociation OrganizationType = "ASSOCIATION"
	OrgTypeNGO         OrganizationType = "NGO"
	OrgTypeInitiative  OrganizationType = "INITIATIVE"
	OrgTypeOther       OrganizationType = "OTHER"
)

// OrganizationID is a value object for organization profile identity.
type OrganizationID struct{ uuid.UUID }

// NewOrganizationID creates a new OrganizationID from uuid.
func NewOrganizationID(id uuid.UUID) OrganizationID { return OrganizationID{UUID: id} }

// String returns the canonical string form.
func (o OrganizationID) String() string { return o.UUID.String() }

// Organization is the organization profile attached 1:1 to a user.
// The rolling aggregates are informational and are not recomputed by the
// mission workflow.
type Organization struct {
	ID              OrganizationID
	UserID          UserID
	Name            string
	Type            OrganizationType
	Wilaya          string
	Description     string
	IsVerified      bool
	TotalMissions   int
	TotalVolunteers int
	AverageRating   float64
	CreatedAt       time.Time
}
