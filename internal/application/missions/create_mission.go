package missions

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

// SkillRequirementInput names one required skill for a new mission.
type SkillRequirementInput struct {
	SkillID              domain.SkillID
	VerificationRequired bool
}

type CreateMissionInput struct {
	OrganizationID     domain.OrganizationID
	Title              string
	ShortDescription   string
	FullDescription    string
	SDG                int
	Date               time.Time
	StartTime          string
	EndTime            string
	Wilaya             string
	Commune            string
	Address            string
	RequiredVolunteers int
	Requirements       []SkillRequirementInput
}

type CreateMissionResult struct {
	Mission *domain.Mission
}

// CreateMission creates a DRAFT mission for the organization. Missions
// become visible to volunteers only after publication.
type CreateMission struct {
	missions ports.MissionRepository
}

func NewCreateMission(missions ports.MissionRepository) *CreateMission {
	return &CreateMission{missions: missions}
}

func (uc *CreateMission) Execute(ctx context.Context, input CreateMissionInput) (*CreateMissionResult, error) {
	mission := &domain.Mission{
		ID:                 domain.NewMissionID(uuid.New()),
		OrganizationID:     input.OrganizationID,
		Title:              input.Title,
		ShortDescription:   input.ShortDescription,
		FullDescription:    input.FullDescription,
		SDG:                input.SDG,
		Date:               input.Date,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		Wilaya:             input.Wilaya,
		Commune:            input.Commune,
		Address:            input.Address,
		RequiredVolunteers: input.RequiredVolunteers,
		Status:             domain.MissionDraft,
		CreatedAt:          time.Now(),
	}
	requirements := make([]domain.SkillRequirement, 0, len(input.Requirements))
	for _, req := range input.Requirements {
		requirements = append(requirements, domain.SkillRequirement{
			MissionID:            mission.ID,
			SkillID:              req.SkillID,
			VerificationRequired: req.VerificationRequired,
		})
	}
	if err := uc.missions.Create(ctx, mission, requirements); err != nil {
		return nil, err
	}
	return &CreateMissionResult{Mission: mission}, nil
}
