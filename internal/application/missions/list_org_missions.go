package missions

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

type ListOrganizationMissionsInput struct {
	OrganizationID domain.OrganizationID
	Limit          int
	Offset         int
}

type ListOrganizationMissionsResult struct {
	Missions []*domain.Mission
}

// ListOrganizationMissions returns the organization's own missions, every
// status included.
type ListOrganizationMissions struct {
	missions ports.MissionRepository
}

func NewListOrganizationMissions(missions ports.MissionRepository) *ListOrganizationMissions {
	return &ListOrganizationMissions{missions: missions}
}

func (uc *ListOrganizationMissions) Execute(ctx context.Context, input ListOrganizationMissionsInput) (*ListOrganizationMissionsResult, error) {
	missions, err := uc.missions.ListByOrganization(ctx, input.OrganizationID, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}
	return &ListOrganizationMissionsResult{Missions: missions}, nil
}
