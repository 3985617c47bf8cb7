package catalog

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

type ListMissionsInput struct {
	Filters ports.MissionFilters
}

type ListMissionsResult struct {
	Missions []*domain.Mission
}

// ListMissions returns the public catalog: PUBLISHED missions whose date
// has not passed, optionally filtered by wilaya, sustainability goal,
// skills, and open places. Anonymous.
type ListMissions struct {
	missions ports.MissionRepository
}

func NewListMissions(missions ports.MissionRepository) *ListMissions {
	return &ListMissions{missions: missions}
}

func (uc *ListMissions) Execute(ctx context.Context, input ListMissionsInput) (*ListMissionsResult, error) {
	missions, err := uc.missions.ListPublished(ctx, input.Filters)
	if err != nil {
		return nil, err
	}
	return &ListMissionsResult{Missions: missions}, nil
}
