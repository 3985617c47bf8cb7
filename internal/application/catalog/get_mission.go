package catalog

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type GetMissionInput struct {
	MissionID domain.MissionID
}

type GetMissionResult struct {
	Mission      *domain.Mission
	Requirements []domain.SkillRequirement
}

// GetMission returns a published mission's detail view and bumps its view
// counter as a side effect. The counter is diagnostic and deliberately not
// atomic with the read.
type GetMission struct {
	missions ports.MissionRepository
	views    ports.ViewCounter
}

func NewGetMission(missions ports.MissionRepository, views ports.ViewCounter) *GetMission {
	return &GetMission{missions: missions, views: views}
}

func (uc *GetMission) Execute(ctx context.Context, input GetMissionInput) (*GetMissionResult, error) {
	mission, err := uc.missions.GetPublishedByID(ctx, input.MissionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, domerrors.ErrMissionNotFound
	}
	requirements, err := uc.missions.SkillRequirements(ctx, input.MissionID)
	if err != nil {
		return nil, err
	}
	uc.views.Bump(ctx, mission.ID)
	return &GetMissionResult{Mission: mission, Requirements: requirements}, nil
}
