package missions

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type ListApplicationsInput struct {
	MissionID      domain.MissionID
	OrganizationID domain.OrganizationID
	Status         domain.ApplicationStatus
	Limit          int
	Offset         int
}

type ListApplicationsResult struct {
	Applications []*domain.Application
}

// ListApplications returns the applications filed for one of the
// organization's missions.
type ListApplications struct {
	missions     ports.MissionRepository
	applications ports.ApplicationRepository
}

func NewListApplications(missions ports.MissionRepository, applications ports.ApplicationRepository) *ListApplications {
	return &ListApplications{missions: missions, applications: applications}
}

func (uc *ListApplications) Execute(ctx context.Context, input ListApplicationsInput) (*ListApplicationsResult, error) {
	mission, err := uc.missions.GetForOrganization(ctx, input.MissionID, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, domerrors.ErrMissionNotFound
	}
	apps, err := uc.applications.ListByMission(ctx, input.MissionID, input.Status, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}
	return &ListApplicationsResult{Applications: apps}, nil
}
