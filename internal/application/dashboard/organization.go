package dashboard

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type OrganizationDashboardInput struct {
	OrganizationID domain.OrganizationID
}

type OrganizationDashboardResult struct {
	Profile             *domain.Organization
	TotalMissions       int
	PendingApplications int
	ActiveMissions      []*domain.Mission
}

// OrganizationDashboard assembles the organization's home view.
type OrganizationDashboard struct {
	organizations ports.OrganizationRepository
	missions      ports.MissionRepository
	applications  ports.ApplicationRepository
}

func NewOrganizationDashboard(organizations ports.OrganizationRepository, missions ports.MissionRepository, applications ports.ApplicationRepository) *OrganizationDashboard {
	return &OrganizationDashboard{
		organizations: organizations,
		missions:      missions,
		applications:  applications,
	}
}

func (uc *OrganizationDashboard) Execute(ctx context.Context, input OrganizationDashboardInput) (*OrganizationDashboardResult, error) {
	profile, err := uc.organizations.GetByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domerrors.ErrOrganizationNotFound
	}
	total, err := uc.missions.CountByOrganization(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	pending, err := uc.applications.CountPendingForOrganization(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	active, err := uc.missions.ListActiveByOrganization(ctx, input.OrganizationID, 5)
	if err != nil {
		return nil, err
	}
	return &OrganizationDashboardResult{
		Profile:             profile,
		TotalMissions:       total,
		PendingApplications: pending,
		ActiveMissions:      active,
	}, nil
}
