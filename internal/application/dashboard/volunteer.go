package dashboard

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type VolunteerDashboardInput struct {
	VolunteerID domain.VolunteerID
}

type VolunteerDashboardResult struct {
	Profile             *domain.Volunteer
	PendingApplications int
	AcceptedUpcoming    int
	UpcomingMissions    []*domain.Application
	RecentApplications  []*domain.Application
}

// VolunteerDashboard assembles the volunteer's home view: progression
// stats, pending application count, and upcoming accepted missions.
type VolunteerDashboard struct {
	volunteers   ports.VolunteerRepository
	applications ports.ApplicationRepository
}

func NewVolunteerDashboard(volunteers ports.VolunteerRepository, applications ports.ApplicationRepository) *VolunteerDashboard {
	return &VolunteerDashboard{volunteers: volunteers, applications: applications}
}

func (uc *VolunteerDashboard) Execute(ctx context.Context, input VolunteerDashboardInput) (*VolunteerDashboardResult, error) {
	profile, err := uc.volunteers.GetByID(ctx, input.VolunteerID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domerrors.ErrVolunteerNotFound
	}
	now := time.Now()
	pending, err := uc.applications.CountByVolunteer(ctx, input.VolunteerID, domain.ApplicationPending)
	if err != nil {
		return nil, err
	}
	accepted, err := uc.applications.CountUpcomingAccepted(ctx, input.VolunteerID, now)
	if err != nil {
		return nil, err
	}
	upcoming, err := uc.applications.ListUpcomingAccepted(ctx, input.VolunteerID, now, 3)
	if err != nil {
		return nil, err
	}
	recent, err := uc.applications.ListByVolunteer(ctx, input.VolunteerID, "", 5, 0)
	if err != nil {
		return nil, err
	}
	return &VolunteerDashboardResult{
		Profile:             profile,
		PendingApplications: pending,
		AcceptedUpcoming:    accepted,
		UpcomingMissions:    upcoming,
		RecentApplications:  recent,
	}, nil
}
