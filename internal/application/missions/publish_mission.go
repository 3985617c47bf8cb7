package missions

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type PublishMissionInput struct {
	MissionID      domain.MissionID
	OrganizationID domain.OrganizationID
}

// PublishMission transitions the organization's DRAFT mission to
// PUBLISHED, making it visible in the public catalog.
type PublishMission struct {
	missions ports.MissionRepository
}

func NewPublishMission(missions ports.MissionRepository) *PublishMission {
	return &PublishMission{missions: missions}
}

func (uc *PublishMission) Execute(ctx context.Context, input PublishMissionInput) error {
	mission, err := uc.missions.GetForOrganization(ctx, input.MissionID, input.OrganizationID)
	if err != nil {
		return err
	}
	if mission == nil {
		return domerrors.ErrMissionNotFound
	}
	if mission.Status != domain.MissionDraft {
		return domerrors.ErrInvalidState
	}
	return uc.missions.Publish(ctx, input.MissionID, input.OrganizationID, time.Now())
}
