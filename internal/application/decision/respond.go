package decision

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

// Decision action tokens accepted on the wire.
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

type RespondInput struct {
	ApplicationID  domain.ApplicationID
	OrganizationID domain.OrganizationID
	Action         string
	Message        string
}

type RespondResult struct {
	Application   *domain.Application
	Participation *domain.Participation
}

// Respond applies the organization's accept/reject decision to a PENDING
// application. Accept re-checks capacity at decision time inside a
// row-locked transaction; on MISSION_FULL the application stays PENDING.
type Respond struct {
	applications ports.ApplicationRepository
	missions     ports.MissionRepository
	volunteers   ports.VolunteerRepository
	users        ports.UserRepository
	tasks        ports.TaskEnqueuer
}

func NewRespond(applications ports.ApplicationRepository, missions ports.MissionRepository, volunteers ports.VolunteerRepository, users ports.UserRepository, tasks ports.TaskEnqueuer) *Respond {
	return &Respond{
		applications: applications,
		missions:     missions,
		volunteers:   volunteers,
		users:        users,
		tasks:        tasks,
	}
}

func (uc *Respond) Execute(ctx context.Context, input RespondInput) (*RespondResult, error) {
	app, err := uc.applications.GetForOrganization(ctx, input.ApplicationID, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domerrors.ErrApplicationNotFound
	}
	if app.Status.Terminal() {
		return nil, domerrors.ErrInvalidState
	}

	now := time.Now()
	var participation *domain.Participation
	switch input.Action {
	case ActionAccept:
		participation, err = uc.applications.AcceptPending(ctx, app.ID, input.Message, now)
		if err != nil {
			return nil, err
		}
	case ActionReject:
		if err := uc.applications.RejectPending(ctx, app.ID, input.Message, now); err != nil {
			return nil, err
		}
	default:
		return nil, domerrors.ErrInvalidState
	}

	updated, err := uc.applications.GetByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, app, input.Action)

	return &RespondResult{Application: updated, Participation: participation}, nil
}

// notify enqueues the decision email. Best effort: a notification failure
// never rolls back a decision.
func (uc *Respond) notify(ctx context.Context, app *domain.Application, action string) {
	volunteer, err := uc.volunteers.GetByID(ctx, app.VolunteerID)
	if err != nil || volunteer == nil {
		return
	}
	user, err := uc.users.GetByID(ctx, volunteer.UserID)
	if err != nil || user == nil {
		return
	}
	title := ""
	if mission, err := uc.missions.GetByID(ctx, app.MissionID); err == nil && mission != nil {
		title = mission.Title
	}
	_ = uc.tasks.EnqueueApplicationDecided(ctx, user.Email, title, action)
}
