package admission

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type CancelApplicationInput struct {
	ApplicationID domain.ApplicationID
	VolunteerID   domain.VolunteerID
}

// CancelApplication lets a volunteer withdraw their own PENDING
// application. CANCELLED is terminal.
type CancelApplication struct {
	applications ports.ApplicationRepository
}

func NewCancelApplication(applications ports.ApplicationRepository) *CancelApplication {
	return &CancelApplication{applications: applications}
}

func (uc *CancelApplication) Execute(ctx context.Context, input CancelApplicationInput) error {
	app, err := uc.applications.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return err
	}
	if app == nil || app.VolunteerID != input.VolunteerID {
		return domerrors.ErrApplicationNotFound
	}
	if app.Status.Terminal() {
		return domerrors.ErrInvalidState
	}
	return uc.applications.CancelPending(ctx, input.ApplicationID, input.VolunteerID, time.Now())
}
