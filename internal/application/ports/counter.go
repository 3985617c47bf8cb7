package ports

import (
	"context"

	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
)

// ViewCounter bumps a mission's detail-view counter. The counter is
// diagnostic: increments are not atomic with any other field and lost
// updates under concurrent reads are tolerated.
type ViewCounter interface {
	Bump(ctx context.Context, id domain.MissionID)
}
