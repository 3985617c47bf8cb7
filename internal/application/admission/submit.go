package admission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type SubmitApplicationInput struct {
	VolunteerID domain.VolunteerID
	MissionID   domain.MissionID
	Message     string
}

type SubmitApplicationResult struct {
	Application *domain.Application
}

// SubmitApplication runs the admission pipeline for a volunteer applying
// to a mission. Preconditions are checked in a fixed order and the first
// failure wins: mission published, capacity, duplicate, verified-skill
// gate.
type SubmitApplication struct {
	missions     ports.MissionRepository
	applications ports.ApplicationRepository
	skills       ports.SkillRepository
	allowReapply bool
}

func NewSubmitApplication(missions ports.MissionRepository, applications ports.ApplicationRepository, skills ports.SkillRepository, allowReapply bool) *SubmitApplication {
	return &SubmitApplication{
		missions:     missions,
		applications: applications,
		skills:       skills,
		allowReapply: allowReapply,
	}
}

func (uc *SubmitApplication) Execute(ctx context.Context, input SubmitApplicationInput) (*SubmitApplicationResult, error) {
	mission, err := uc.missions.GetPublishedByID(ctx, input.MissionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, domerrors.ErrMissionNotFound
	}
	if mission.IsFull() {
		return nil, domerrors.ErrMissionFull
	}

	existing, err := uc.applications.FindByMissionAndVolunteer(ctx, input.MissionID, input.VolunteerID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !uc.canReapply(existing) {
		return nil, domerrors.ErrDuplicateApplication
	}

	hasRequiredSkills, err := uc.checkVerifiedSkills(ctx, input.MissionID, input.VolunteerID)
	if err != nil {
		return nil, err
	}
	if !hasRequiredSkills {
		return nil, domerrors.ErrSkillGap
	}

	now := time.Now()
	if existing != nil {
		// Re-application re-opens the existing row so the one-row-per-pair
		// invariant holds even with reapply enabled.
		if err := uc.applications.Reopen(ctx, existing.ID, input.Message, hasRequiredSkills, now); err != nil {
			return nil, err
		}
		_ = uc.missions.IncrementApplicationCount(ctx, input.MissionID)
		reopened, err := uc.applications.GetByID(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		return &SubmitApplicationResult{Application: reopened}, nil
	}

	app := &domain.Application{
		ID:                domain.NewApplicationID(uuid.New()),
		MissionID:         input.MissionID,
		VolunteerID:       input.VolunteerID,
		Status:            domain.ApplicationPending,
		Message:           input.Message,
		HasRequiredSkills: hasRequiredSkills,
		AppliedAt:         now,
	}
	// The store's unique constraint closes the race two concurrent
	// submissions would otherwise win together.
	if err := uc.applications.Create(ctx, app); err != nil {
		return nil, err
	}
	// Diagnostic counter; independent of the admission checks.
	_ = uc.missions.IncrementApplicationCount(ctx, input.MissionID)

	return &SubmitApplicationResult{Application: app}, nil
}

func (uc *SubmitApplication) canReapply(existing *domain.Application) bool {
	if !uc.allowReapply {
		return false
	}
	return existing.Status == domain.ApplicationRejected || existing.Status == domain.ApplicationCancelled
}

// checkVerifiedSkills applies the verified-skill gate: every mission
// requirement flagged verification_required must be covered by a VALIDATED
// claim. Requirements without the flag are advisory and never block
// admission.
func (uc *SubmitApplication) checkVerifiedSkills(ctx context.Context, missionID domain.MissionID, volunteerID domain.VolunteerID) (bool, error) {
	requirements, err := uc.missions.SkillRequirements(ctx, missionID)
	if err != nil {
		return false, err
	}
	validated, err := uc.skills.ValidatedSkillIDs(ctx, volunteerID)
	if err != nil {
		return false, err
	}
	held := make(map[domain.SkillID]bool, len(validated))
	for _, id := range validated {
		held[id] = true
	}
	for _, req := range requirements {
		if req.VerificationRequired && !held[req.SkillID] {
			return false, nil
		}
	}
	return true, nil
}
