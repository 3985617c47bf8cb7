package skills

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type ClaimSkillInput struct {
	VolunteerID domain.VolunteerID
	SkillID     domain.SkillID
	DocumentURL string
}

type ClaimSkillResult struct {
	Claim *domain.VolunteerSkill
}

// ClaimSkill records a volunteer's claim on a skill. The write-time rule
// applies: skills without verification are validated immediately, skills
// requiring verification stay PENDING until an admin reviews the
// supporting document.
type ClaimSkill struct {
	skills ports.SkillRepository
}

func NewClaimSkill(skills ports.SkillRepository) *ClaimSkill {
	return &ClaimSkill{skills: skills}
}

func (uc *ClaimSkill) Execute(ctx context.Context, input ClaimSkillInput) (*ClaimSkillResult, error) {
	skill, err := uc.skills.GetByID(ctx, input.SkillID)
	if err != nil {
		return nil, err
	}
	if skill == nil || !skill.IsActive {
		return nil, domerrors.ErrSkillNotFound
	}
	now := time.Now()
	claim := &domain.VolunteerSkill{
		VolunteerID: input.VolunteerID,
		SkillID:     input.SkillID,
		Status:      domain.ResolveClaimStatus(skill),
		DocumentURL: input.DocumentURL,
		CreatedAt:   now,
	}
	if claim.Status == domain.SkillValidated {
		claim.ValidatedAt = &now
	}
	if err := uc.skills.UpsertClaim(ctx, claim); err != nil {
		return nil, err
	}
	return &ClaimSkillResult{Claim: claim}, nil
}
