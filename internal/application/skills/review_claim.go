package skills

import (
	"context"
	"time"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type ReviewClaimInput struct {
	VolunteerID domain.VolunteerID
	SkillID     domain.SkillID
	Approve     bool
	Reason      string
}

// ReviewClaim resolves a PENDING skill claim. Admin only; the repository
// fails with ErrInvalidState when the claim is not PENDING. A claim on a
// verification-required skill cannot be approved without its supporting
// document, mirroring the write-time rule in ResolveClaimStatus.
type ReviewClaim struct {
	skills ports.SkillRepository
}

func NewReviewClaim(skills ports.SkillRepository) *ReviewClaim {
	return &ReviewClaim{skills: skills}
}

func (uc *ReviewClaim) Execute(ctx context.Context, input ReviewClaimInput) error {
	if input.Approve {
		if err := uc.checkDocument(ctx, input); err != nil {
			return err
		}
	}
	return uc.skills.ReviewClaim(ctx, input.VolunteerID, input.SkillID, input.Approve, input.Reason, time.Now())
}

func (uc *ReviewClaim) checkDocument(ctx context.Context, input ReviewClaimInput) error {
	skill, err := uc.skills.GetByID(ctx, input.SkillID)
	if err != nil {
		return err
	}
	if skill == nil {
		return domerrors.ErrSkillNotFound
	}
	if !skill.RequiresVerification {
		return nil
	}
	claims, err := uc.skills.ListClaims(ctx, input.VolunteerID)
	if err != nil {
		return err
	}
	for _, claim := range claims {
		if claim.SkillID == input.SkillID && claim.DocumentURL == "" {
			return domerrors.ErrDocumentRequired
		}
	}
	return nil
}
