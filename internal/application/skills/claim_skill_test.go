package skills

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type fakeSkillRepo struct {
	ports.SkillRepository
	skill    *domain.Skill
	claims   []*domain.VolunteerSkill
	upserted *domain.VolunteerSkill
	reviewed struct {
		called  bool
		approve bool
		reason  string
	}
}

func (f *fakeSkillRepo) GetByID(ctx context.Context, id domain.SkillID) (*domain.Skill, error) {
	if f.skill != nil && f.skill.ID == id {
		return f.skill, nil
	}
	return nil, nil
}

func (f *fakeSkillRepo) UpsertClaim(ctx context.Context, claim *domain.VolunteerSkill) error {
	f.upserted = claim
	return nil
}

func (f *fakeSkillRepo) ListClaims(ctx context.Context, volunteerID domain.VolunteerID) ([]*domain.VolunteerSkill, error) {
	var claims []*domain.VolunteerSkill
	for _, c := range f.claims {
		if c.VolunteerID == volunteerID {
			claims = append(claims, c)
		}
	}
	return claims, nil
}

func (f *fakeSkillRepo) ReviewClaim(ctx context.Context, volunteerID domain.VolunteerID, skillID domain.SkillID, approve bool, reason string, now time.Time) error {
	f.reviewed.called = true
	f.reviewed.approve = approve
	f.reviewed.reason = reason
	return nil
}

func TestClaimSkillAutoValidatesWithoutVerification(t *testing.T) {
	repo := &fakeSkillRepo{skill: &domain.Skill{
		ID:       domain.NewSkillID(uuid.New()),
		Name:     "First aid awareness",
		IsActive: true,
	}}
	uc := NewClaimSkill(repo)

	res, err := uc.Execute(context.Background(), ClaimSkillInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		SkillID:     repo.skill.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SkillValidated, res.Claim.Status)
	require.NotNil(t, res.Claim.ValidatedAt)
	assert.Same(t, res.Claim, repo.upserted)
}

func TestClaimSkillStaysPendingWhenVerificationRequired(t *testing.T) {
	repo := &fakeSkillRepo{skill: &domain.Skill{
		ID:                   domain.NewSkillID(uuid.New()),
		Name:                 "Certified lifeguard",
		RequiresVerification: true,
		IsActive:             true,
	}}
	uc := NewClaimSkill(repo)

	res, err := uc.Execute(context.Background(), ClaimSkillInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		SkillID:     repo.skill.ID,
		DocumentURL: "https://cdn.example.dz/certs/lifeguard.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SkillPending, res.Claim.Status)
	assert.Nil(t, res.Claim.ValidatedAt)
	assert.Equal(t, "https://cdn.example.dz/certs/lifeguard.pdf", res.Claim.DocumentURL)
}

func TestClaimSkillUnknownOrInactive(t *testing.T) {
	inactive := &domain.Skill{ID: domain.NewSkillID(uuid.New()), IsActive: false}
	uc := NewClaimSkill(&fakeSkillRepo{skill: inactive})

	_, err := uc.Execute(context.Background(), ClaimSkillInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		SkillID:     inactive.ID,
	})
	assert.ErrorIs(t, err, domerrors.ErrSkillNotFound)

	_, err = uc.Execute(context.Background(), ClaimSkillInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		SkillID:     domain.NewSkillID(uuid.New()),
	})
	assert.ErrorIs(t, err, domerrors.ErrSkillNotFound)
}

func TestReviewClaimRefusesDocumentlessApproval(t *testing.T) {
	volunteerID := domain.NewVolunteerID(uuid.New())
	repo := &fakeSkillRepo{skill: &domain.Skill{
		ID:                   domain.NewSkillID(uuid.New()),
		Name:                 "Certified lifeguard",
		RequiresVerification: true,
		IsActive:             true,
	}}
	repo.claims = []*domain.VolunteerSkill{{
		VolunteerID: volunteerID,
		SkillID:     repo.skill.ID,
		Status:      domain.SkillPending,
	}}
	uc := NewReviewClaim(repo)

	err := uc.Execute(context.Background(), ReviewClaimInput{
		VolunteerID: volunteerID,
		SkillID:     repo.skill.ID,
		Approve:     true,
	})
	assert.ErrorIs(t, err, domerrors.ErrDocumentRequired)
	// The claim must stay PENDING: nothing reached the store.
	assert.False(t, repo.reviewed.called)
}

func TestReviewClaimApprovesWithDocument(t *testing.T) {
	volunteerID := domain.NewVolunteerID(uuid.New())
	repo := &fakeSkillRepo{skill: &domain.Skill{
		ID:                   domain.NewSkillID(uuid.New()),
		RequiresVerification: true,
		IsActive:             true,
	}}
	repo.claims = []*domain.VolunteerSkill{{
		VolunteerID: volunteerID,
		SkillID:     repo.skill.ID,
		Status:      domain.SkillPending,
		DocumentURL: "https://cdn.example.dz/certs/lifeguard.pdf",
	}}
	uc := NewReviewClaim(repo)

	err := uc.Execute(context.Background(), ReviewClaimInput{
		VolunteerID: volunteerID,
		SkillID:     repo.skill.ID,
		Approve:     true,
	})
	require.NoError(t, err)
	assert.True(t, repo.reviewed.called)
	assert.True(t, repo.reviewed.approve)
}

func TestReviewClaimForwardsDecision(t *testing.T) {
	repo := &fakeSkillRepo{}
	uc := NewReviewClaim(repo)

	err := uc.Execute(context.Background(), ReviewClaimInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		SkillID:     domain.NewSkillID(uuid.New()),
		Approve:     false,
		Reason:      "document unreadable",
	})
	require.NoError(t, err)
	assert.True(t, repo.reviewed.called)
	assert.False(t, repo.reviewed.approve)
	assert.Equal(t, "document unreadable", repo.reviewed.reason)
}
