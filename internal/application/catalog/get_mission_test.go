package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type fakeCatalogMissions struct {
	ports.MissionRepository
	mission      *domain.Mission
	requirements []domain.SkillRequirement
	lastFilters  ports.MissionFilters
}

func (f *fakeCatalogMissions) GetPublishedByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error) {
	if f.mission != nil && f.mission.ID == id {
		return f.mission, nil
	}
	return nil, nil
}

func (f *fakeCatalogMissions) SkillRequirements(ctx context.Context, id domain.MissionID) ([]domain.SkillRequirement, error) {
	return f.requirements, nil
}

func (f *fakeCatalogMissions) ListPublished(ctx context.Context, filters ports.MissionFilters) ([]*domain.Mission, error) {
	f.lastFilters = filters
	if f.mission == nil {
		return nil, nil
	}
	return []*domain.Mission{f.mission}, nil
}

type countingViews struct {
	bumps map[domain.MissionID]int
}

func (c *countingViews) Bump(ctx context.Context, id domain.MissionID) {
	if c.bumps == nil {
		c.bumps = make(map[domain.MissionID]int)
	}
	c.bumps[id]++
}

func TestGetMissionBumpsViewCounter(t *testing.T) {
	mission := &domain.Mission{
		ID:     domain.NewMissionID(uuid.New()),
		Status: domain.MissionPublished,
		Title:  "Beach cleanup Oran",
	}
	repo := &fakeCatalogMissions{
		mission: mission,
		requirements: []domain.SkillRequirement{
			{SkillID: domain.NewSkillID(uuid.New()), VerificationRequired: true},
		},
	}
	views := &countingViews{}
	uc := NewGetMission(repo, views)

	res, err := uc.Execute(context.Background(), GetMissionInput{MissionID: mission.ID})
	require.NoError(t, err)

	assert.Equal(t, mission, res.Mission)
	assert.Len(t, res.Requirements, 1)
	assert.Equal(t, 1, views.bumps[mission.ID])
}

func TestGetMissionNotFound(t *testing.T) {
	uc := NewGetMission(&fakeCatalogMissions{}, &countingViews{})

	_, err := uc.Execute(context.Background(), GetMissionInput{MissionID: domain.NewMissionID(uuid.New())})
	assert.ErrorIs(t, err, domerrors.ErrMissionNotFound)
}

func TestListMissionsForwardsFilters(t *testing.T) {
	repo := &fakeCatalogMissions{mission: &domain.Mission{
		ID:     domain.NewMissionID(uuid.New()),
		Status: domain.MissionPublished,
	}}
	uc := NewListMissions(repo)

	filters := ports.MissionFilters{Wilaya: "Oran", SDG: 13, HasPlaces: true, Limit: 20}
	res, err := uc.Execute(context.Background(), ListMissionsInput{Filters: filters})
	require.NoError(t, err)

	assert.Len(t, res.Missions, 1)
	assert.Equal(t, filters, repo.lastFilters)
}
