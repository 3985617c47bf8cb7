package admission

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

type fakeMissions struct {
	ports.MissionRepository
	mission      *domain.Mission
	requirements []domain.SkillRequirement
	counterBumps int
}

func (f *fakeMissions) GetPublishedByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error) {
	if f.mission == nil || f.mission.ID != id || f.mission.Status != domain.MissionPublished {
		return nil, nil
	}
	return f.mission, nil
}

func (f *fakeMissions) SkillRequirements(ctx context.Context, id domain.MissionID) ([]domain.SkillRequirement, error) {
	return f.requirements, nil
}

func (f *fakeMissions) IncrementApplicationCount(ctx context.Context, id domain.MissionID) error {
	f.counterBumps++
	return nil
}

type fakeApplications struct {
	ports.ApplicationRepository
	existing *domain.Application
	created  []*domain.Application
	reopened bool
}

func (f *fakeApplications) FindByMissionAndVolunteer(ctx context.Context, missionID domain.MissionID, volunteerID domain.VolunteerID) (*domain.Application, error) {
	if f.existing != nil && f.existing.MissionID == missionID && f.existing.VolunteerID == volunteerID {
		return f.existing, nil
	}
	return nil, nil
}

func (f *fakeApplications) Create(ctx context.Context, app *domain.Application) error {
	if f.existing != nil && f.existing.MissionID == app.MissionID && f.existing.VolunteerID == app.VolunteerID {
		return domerrors.ErrDuplicateApplication
	}
	f.created = append(f.created, app)
	return nil
}

func (f *fakeApplications) Reopen(ctx context.Context, id domain.ApplicationID, message string, hasRequiredSkills bool, now time.Time) error {
	f.reopened = true
	f.existing.Status = domain.ApplicationPending
	f.existing.Message = message
	f.existing.HasRequiredSkills = hasRequiredSkills
	return nil
}

func (f *fakeApplications) GetByID(ctx context.Context, id domain.ApplicationID) (*domain.Application, error) {
	if f.existing != nil && f.existing.ID == id {
		return f.existing, nil
	}
	return nil, nil
}

type fakeSkills struct {
	ports.SkillRepository
	validated []domain.SkillID
}

func (f *fakeSkills) ValidatedSkillIDs(ctx context.Context, volunteerID domain.VolunteerID) ([]domain.SkillID, error) {
	return f.validated, nil
}

func publishedMission(required, accepted int) *domain.Mission {
	return &domain.Mission{
		ID:                 domain.NewMissionID(uuid.New()),
		OrganizationID:     domain.NewOrganizationID(uuid.New()),
		Title:              "Beach cleanup",
		Status:             domain.MissionPublished,
		RequiredVolunteers: required,
		AcceptedVolunteers: accepted,
		Date:               time.Now().AddDate(0, 0, 7),
	}
}

func TestSubmitApplicationSuccess(t *testing.T) {
	mission := publishedMission(10, 3)
	missions := &fakeMissions{mission: mission}
	apps := &fakeApplications{}
	volunteerID := domain.NewVolunteerID(uuid.New())

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
	result, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: volunteerID,
		MissionID:   mission.ID,
		Message:     "I want to help",
	})
	require.NoError(t, err)
	require.Len(t, apps.created, 1)
	app := result.Application
	assert.Equal(t, domain.ApplicationPending, app.Status)
	assert.Equal(t, volunteerID, app.VolunteerID)
	assert.True(t, app.HasRequiredSkills)
	assert.Equal(t, 1, missions.counterBumps)
}

func TestSubmitApplicationMissionNotPublished(t *testing.T) {
	mission := publishedMission(10, 0)
	mission.Status = domain.MissionDraft
	missions := &fakeMissions{mission: mission}
	apps := &fakeApplications{}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
	_, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		MissionID:   mission.ID,
	})
	assert.ErrorIs(t, err, domerrors.ErrMissionNotFound)
	assert.Empty(t, apps.created)
}

func TestSubmitApplicationFullMission(t *testing.T) {
	// Capacity is checked before anything else can succeed: no application
	// row may be created for a full mission.
	mission := publishedMission(10, 10)
	missions := &fakeMissions{mission: mission}
	apps := &fakeApplications{}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
	_, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		MissionID:   mission.ID,
	})
	assert.ErrorIs(t, err, domerrors.ErrMissionFull)
	assert.Empty(t, apps.created)
	assert.Zero(t, missions.counterBumps)
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	mission := publishedMission(10, 0)
	volunteerID := domain.NewVolunteerID(uuid.New())
	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationPending,
		domain.ApplicationAccepted,
		domain.ApplicationRejected,
		domain.ApplicationCancelled,
	} {
		missions := &fakeMissions{mission: mission}
		apps := &fakeApplications{existing: &domain.Application{
			ID:          domain.NewApplicationID(uuid.New()),
			MissionID:   mission.ID,
			VolunteerID: volunteerID,
			Status:      status,
		}}
		uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
		_, err := uc.Execute(context.Background(), SubmitApplicationInput{
			VolunteerID: volunteerID,
			MissionID:   mission.ID,
		})
		assert.ErrorIs(t, err, domerrors.ErrDuplicateApplication, "status %s", status)
		assert.Empty(t, apps.created)
	}
}

func TestSubmitApplicationCapacityCheckedBeforeDuplicate(t *testing.T) {
	mission := publishedMission(5, 5)
	volunteerID := domain.NewVolunteerID(uuid.New())
	missions := &fakeMissions{mission: mission}
	apps := &fakeApplications{existing: &domain.Application{
		ID:          domain.NewApplicationID(uuid.New()),
		MissionID:   mission.ID,
		VolunteerID: volunteerID,
		Status:      domain.ApplicationPending,
	}}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
	_, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: volunteerID,
		MissionID:   mission.ID,
	})
	// First precondition failure wins.
	assert.ErrorIs(t, err, domerrors.ErrMissionFull)
}

func TestSubmitApplicationSkillGap(t *testing.T) {
	mission := publishedMission(10, 0)
	requiredSkill := domain.NewSkillID(uuid.New())
	missions := &fakeMissions{
		mission: mission,
		requirements: []domain.SkillRequirement{
			{MissionID: mission.ID, SkillID: requiredSkill, VerificationRequired: true},
		},
	}
	apps := &fakeApplications{}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
	_, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		MissionID:   mission.ID,
	})
	assert.ErrorIs(t, err, domerrors.ErrSkillGap)
	assert.Empty(t, apps.created)
}

func TestSubmitApplicationAdvisorySkillDoesNotGate(t *testing.T) {
	mission := publishedMission(10, 0)
	advisory := domain.NewSkillID(uuid.New())
	missions := &fakeMissions{
		mission: mission,
		requirements: []domain.SkillRequirement{
			{MissionID: mission.ID, SkillID: advisory, VerificationRequired: false},
		},
	}
	apps := &fakeApplications{}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, false)
	result, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		MissionID:   mission.ID,
	})
	require.NoError(t, err)
	assert.True(t, result.Application.HasRequiredSkills)
}

func TestSubmitApplicationVerifiedSkillHeld(t *testing.T) {
	mission := publishedMission(10, 0)
	requiredSkill := domain.NewSkillID(uuid.New())
	missions := &fakeMissions{
		mission: mission,
		requirements: []domain.SkillRequirement{
			{MissionID: mission.ID, SkillID: requiredSkill, VerificationRequired: true},
		},
	}
	apps := &fakeApplications{}
	skills := &fakeSkills{validated: []domain.SkillID{requiredSkill}}

	uc := NewSubmitApplication(missions, apps, skills, false)
	_, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: domain.NewVolunteerID(uuid.New()),
		MissionID:   mission.ID,
	})
	require.NoError(t, err)
	require.Len(t, apps.created, 1)
}

func TestSubmitApplicationReapplyEnabled(t *testing.T) {
	mission := publishedMission(10, 0)
	volunteerID := domain.NewVolunteerID(uuid.New())
	existing := &domain.Application{
		ID:          domain.NewApplicationID(uuid.New()),
		MissionID:   mission.ID,
		VolunteerID: volunteerID,
		Status:      domain.ApplicationRejected,
	}
	missions := &fakeMissions{mission: mission}
	apps := &fakeApplications{existing: existing}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, true)
	result, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: volunteerID,
		MissionID:   mission.ID,
		Message:     "second try",
	})
	require.NoError(t, err)
	assert.True(t, apps.reopened)
	// The original row is re-opened rather than a second row created.
	assert.Empty(t, apps.created)
	assert.Equal(t, existing.ID, result.Application.ID)
	assert.Equal(t, domain.ApplicationPending, result.Application.Status)
	// Re-opening counts as a new application for the mission's counter.
	assert.Equal(t, 1, missions.counterBumps)
}

func TestSubmitApplicationReapplyNotForPending(t *testing.T) {
	mission := publishedMission(10, 0)
	volunteerID := domain.NewVolunteerID(uuid.New())
	missions := &fakeMissions{mission: mission}
	apps := &fakeApplications{existing: &domain.Application{
		ID:          domain.NewApplicationID(uuid.New()),
		MissionID:   mission.ID,
		VolunteerID: volunteerID,
		Status:      domain.ApplicationPending,
	}}

	uc := NewSubmitApplication(missions, apps, &fakeSkills{}, true)
	_, err := uc.Execute(context.Background(), SubmitApplicationInput{
		VolunteerID: volunteerID,
		MissionID:   mission.ID,
	})
	assert.ErrorIs(t, err, domerrors.ErrDuplicateApplication)
}
