package decision

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

// memApplications models the store's decision transitions, including the
// locked capacity re-check the postgres repository performs.
type memApplications struct {
	ports.ApplicationRepository
	mu             sync.Mutex
	mission        *domain.Mission
	apps           map[domain.ApplicationID]*domain.Application
	participations []*domain.Participation
}

func (m *memApplications) GetForOrganization(ctx context.Context, id domain.ApplicationID, orgID domain.OrganizationID) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok || m.mission.OrganizationID != orgID {
		return nil, nil
	}
	copied := *app
	return &copied, nil
}

func (m *memApplications) GetByID(ctx context.Context, id domain.ApplicationID) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	copied := *app
	return &copied, nil
}

func (m *memApplications) AcceptPending(ctx context.Context, id domain.ApplicationID, message string, now time.Time) (*domain.Participation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return nil, domerrors.ErrApplicationNotFound
	}
	if app.Status != domain.ApplicationPending {
		return nil, domerrors.ErrInvalidState
	}
	if m.mission.IsFull() {
		return nil, domerrors.ErrMissionFull
	}
	app.Status = domain.ApplicationAccepted
	app.OrganizationMessage = message
	app.RespondedAt = &now
	m.mission.AcceptedVolunteers++
	p := &domain.Participation{
		ID:            domain.NewParticipationID(uuid.New()),
		MissionID:     app.MissionID,
		VolunteerID:   app.VolunteerID,
		ApplicationID: app.ID,
		CreatedAt:     now,
	}
	m.participations = append(m.participations, p)
	return p, nil
}

func (m *memApplications) RejectPending(ctx context.Context, id domain.ApplicationID, message string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.apps[id]
	if !ok {
		return domerrors.ErrApplicationNotFound
	}
	if app.Status != domain.ApplicationPending {
		return domerrors.ErrInvalidState
	}
	app.Status = domain.ApplicationRejected
	app.OrganizationMessage = message
	app.RespondedAt = &now
	return nil
}

type stubVolunteers struct{ ports.VolunteerRepository }

func (stubVolunteers) GetByID(ctx context.Context, id domain.VolunteerID) (*domain.Volunteer, error) {
	return nil, nil
}

type stubMissionsRepo struct{ ports.MissionRepository }

func (stubMissionsRepo) GetByID(ctx context.Context, id domain.MissionID) (*domain.Mission, error) {
	return nil, nil
}

type noopTasks struct{}

func (noopTasks) EnqueueApplicationDecided(ctx context.Context, email, missionTitle, decision string) error {
	return nil
}
func (noopTasks) EnqueueHoursValidated(ctx context.Context, email, missionTitle string, hours float64) error {
	return nil
}

func newFixture(required, accepted, pendingApps int) (*memApplications, *Respond, []*domain.Application) {
	mission := &domain.Mission{
		ID:                 domain.NewMissionID(uuid.New()),
		OrganizationID:     domain.NewOrganizationID(uuid.New()),
		Status:             domain.MissionPublished,
		RequiredVolunteers: required,
		AcceptedVolunteers: accepted,
	}
	repo := &memApplications{mission: mission, apps: make(map[domain.ApplicationID]*domain.Application)}
	var apps []*domain.Application
	for i := 0; i < pendingApps; i++ {
		app := &domain.Application{
			ID:          domain.NewApplicationID(uuid.New()),
			MissionID:   mission.ID,
			VolunteerID: domain.NewVolunteerID(uuid.New()),
			Status:      domain.ApplicationPending,
		}
		repo.apps[app.ID] = app
		apps = append(apps, app)
	}
	uc := NewRespond(repo, stubMissionsRepo{}, stubVolunteers{}, nil, noopTasks{})
	return repo, uc, apps
}

func TestRespondReject(t *testing.T) {
	repo, uc, apps := newFixture(5, 0, 1)
	result, err := uc.Execute(context.Background(), RespondInput{
		ApplicationID:  apps[0].ID,
		OrganizationID: repo.mission.OrganizationID,
		Action:         ActionReject,
		Message:        "profile does not fit",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, result.Application.Status)
	assert.NotNil(t, result.Application.RespondedAt)
	assert.Nil(t, result.Participation)
	assert.Zero(t, repo.mission.AcceptedVolunteers)
	assert.Empty(t, repo.participations)
}

func TestRespondAccept(t *testing.T) {
	repo, uc, apps := newFixture(5, 0, 1)
	result, err := uc.Execute(context.Background(), RespondInput{
		ApplicationID:  apps[0].ID,
		OrganizationID: repo.mission.OrganizationID,
		Action:         ActionAccept,
		Message:        "welcome",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, result.Application.Status)
	require.NotNil(t, result.Participation)
	assert.Equal(t, apps[0].ID, result.Participation.ApplicationID)
	assert.False(t, result.Participation.WasPresent)
	assert.False(t, result.Participation.HoursValidated)
	assert.Equal(t, 1, repo.mission.AcceptedVolunteers)
}

func TestRespondAcceptFullMission(t *testing.T) {
	repo, uc, apps := newFixture(3, 3, 1)
	_, err := uc.Execute(context.Background(), RespondInput{
		ApplicationID:  apps[0].ID,
		OrganizationID: repo.mission.OrganizationID,
		Action:         ActionAccept,
	})
	assert.ErrorIs(t, err, domerrors.ErrMissionFull)
	// Aborted transition leaves the application PENDING.
	assert.Equal(t, domain.ApplicationPending, repo.apps[apps[0].ID].Status)
	assert.Equal(t, 3, repo.mission.AcceptedVolunteers)
}

func TestRespondTerminalApplication(t *testing.T) {
	repo, uc, apps := newFixture(5, 0, 1)
	repo.apps[apps[0].ID].Status = domain.ApplicationRejected
	_, err := uc.Execute(context.Background(), RespondInput{
		ApplicationID:  apps[0].ID,
		OrganizationID: repo.mission.OrganizationID,
		Action:         ActionAccept,
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidState)
}

func TestRespondInvalidAction(t *testing.T) {
	repo, uc, apps := newFixture(5, 0, 1)
	_, err := uc.Execute(context.Background(), RespondInput{
		ApplicationID:  apps[0].ID,
		OrganizationID: repo.mission.OrganizationID,
		Action:         "maybe",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidState)
	assert.Equal(t, domain.ApplicationPending, repo.apps[apps[0].ID].Status)
}

func TestRespondWrongOrganization(t *testing.T) {
	_, uc, apps := newFixture(5, 0, 1)
	_, err := uc.Execute(context.Background(), RespondInput{
		ApplicationID:  apps[0].ID,
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Action:         ActionAccept,
	})
	assert.ErrorIs(t, err, domerrors.ErrApplicationNotFound)
}

func TestRespondConcurrentAcceptsLastPlace(t *testing.T) {
	// Two pending applications race for the single remaining place:
	// exactly one accept succeeds, the other gets ErrMissionFull and its
	// application stays PENDING.
	repo, uc, apps := newFixture(1, 0, 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), RespondInput{
				ApplicationID:  apps[i].ID,
				OrganizationID: repo.mission.OrganizationID,
				Action:         ActionAccept,
			})
		}(i)
	}
	wg.Wait()

	var accepted, full int
	for i, err := range errs {
		switch {
		case err == nil:
			accepted++
			assert.Equal(t, domain.ApplicationAccepted, repo.apps[apps[i].ID].Status)
		case assert.ErrorIs(t, err, domerrors.ErrMissionFull):
			full++
			assert.Equal(t, domain.ApplicationPending, repo.apps[apps[i].ID].Status)
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 1, full)
	assert.Equal(t, 1, repo.mission.AcceptedVolunteers)
	assert.Len(t, repo.participations, 1)
}
