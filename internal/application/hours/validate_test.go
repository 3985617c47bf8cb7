package hours

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

type fakeMissions struct {
	ports.MissionRepository
	mission *domain.Mission
}

func (f *fakeMissions) GetForOrganization(ctx context.Context, id domain.MissionID, orgID domain.OrganizationID) (*domain.Mission, error) {
	if f.mission == nil || f.mission.ID != id || f.mission.OrganizationID != orgID {
		return nil, nil
	}
	return f.mission, nil
}

type participationRow struct {
	missionID   domain.MissionID
	volunteerID domain.VolunteerID
	validated   bool
}

type fakeParticipations struct {
	ports.ParticipationRepository
	rows   map[domain.ParticipationID]*participationRow
	totals map[domain.VolunteerID]float64
}

func (f *fakeParticipations) MarkValidated(ctx context.Context, missionID domain.MissionID, v ports.HoursValidation, now time.Time) (*ports.ValidationOutcome, error) {
	row, ok := f.rows[v.ParticipationID]
	if !ok || row.missionID != missionID {
		return nil, domerrors.ErrParticipationNotFound
	}
	if row.validated {
		return nil, domerrors.ErrAlreadyValidated
	}
	row.validated = true
	outcome := &ports.ValidationOutcome{VolunteerID: row.volunteerID}
	if v.WasPresent && v.Hours > 0 {
		f.totals[row.volunteerID] += v.Hours
		outcome.Credited = v.Hours
		outcome.NewTotal = f.totals[row.volunteerID]
	}
	return outcome, nil
}

type fakeVolunteers struct {
	ports.VolunteerRepository
	badges map[domain.VolunteerID]domain.BadgeLevel
}

func (f *fakeVolunteers) SetBadge(ctx context.Context, id domain.VolunteerID, badge domain.BadgeLevel) error {
	f.badges[id] = badge
	return nil
}

func (f *fakeVolunteers) GetByID(ctx context.Context, id domain.VolunteerID) (*domain.Volunteer, error) {
	return nil, nil
}

type noopTasks struct{}

func (noopTasks) EnqueueApplicationDecided(ctx context.Context, email, missionTitle, decision string) error {
	return nil
}
func (noopTasks) EnqueueHoursValidated(ctx context.Context, email, missionTitle string, hours float64) error {
	return nil
}

type fixture struct {
	missions       *fakeMissions
	participations *fakeParticipations
	volunteers     *fakeVolunteers
	uc             *Validate
}

func newFixture(missionDate time.Time) *fixture {
	missions := &fakeMissions{mission: &domain.Mission{
		ID:             domain.NewMissionID(uuid.New()),
		OrganizationID: domain.NewOrganizationID(uuid.New()),
		Status:         domain.MissionCompleted,
		Title:          "Beach cleanup",
		Date:           missionDate,
	}}
	participations := &fakeParticipations{
		rows:   make(map[domain.ParticipationID]*participationRow),
		totals: make(map[domain.VolunteerID]float64),
	}
	volunteers := &fakeVolunteers{badges: make(map[domain.VolunteerID]domain.BadgeLevel)}
	uc := NewValidate(missions, participations, volunteers, nil, noopTasks{}, zerolog.Nop())
	return &fixture{missions: missions, participations: participations, volunteers: volunteers, uc: uc}
}

func (f *fixture) addParticipation(startingHours float64) (domain.ParticipationID, domain.VolunteerID) {
	pid := domain.NewParticipationID(uuid.New())
	vid := domain.NewVolunteerID(uuid.New())
	f.participations.rows[pid] = &participationRow{missionID: f.missions.mission.ID, volunteerID: vid}
	f.participations.totals[vid] = startingHours
	return pid, vid
}

func yesterday() time.Time { return time.Now().AddDate(0, 0, -1) }

func TestValidateCreditsHoursAndPromotesToSilver(t *testing.T) {
	f := newFixture(yesterday())
	pid, vid := f.addParticipation(45)

	result, err := f.uc.Execute(context.Background(), ValidateInput{
		MissionID:      f.missions.mission.ID,
		OrganizationID: f.missions.mission.OrganizationID,
		Entries:        []ports.HoursValidation{{ParticipationID: pid, WasPresent: true, Hours: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Validated)
	assert.Zero(t, result.Skipped)
	require.Len(t, result.Results, 1)
	assert.Equal(t, EntryValidated, result.Results[0].Outcome)
	assert.Equal(t, 10.0, result.Results[0].HoursCredited)

	assert.Equal(t, 55.0, f.participations.totals[vid])
	assert.Equal(t, domain.BadgeSilver, f.volunteers.badges[vid])
}

func TestValidatePromotesToGold(t *testing.T) {
	f := newFixture(yesterday())
	pid, vid := f.addParticipation(195)

	_, err := f.uc.Execute(context.Background(), ValidateInput{
		MissionID:      f.missions.mission.ID,
		OrganizationID: f.missions.mission.OrganizationID,
		Entries:        []ports.HoursValidation{{ParticipationID: pid, WasPresent: true, Hours: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, 245.0, f.participations.totals[vid])
	assert.Equal(t, domain.BadgeGold, f.volunteers.badges[vid])
}

func TestValidateAbsentVolunteerCreditsNothing(t *testing.T) {
	f := newFixture(yesterday())
	pid, vid := f.addParticipation(45)

	result, err := f.uc.Execute(context.Background(), ValidateInput{
		MissionID:      f.missions.mission.ID,
		OrganizationID: f.missions.mission.OrganizationID,
		Entries:        []ports.HoursValidation{{ParticipationID: pid, WasPresent: false, Hours: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Validated)
	assert.Equal(t, 0.0, result.Results[0].HoursCredited)
	assert.Equal(t, 45.0, f.participations.totals[vid])
	// No credit, no recomputation.
	_, badged := f.volunteers.badges[vid]
	assert.False(t, badged)
	// The entry is still consumed: a second attempt is a no-op.
	assert.True(t, f.participations.rows[pid].validated)
}

func TestValidateSecondRunSkipsAlreadyValidated(t *testing.T) {
	f := newFixture(yesterday())
	pid, vid := f.addParticipation(45)
	input := ValidateInput{
		MissionID:      f.missions.mission.ID,
		OrganizationID: f.missions.mission.OrganizationID,
		Entries:        []ports.HoursValidation{{ParticipationID: pid, WasPresent: true, Hours: 10}},
	}

	_, err := f.uc.Execute(context.Background(), input)
	require.NoError(t, err)

	result, err := f.uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Zero(t, result.Validated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, EntryAlreadyValidated, result.Results[0].Outcome)
	// Hours are credited exactly once.
	assert.Equal(t, 55.0, f.participations.totals[vid])
}

func TestValidateSkipsParticipationFromAnotherMission(t *testing.T) {
	f := newFixture(yesterday())
	good, _ := f.addParticipation(0)
	stray := domain.NewParticipationID(uuid.New())
	f.participations.rows[stray] = &participationRow{
		missionID:   domain.NewMissionID(uuid.New()),
		volunteerID: domain.NewVolunteerID(uuid.New()),
	}

	result, err := f.uc.Execute(context.Background(), ValidateInput{
		MissionID:      f.missions.mission.ID,
		OrganizationID: f.missions.mission.OrganizationID,
		Entries: []ports.HoursValidation{
			{ParticipationID: stray, WasPresent: true, Hours: 8},
			{ParticipationID: good, WasPresent: true, Hours: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Validated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, EntryNotFound, result.Results[0].Outcome)
	assert.Equal(t, EntryValidated, result.Results[1].Outcome)
	assert.False(t, f.participations.rows[stray].validated)
}

func TestValidateMissionNotEnded(t *testing.T) {
	for name, date := range map[string]time.Time{
		"today":    time.Now(),
		"tomorrow": time.Now().AddDate(0, 0, 1),
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(date)
			pid, _ := f.addParticipation(0)
			_, err := f.uc.Execute(context.Background(), ValidateInput{
				MissionID:      f.missions.mission.ID,
				OrganizationID: f.missions.mission.OrganizationID,
				Entries:        []ports.HoursValidation{{ParticipationID: pid, WasPresent: true, Hours: 5}},
			})
			assert.ErrorIs(t, err, domerrors.ErrMissionNotEnded)
			assert.False(t, f.participations.rows[pid].validated)
		})
	}
}

func TestValidateUnknownMission(t *testing.T) {
	f := newFixture(yesterday())
	_, err := f.uc.Execute(context.Background(), ValidateInput{
		MissionID:      domain.NewMissionID(uuid.New()),
		OrganizationID: f.missions.mission.OrganizationID,
	})
	assert.ErrorIs(t, err, domerrors.ErrMissionNotFound)
}
