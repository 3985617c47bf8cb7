package hours

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

// Per-entry outcome of a validate-hours batch.
const (
	EntryValidated        = "validated"
	EntryNotFound         = "not_found"
	EntryAlreadyValidated = "already_validated"
)

type ValidateInput struct {
	MissionID      domain.MissionID
	OrganizationID domain.OrganizationID
	Entries        []ports.HoursValidation
}

type EntryResult struct {
	ParticipationID domain.ParticipationID
	Outcome         string
	HoursCredited   float64
}

type ValidateResult struct {
	Validated int
	Skipped   int
	Results   []EntryResult
}

// Validate records attendance and hours for a mission's participations,
// callable only once the mission's date has passed. Entries are resolved
// independently: a bad participation id skips that entry, never the batch.
// The hours_validated flag is checked-and-set atomically, with the hours
// credit in the same store transaction, so a repeated validation can never
// double-count and a consumed entry can never lose its credit.
type Validate struct {
	missions       ports.MissionRepository
	participations ports.ParticipationRepository
	volunteers     ports.VolunteerRepository
	users          ports.UserRepository
	tasks          ports.TaskEnqueuer
	log            zerolog.Logger
}

func NewValidate(missions ports.MissionRepository, participations ports.ParticipationRepository, volunteers ports.VolunteerRepository, users ports.UserRepository, tasks ports.TaskEnqueuer, log zerolog.Logger) *Validate {
	return &Validate{
		missions:       missions,
		participations: participations,
		volunteers:     volunteers,
		users:          users,
		tasks:          tasks,
		log:            log,
	}
}

func (uc *Validate) Execute(ctx context.Context, input ValidateInput) (*ValidateResult, error) {
	mission, err := uc.missions.GetForOrganization(ctx, input.MissionID, input.OrganizationID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, domerrors.ErrMissionNotFound
	}
	now := time.Now()
	if !missionEnded(mission.Date, now) {
		return nil, domerrors.ErrMissionNotEnded
	}

	result := &ValidateResult{Results: make([]EntryResult, 0, len(input.Entries))}
	for _, entry := range input.Entries {
		outcome, err := uc.participations.MarkValidated(ctx, input.MissionID, entry, now)
		switch {
		case errors.Is(err, domerrors.ErrParticipationNotFound):
			uc.log.Warn().
				Str("mission_id", input.MissionID.String()).
				Str("participation_id", entry.ParticipationID.String()).
				Msg("hours validation entry skipped: participation not found for mission")
			result.Skipped++
			result.Results = append(result.Results, EntryResult{ParticipationID: entry.ParticipationID, Outcome: EntryNotFound})
			continue
		case errors.Is(err, domerrors.ErrAlreadyValidated):
			uc.log.Info().
				Str("participation_id", entry.ParticipationID.String()).
				Msg("hours validation entry skipped: already validated")
			result.Skipped++
			result.Results = append(result.Results, EntryResult{ParticipationID: entry.ParticipationID, Outcome: EntryAlreadyValidated})
			continue
		case err != nil:
			return nil, err
		}

		// The store credited the hours atomically with the flag flip;
		// what remains is the derived badge tier and the notification.
		if outcome.Credited > 0 {
			badge := domain.BadgeForHours(outcome.NewTotal)
			if err := uc.volunteers.SetBadge(ctx, outcome.VolunteerID, badge); err != nil {
				return nil, err
			}
			uc.notify(ctx, outcome.VolunteerID, mission.Title, outcome.Credited)
		}
		result.Validated++
		result.Results = append(result.Results, EntryResult{
			ParticipationID: entry.ParticipationID,
			Outcome:         EntryValidated,
			HoursCredited:   outcome.Credited,
		})
	}
	return result, nil
}

func (uc *Validate) notify(ctx context.Context, volunteerID domain.VolunteerID, missionTitle string, hoursWorked float64) {
	volunteer, err := uc.volunteers.GetByID(ctx, volunteerID)
	if err != nil || volunteer == nil {
		return
	}
	user, err := uc.users.GetByID(ctx, volunteer.UserID)
	if err != nil || user == nil {
		return
	}
	_ = uc.tasks.EnqueueHoursValidated(ctx, user.Email, missionTitle, hoursWorked)
}

// missionEnded reports whether the mission date is strictly before today.
func missionEnded(missionDate, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	my, mm, md := missionDate.Date()
	day := time.Date(my, mm, md, 0, 0, 0, 0, now.Location())
	return day.Before(today)
}
