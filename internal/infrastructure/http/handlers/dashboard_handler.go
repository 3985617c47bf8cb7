package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/dashboard"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
)

type DashboardHandler struct {
	volunteer    *dashboard.VolunteerDashboard
	organization *dashboard.OrganizationDashboard
	stats        ports.StatsRepository
	log          zerolog.Logger
}

func NewDashboardHandler(volunteer *dashboard.VolunteerDashboard, organization *dashboard.OrganizationDashboard, stats ports.StatsRepository, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		volunteer:    volunteer,
		organization: organization,
		stats:        stats,
		log:          log,
	}
}

// Home serves the public landing-page counters. Anonymous.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Home(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("home stats failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_volunteers": stats.TotalVolunteers,
		"total_missions":   stats.TotalMissions,
		"total_hours":      stats.TotalHours,
	})
}

// Volunteer serves the authenticated volunteer's dashboard.
func (h *DashboardHandler) Volunteer(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	result, err := h.volunteer.Execute(r.Context(), dashboard.VolunteerDashboardInput{
		VolunteerID: principal.VolunteerID(),
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("volunteer dashboard failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}

	upcoming := make([]applicationView, 0, len(result.UpcomingMissions))
	for _, app := range result.UpcomingMissions {
		upcoming = append(upcoming, toApplicationView(app))
	}
	recent := make([]applicationView, 0, len(result.RecentApplications))
	for _, app := range result.RecentApplications {
		recent = append(recent, toApplicationView(app))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": map[string]interface{}{
			"id":                 result.Profile.ID.String(),
			"wilaya":             result.Profile.Wilaya,
			"commune":            result.Profile.Commune,
			"total_hours":        result.Profile.TotalHours,
			"completed_missions": result.Profile.CompletedMissions,
			"average_rating":     result.Profile.AverageRating,
			"badge_level":        result.Profile.BadgeLevel,
		},
		"pending_applications": result.PendingApplications,
		"accepted_upcoming":    result.AcceptedUpcoming,
		"upcoming_missions":    upcoming,
		"recent_applications":  recent,
	})
}

// Organization serves the authenticated organization's dashboard.
func (h *DashboardHandler) Organization(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	result, err := h.organization.Execute(r.Context(), dashboard.OrganizationDashboardInput{
		OrganizationID: principal.OrganizationID(),
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("organization dashboard failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}

	active := make([]missionView, 0, len(result.ActiveMissions))
	for _, m := range result.ActiveMissions {
		active = append(active, toMissionView(m))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": map[string]interface{}{
			"id":          result.Profile.ID.String(),
			"name":        result.Profile.Name,
			"type":        result.Profile.Type,
			"wilaya":      result.Profile.Wilaya,
			"is_verified": result.Profile.IsVerified,
		},
		"total_missions":       result.TotalMissions,
		"pending_applications": result.PendingApplications,
		"active_missions":      active,
	})
}
