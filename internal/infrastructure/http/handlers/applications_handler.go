package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/admission"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/decision"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
)

type ApplicationsHandler struct {
	submit         *admission.SubmitApplication
	cancel         *admission.CancelApplication
	respond        *decision.Respond
	applications   ports.ApplicationRepository
	participations ports.ParticipationRepository
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewApplicationsHandler(
	submit *admission.SubmitApplication,
	cancel *admission.CancelApplication,
	respond *decision.Respond,
	applications ports.ApplicationRepository,
	participations ports.ParticipationRepository,
	log zerolog.Logger,
) *ApplicationsHandler {
	return &ApplicationsHandler{
		submit:         submit,
		cancel:         cancel,
		respond:        respond,
		applications:   applications,
		participations: participations,
		validate:       validator.New(),
		log:            log,
	}
}

type applicationView struct {
	ID                  string     `json:"id"`
	MissionID           string     `json:"mission_id"`
	VolunteerID         string     `json:"volunteer_id"`
	Status              string     `json:"status"`
	Message             string     `json:"message,omitempty"`
	OrganizationMessage string     `json:"organization_message,omitempty"`
	HasRequiredSkills   bool       `json:"has_required_skills"`
	AppliedAt           time.Time  `json:"applied_at"`
	RespondedAt         *time.Time `json:"responded_at,omitempty"`
}

func toApplicationView(app *domain.Application) applicationView {
	return applicationView{
		ID:                  app.ID.String(),
		MissionID:           app.MissionID.String(),
		VolunteerID:         app.VolunteerID.String(),
		Status:              string(app.Status),
		Message:             app.Message,
		OrganizationMessage: app.OrganizationMessage,
		HasRequiredSkills:   app.HasRequiredSkills,
		AppliedAt:           app.AppliedAt,
		RespondedAt:         app.RespondedAt,
	}
}

type participationView struct {
	ID             string     `json:"id"`
	MissionID      string     `json:"mission_id"`
	ApplicationID  string     `json:"application_id"`
	WasPresent     bool       `json:"was_present"`
	HoursCompleted float64    `json:"hours_completed"`
	HoursValidated bool       `json:"hours_validated"`
	ValidatedAt    *time.Time `json:"validated_at,omitempty"`
	Rating         *int       `json:"rating,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Apply runs the admission pipeline for the authenticated volunteer.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid mission id")
		return
	}
	var body struct {
		Message string `json:"message" validate:"max=2000"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid body")
			return
		}
		if err := h.validate.Struct(&body); err != nil {
			writeErr(w, http.StatusBadRequest, "", err.Error())
			return
		}
	}

	result, err := h.submit.Execute(r.Context(), admission.SubmitApplicationInput{
		VolunteerID: principal.VolunteerID(),
		MissionID:   domain.NewMissionID(id),
		Message:     TruncateMessage(body.Message),
	})
	if err != nil {
		status, code := mapDomainError(err)
		middleware.RecordApplication(code)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("submit application failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	middleware.RecordApplication("submitted")
	AuditLog(h.log, r, "application.submit", principal.UserID.String(), true, "")
	writeJSON(w, http.StatusCreated, map[string]interface{}{"application": toApplicationView(result.Application)})
}

// Cancel withdraws the volunteer's own PENDING application.
func (h *ApplicationsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid application id")
		return
	}
	err := h.cancel.Execute(r.Context(), admission.CancelApplicationInput{
		ApplicationID: domain.NewApplicationID(id),
		VolunteerID:   principal.VolunteerID(),
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("cancel application failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	AuditLog(h.log, r, "application.cancel", principal.UserID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.ApplicationCancelled)})
}

// Respond applies the organization's accept/reject decision.
func (h *ApplicationsHandler) Respond(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid application id")
		return
	}
	var body struct {
		Action  string `json:"action" validate:"required,oneof=accept reject"`
		Message string `json:"message" validate:"max=2000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}

	result, err := h.respond.Execute(r.Context(), decision.RespondInput{
		ApplicationID:  domain.NewApplicationID(id),
		OrganizationID: principal.OrganizationID(),
		Action:         body.Action,
		Message:        TruncateMessage(body.Message),
	})
	if err != nil {
		status, code := mapDomainError(err)
		middleware.RecordDecision(body.Action, code)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("respond to application failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	middleware.RecordDecision(body.Action, "ok")
	AuditLog(h.log, r, "application."+body.Action, principal.UserID.String(), true, "")

	response := map[string]interface{}{"application": toApplicationView(result.Application)}
	if result.Participation != nil {
		response["participation"] = participationView{
			ID:             result.Participation.ID.String(),
			MissionID:      result.Participation.MissionID.String(),
			ApplicationID:  result.Participation.ApplicationID.String(),
			CreatedAt:      result.Participation.CreatedAt,
			HoursCompleted: result.Participation.HoursCompleted,
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// MyApplications returns the volunteer's applications, optionally filtered
// by status.
func (h *ApplicationsHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	apps, err := h.applications.ListByVolunteer(r.Context(), principal.VolunteerID(),
		domain.ApplicationStatus(r.URL.Query().Get("status")), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list my applications failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]applicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, toApplicationView(app))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"applications": views})
}

// MyMissions returns the volunteer's upcoming accepted missions.
func (h *ApplicationsHandler) MyMissions(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}

	apps, err := h.applications.ListUpcomingAccepted(r.Context(), principal.VolunteerID(), time.Now(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("list upcoming missions failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]applicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, toApplicationView(app))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"upcoming": views})
}

// MyParticipations returns the volunteer's participation history.
func (h *ApplicationsHandler) MyParticipations(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	participations, err := h.participations.ListByVolunteer(r.Context(), principal.VolunteerID(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list my participations failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]participationView, 0, len(participations))
	for _, p := range participations {
		views = append(views, participationView{
			ID:             p.ID.String(),
			MissionID:      p.MissionID.String(),
			ApplicationID:  p.ApplicationID.String(),
			WasPresent:     p.WasPresent,
			HoursCompleted: p.HoursCompleted,
			HoursValidated: p.HoursValidated,
			ValidatedAt:    p.ValidatedAt,
			Rating:         p.OrganizationRating,
			CreatedAt:      p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"participations": views})
}
