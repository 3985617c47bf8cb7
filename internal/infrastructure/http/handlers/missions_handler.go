package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/catalog"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/hours"
	appmissions "github.com/HalimaaSeddik/dz-volunteer/internal/application/missions"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
)

type MissionsHandler struct {
	list             *catalog.ListMissions
	get              *catalog.GetMission
	create           *appmissions.CreateMission
	publish          *appmissions.PublishMission
	listMine         *appmissions.ListOrganizationMissions
	listApplications *appmissions.ListApplications
	validateHours    *hours.Validate
	validate         *validator.Validate
	log              zerolog.Logger
}

func NewMissionsHandler(
	list *catalog.ListMissions,
	get *catalog.GetMission,
	create *appmissions.CreateMission,
	publish *appmissions.PublishMission,
	listMine *appmissions.ListOrganizationMissions,
	listApplications *appmissions.ListApplications,
	validateHours *hours.Validate,
	log zerolog.Logger,
) *MissionsHandler {
	return &MissionsHandler{
		list:             list,
		get:              get,
		create:           create,
		publish:          publish,
		listMine:         listMine,
		listApplications: listApplications,
		validateHours:    validateHours,
		validate:         validator.New(),
		log:              log,
	}
}

type missionView struct {
	ID                 string     `json:"id"`
	OrganizationID     string     `json:"organization_id"`
	Title              string     `json:"title"`
	ShortDescription   string     `json:"short_description"`
	FullDescription    string     `json:"full_description,omitempty"`
	SDG                int        `json:"sdg"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time,omitempty"`
	EndTime            string     `json:"end_time,omitempty"`
	Wilaya             string     `json:"wilaya"`
	Commune            string     `json:"commune,omitempty"`
	Address            string     `json:"address,omitempty"`
	RequiredVolunteers int        `json:"required_volunteers"`
	AcceptedVolunteers int        `json:"accepted_volunteers"`
	RemainingPlaces    int        `json:"remaining_places"`
	FillPercentage     int        `json:"fill_percentage"`
	Status             string     `json:"status"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
}

func toMissionView(m *domain.Mission) missionView {
	return missionView{
		ID:                 m.ID.String(),
		OrganizationID:     m.OrganizationID.String(),
		Title:              m.Title,
		ShortDescription:   m.ShortDescription,
		FullDescription:    m.FullDescription,
		SDG:                m.SDG,
		Date:               m.Date.Format("2006-01-02"),
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		Wilaya:             m.Wilaya,
		Commune:            m.Commune,
		Address:            m.Address,
		RequiredVolunteers: m.RequiredVolunteers,
		AcceptedVolunteers: m.AcceptedVolunteers,
		RemainingPlaces:    m.RemainingPlaces(),
		FillPercentage:     m.FillPercentage(),
		Status:             string(m.Status),
		PublishedAt:        m.PublishedAt,
	}
}

// List serves the public catalog. Anonymous.
func (h *MissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ports.MissionFilters{
		Wilaya: q.Get("wilaya"),
	}
	if sdg, err := strconv.Atoi(q.Get("sdg")); err == nil {
		filters.SDG = sdg
	}
	filters.HasPlaces = q.Get("has_places") == "true"
	rawSkills := q["skill"]
	if csv := q.Get("skills"); csv != "" {
		rawSkills = append(rawSkills, strings.Split(csv, ",")...)
	}
	for _, raw := range rawSkills {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			filters.SkillIDs = append(filters.SkillIDs, domain.NewSkillID(id))
		}
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filters.Offset = offset
	}

	result, err := h.list.Execute(r.Context(), catalog.ListMissionsInput{Filters: filters})
	if err != nil {
		h.log.Error().Err(err).Msg("list missions failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]missionView, 0, len(result.Missions))
	for _, m := range result.Missions {
		views = append(views, toMissionView(m))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"missions": views})
}

// Get serves one published mission with its skill requirements. Anonymous.
func (h *MissionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid mission id")
		return
	}
	result, err := h.get.Execute(r.Context(), catalog.GetMissionInput{MissionID: domain.NewMissionID(id)})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("get mission failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	requirements := make([]map[string]interface{}, 0, len(result.Requirements))
	for _, req := range result.Requirements {
		requirements = append(requirements, map[string]interface{}{
			"skill_id":              req.SkillID.String(),
			"verification_required": req.VerificationRequired,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"mission":            toMissionView(result.Mission),
		"skill_requirements": requirements,
	})
}

// Create files a DRAFT mission for the authenticated organization.
func (h *MissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	var body struct {
		Title              string `json:"title" validate:"required,max=200"`
		ShortDescription   string `json:"short_description" validate:"required,max=500"`
		FullDescription    string `json:"full_description" validate:"max=5000"`
		SDG                int    `json:"sdg" validate:"required,min=1,max=17"`
		Date               string `json:"date" validate:"required"`
		StartTime          string `json:"start_time" validate:"max=5"`
		EndTime            string `json:"end_time" validate:"max=5"`
		Wilaya             string `json:"wilaya" validate:"required,max=100"`
		Commune            string `json:"commune" validate:"max=100"`
		Address            string `json:"address" validate:"max=500"`
		RequiredVolunteers int    `json:"required_volunteers" validate:"required,min=1"`
		SkillRequirements  []struct {
			SkillID              string `json:"skill_id" validate:"required,uuid"`
			VerificationRequired bool   `json:"verification_required"`
		} `json:"skill_requirements" validate:"dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "date must be YYYY-MM-DD")
		return
	}

	input := appmissions.CreateMissionInput{
		OrganizationID:     principal.OrganizationID(),
		Title:              body.Title,
		ShortDescription:   body.ShortDescription,
		FullDescription:    body.FullDescription,
		SDG:                body.SDG,
		Date:               date,
		StartTime:          body.StartTime,
		EndTime:            body.EndTime,
		Wilaya:             body.Wilaya,
		Commune:            body.Commune,
		Address:            body.Address,
		RequiredVolunteers: body.RequiredVolunteers,
	}
	for _, req := range body.SkillRequirements {
		skillID, err := uuid.Parse(req.SkillID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid skill id")
			return
		}
		input.Requirements = append(input.Requirements, appmissions.SkillRequirementInput{
			SkillID:              domain.NewSkillID(skillID),
			VerificationRequired: req.VerificationRequired,
		})
	}

	result, err := h.create.Execute(r.Context(), input)
	if err != nil {
		h.log.Error().Err(err).Msg("create mission failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"mission": toMissionView(result.Mission)})
}

// Publish transitions a DRAFT mission to PUBLISHED.
func (h *MissionsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid mission id")
		return
	}
	err := h.publish.Execute(r.Context(), appmissions.PublishMissionInput{
		MissionID:      domain.NewMissionID(id),
		OrganizationID: principal.OrganizationID(),
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("publish mission failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.MissionPublished)})
}

// ListMine returns the organization's own missions, every status included.
func (h *MissionsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listMine.Execute(r.Context(), appmissions.ListOrganizationMissionsInput{
		OrganizationID: principal.OrganizationID(),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("list organization missions failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]missionView, 0, len(result.Missions))
	for _, m := range result.Missions {
		views = append(views, toMissionView(m))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"missions": views})
}

// ListApplications returns the applications filed for one of the
// organization's missions.
func (h *MissionsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid mission id")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listApplications.Execute(r.Context(), appmissions.ListApplicationsInput{
		MissionID:      domain.NewMissionID(id),
		OrganizationID: principal.OrganizationID(),
		Status:         domain.ApplicationStatus(r.URL.Query().Get("status")),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("list mission applications failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	views := make([]applicationView, 0, len(result.Applications))
	for _, app := range result.Applications {
		views = append(views, toApplicationView(app))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"applications": views})
}

// ValidateHours records attendance and hours for a finished mission's
// participations. Bad entries are reported per entry, never failing the
// whole batch.
func (h *MissionsHandler) ValidateHours(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	id, ok := pathUUID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "", "invalid mission id")
		return
	}
	var body struct {
		Entries []struct {
			ParticipationID string  `json:"participation_id" validate:"required,uuid"`
			WasPresent      bool    `json:"was_present"`
			Hours           float64 `json:"hours" validate:"min=0,max=24"`
			Rating          *int    `json:"rating" validate:"omitempty,min=1,max=5"`
			Comment         string  `json:"comment" validate:"max=2000"`
		} `json:"entries" validate:"required,min=1,dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}

	input := hours.ValidateInput{
		MissionID:      domain.NewMissionID(id),
		OrganizationID: principal.OrganizationID(),
	}
	for _, entry := range body.Entries {
		pid, err := uuid.Parse(entry.ParticipationID)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "", "invalid participation id")
			return
		}
		input.Entries = append(input.Entries, ports.HoursValidation{
			ParticipationID: domain.NewParticipationID(pid),
			WasPresent:      entry.WasPresent,
			Hours:           entry.Hours,
			Rating:          entry.Rating,
			Comment:         TruncateMessage(entry.Comment),
		})
	}

	result, err := h.validateHours.Execute(r.Context(), input)
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("validate hours failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}

	entries := make([]map[string]interface{}, 0, len(result.Results))
	var credited float64
	for _, entry := range result.Results {
		entries = append(entries, map[string]interface{}{
			"participation_id": entry.ParticipationID.String(),
			"outcome":          entry.Outcome,
			"hours_credited":   entry.HoursCredited,
		})
		credited += entry.HoursCredited
	}
	middleware.RecordHoursValidated(credited)
	AuditLog(h.log, r, "mission.validate_hours", principal.UserID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"validated": result.Validated,
		"skipped":   result.Skipped,
		"entries":   entries,
	})
}
