package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/skills"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
)

type SkillsHandler struct {
	claim    *skills.ClaimSkill
	review   *skills.ReviewClaim
	skills   ports.SkillRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewSkillsHandler(claim *skills.ClaimSkill, review *skills.ReviewClaim, skillRepo ports.SkillRepository, log zerolog.Logger) *SkillsHandler {
	return &SkillsHandler{
		claim:    claim,
		review:   review,
		skills:   skillRepo,
		validate: validator.New(),
		log:      log,
	}
}

// List serves the active skill catalog. Anonymous.
func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.skills.List(r.Context(), true)
	if err != nil {
		h.log.Error().Err(err).Msg("list skills failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]map[string]interface{}, 0, len(list))
	for _, s := range list {
		views = append(views, map[string]interface{}{
			"id":                    s.ID.String(),
			"name":                  s.Name,
			"description":           s.Description,
			"requires_verification": s.RequiresVerification,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"skills": views})
}

// Claim records the volunteer's claim on a skill.
func (h *SkillsHandler) Claim(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	var body struct {
		SkillID     string `json:"skill_id" validate:"required,uuid"`
		DocumentURL string `json:"document_url" validate:"omitempty,url,max=2000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	skillID, err := uuid.Parse(body.SkillID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid skill id")
		return
	}

	result, err := h.claim.Execute(r.Context(), skills.ClaimSkillInput{
		VolunteerID: principal.VolunteerID(),
		SkillID:     domain.NewSkillID(skillID),
		DocumentURL: body.DocumentURL,
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("claim skill failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"skill_id": result.Claim.SkillID.String(),
		"status":   result.Claim.Status,
	})
}

// MyClaims returns the volunteer's skill claims with their statuses.
func (h *SkillsHandler) MyClaims(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())
	claims, err := h.skills.ListClaims(r.Context(), principal.VolunteerID())
	if err != nil {
		h.log.Error().Err(err).Msg("list skill claims failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	views := make([]map[string]interface{}, 0, len(claims))
	for _, c := range claims {
		view := map[string]interface{}{
			"skill_id": c.SkillID.String(),
			"status":   c.Status,
		}
		if c.DocumentURL != "" {
			view["document_url"] = c.DocumentURL
		}
		if c.RejectionReason != "" {
			view["rejection_reason"] = c.RejectionReason
		}
		if c.ValidatedAt != nil {
			view["validated_at"] = c.ValidatedAt.Format(time.RFC3339)
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"claims": views})
}

// Review resolves a PENDING claim. Admin only.
func (h *SkillsHandler) Review(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VolunteerID string `json:"volunteer_id" validate:"required,uuid"`
		SkillID     string `json:"skill_id" validate:"required,uuid"`
		Approve     bool   `json:"approve"`
		Reason      string `json:"reason" validate:"max=2000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	volunteerID, err := uuid.Parse(body.VolunteerID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid volunteer id")
		return
	}
	skillID, err := uuid.Parse(body.SkillID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid skill id")
		return
	}

	err = h.review.Execute(r.Context(), skills.ReviewClaimInput{
		VolunteerID: domain.NewVolunteerID(volunteerID),
		SkillID:     domain.NewSkillID(skillID),
		Approve:     body.Approve,
		Reason:      TruncateMessage(body.Reason),
	})
	if err != nil {
		status, code := mapDomainError(err)
		if status == http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("review skill claim failed")
			writeErr(w, status, code, "internal error")
			return
		}
		writeErr(w, status, code, err.Error())
		return
	}
	status := domain.SkillRejected
	if body.Approve {
		status = domain.SkillValidated
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": status})
}
