package handlers

import (
	"errors"
	"net/http"

	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
)

// API error codes returned in JSON { "error": "...", "code": "..." } for
// stable client handling.
const (
	ErrCodeInvalidCredentials   = "invalid_credentials"
	ErrCodeEmailTaken           = "email_taken"
	ErrCodeUnauthorized         = "unauthorized"
	ErrCodeInvalidRequest       = "invalid_request"
	ErrCodeNotFound             = "not_found"
	ErrCodeConflict             = "conflict"
	ErrCodeForbidden            = "forbidden"
	ErrCodeInternal             = "internal_error"
	ErrCodeMissionFull          = "mission_full"
	ErrCodeDuplicateApplication = "duplicate_application"
	ErrCodeSkillGap             = "skill_gap"
	ErrCodeDocumentRequired     = "document_required"
	ErrCodeInvalidState         = "invalid_state"
	ErrCodeMissionNotEnded      = "mission_not_ended"
)

// mapDomainError translates a domain sentinel into an HTTP status and
// error code. Unknown errors map to 500/internal_error so handlers can
// log them before responding.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domerrors.ErrMissionNotFound),
		errors.Is(err, domerrors.ErrApplicationNotFound),
		errors.Is(err, domerrors.ErrParticipationNotFound),
		errors.Is(err, domerrors.ErrVolunteerNotFound),
		errors.Is(err, domerrors.ErrOrganizationNotFound),
		errors.Is(err, domerrors.ErrSkillNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domerrors.ErrMissionFull):
		return http.StatusConflict, ErrCodeMissionFull
	case errors.Is(err, domerrors.ErrDuplicateApplication):
		return http.StatusConflict, ErrCodeDuplicateApplication
	case errors.Is(err, domerrors.ErrSkillGap):
		return http.StatusUnprocessableEntity, ErrCodeSkillGap
	case errors.Is(err, domerrors.ErrDocumentRequired):
		return http.StatusUnprocessableEntity, ErrCodeDocumentRequired
	case errors.Is(err, domerrors.ErrInvalidState):
		return http.StatusConflict, ErrCodeInvalidState
	case errors.Is(err, domerrors.ErrMissionNotEnded):
		return http.StatusConflict, ErrCodeMissionNotEnded
	case errors.Is(err, domerrors.ErrAlreadyValidated):
		return http.StatusConflict, ErrCodeInvalidState
	case errors.Is(err, domerrors.ErrPermissionDenied):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeInvalidCredentials
	case errors.Is(err, domerrors.ErrEmailTaken):
		return http.StatusConflict, ErrCodeEmailTaken
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
