package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/HalimaaSeddik/dz-volunteer/internal/application/auth"
	"github.com/HalimaaSeddik/dz-volunteer/internal/application/ports"
	"github.com/HalimaaSeddik/dz-volunteer/internal/domain"
	domerrors "github.com/HalimaaSeddik/dz-volunteer/internal/domain/errors"
	"github.com/HalimaaSeddik/dz-volunteer/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.Register
	login    *auth.Login
	users    ports.UserRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, users ports.UserRepository, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		users:    users,
		validate: validator.New(),
		log:      log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Password  string `json:"password" validate:"required,min=8,max=128"`
		FirstName string `json:"first_name" validate:"required,max=100"`
		LastName  string `json:"last_name" validate:"required,max=100"`
		Phone     string `json:"phone" validate:"max=20"`
		Role      string `json:"role" validate:"required,oneof=VOLUNTEER ORGANIZATION"`

		Wilaya     string `json:"wilaya" validate:"max=100"`
		Commune    string `json:"commune" validate:"max=100"`
		Motivation string `json:"motivation" validate:"max=2000"`

		OrganizationName string `json:"organization_name" validate:"max=200"`
		OrganizationType string `json:"organization_type" validate:"omitempty,oneof=ASSOCIATION NGO INITIATIVE OTHER"`
		Description      string `json:"description" validate:"max=2000"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	role := domain.Role(body.Role)
	if role == domain.RoleOrganization && body.OrganizationName == "" {
		writeErr(w, http.StatusBadRequest, "", "organization_name is required for organization accounts")
		return
	}

	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Email:            email,
		Password:         password,
		FirstName:        body.FirstName,
		LastName:         body.LastName,
		Phone:            body.Phone,
		Role:             role,
		Wilaya:           body.Wilaya,
		Commune:          body.Commune,
		Motivation:       body.Motivation,
		OrganizationName: body.OrganizationName,
		OrganizationType: domain.OrganizationType(body.OrganizationType),
		Description:      body.Description,
	})
	if err != nil {
		AuditLog(h.log, r, "account.register", "", false, err.Error())
		if err == domerrors.ErrEmailTaken {
			writeErr(w, http.StatusConflict, ErrCodeEmailTaken, err.Error())
			return
		}
		if err == domerrors.ErrInvalidCredentials || err == domerrors.ErrPermissionDenied {
			writeErr(w, http.StatusBadRequest, "", "invalid registration data")
			return
		}
		h.log.Error().Err(err).Msg("register failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "account.register", result.User.ID.String(), true, "")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":         result.User.ID.String(),
		"email":      result.User.Email,
		"role":       result.User.Role,
		"profile_id": result.ProfileID,
		"created_at": result.User.CreatedAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}

	result, err := h.login.Execute(r.Context(), auth.LoginInput{Email: email, Password: password})
	if err != nil {
		AuditLog(h.log, r, "account.login", "", false, err.Error())
		if err == domerrors.ErrInvalidCredentials {
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	AuditLog(h.log, r, "account.login", result.User.ID.String(), true, "")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   result.ExpiresIn,
		"user": map[string]interface{}{
			"id":         result.User.ID.String(),
			"email":      result.User.Email,
			"full_name":  result.User.FullName(),
			"role":       result.User.Role,
			"profile_id": result.ProfileID,
		},
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		return
	}
	user, err := h.users.GetByID(r.Context(), principal.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("load account failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	if user == nil {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "account not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         user.ID.String(),
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      user.Phone,
		"role":       user.Role,
		"profile_id": principal.ProfileID.String(),
		"created_at": user.CreatedAt,
	})
}
