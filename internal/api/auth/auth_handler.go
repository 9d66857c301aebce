package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/portfolio-auth/internal/config"
	"github.com/dcastano/portfolio-auth/internal/store"
)

// Request/Response structures

type RegisterRequest struct {
	Name     string `json:"name" example:"João Silva"`
	Email    string `json:"email" example:"joao@example.com"`
	Password string `json:"password" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"joao@example.com"`
	Password string `json:"password" example:"password123"`
}

type AuthResponse struct {
	User  store.PublicUser `json:"user"`
	Token string           `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type MeResponse struct {
	User store.PublicUser `json:"user"`
}

type ErrorResponse struct {
	Message string       `json:"message" example:"Invalid email or password"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// invalidCredentials is the one message for every login failure. Absent user
// and wrong password are indistinguishable to avoid account enumeration.
const invalidCredentials = "Invalid email or password"

// invalidToken is the one message for every profile-fetch failure: missing
// header, malformed header, bad/expired token, unknown subject.
const invalidToken = "Invalid or missing authentication token"

type AuthHandler struct {
	service *AuthService
	users   *store.UserStore
}

func NewAuthHandler(users *store.UserStore, service *AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
		users:   users,
	}
}

// Register godoc
// @Summary		Register a new user
// @Description	Register a new user account with name, email and password
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		RegisterRequest	true	"User registration data"
// @Success		201		{object}	AuthResponse	"User registered successfully"
// @Failure		400		{object}	ErrorResponse	"Bad request - invalid input"
// @Failure		409		{object}	ErrorResponse	"Conflict - email already registered"
// @Failure		500		{object}	ErrorResponse	"Internal server error"
// @Router			/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendValidationError(w, []FieldError{{Path: "body", Message: "invalid JSON format"}})
		return
	}

	if errs := validateRegister(req); len(errs) > 0 {
		h.sendValidationError(w, errs)
		return
	}

	name := strings.TrimSpace(req.Name)
	email := store.NormalizeEmail(req.Email)

	if _, exists := h.users.FindByEmail(email); exists {
		h.sendErrorResponse(w, http.StatusConflict, "Email is already registered")
		return
	}

	hash, err := h.service.HashPassword(req.Password)
	if err != nil {
		h.sendErrorResponse(w, http.StatusInternalServerError, "Error processing password")
		return
	}

	user := h.users.Save(&store.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})

	publicUser := user.ToPublic()

	// the user stays saved even if issuance fails below; registration is not
	// rolled back on a misconfigured secret
	token, err := h.service.IssueToken(publicUser)
	if err != nil {
		h.sendTokenError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AuthResponse{User: publicUser, Token: token})
}

// Login godoc
// @Summary		User login
// @Description	Authenticate with email and password and return a bearer token
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			credentials	body		LoginRequest	true	"User login credentials"
// @Success		200			{object}	AuthResponse	"Login successful"
// @Failure		400			{object}	ErrorResponse	"Bad request - invalid input"
// @Failure		401			{object}	ErrorResponse	"Unauthorized - invalid credentials"
// @Failure		500			{object}	ErrorResponse	"Internal server error"
// @Router			/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendValidationError(w, []FieldError{{Path: "body", Message: "invalid JSON format"}})
		return
	}

	if errs := validateLogin(req); len(errs) > 0 {
		h.sendValidationError(w, errs)
		return
	}

	user, ok := h.users.FindByEmail(req.Email)
	if !ok {
		h.sendErrorResponse(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	if !h.service.CheckPasswordHash(req.Password, user.PasswordHash) {
		h.sendErrorResponse(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	publicUser := user.ToPublic()

	token, err := h.service.IssueToken(publicUser)
	if err != nil {
		h.sendTokenError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(AuthResponse{User: publicUser, Token: token})
}

// Me godoc
// @Summary		Get current user profile
// @Description	Return the profile of the authenticated user
// @Tags			auth
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	MeResponse		"User profile"
// @Failure		401	{object}	ErrorResponse	"Unauthorized - invalid or missing token"
// @Router			/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := GetClaimsFromContext(r)
	if err != nil {
		h.sendErrorResponse(w, http.StatusUnauthorized, invalidToken)
		return
	}

	user, ok := h.users.FindByID(claims.Subject)
	if !ok {
		h.sendErrorResponse(w, http.StatusUnauthorized, invalidToken)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(MeResponse{User: user.ToPublic()})
}

// Helper methods

// sendTokenError maps an issuance failure to a response. A missing secret is
// operator-facing, so the message names the configuration.
func (h *AuthHandler) sendTokenError(w http.ResponseWriter, err error) {
	if errors.Is(err, config.ErrSecretMissing) {
		h.sendErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.sendErrorResponse(w, http.StatusInternalServerError, "Error generating token")
}

func (h *AuthHandler) sendValidationError(w http.ResponseWriter, errs []FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (h *AuthHandler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Message: message})
}
