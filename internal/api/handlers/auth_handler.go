package handlers

import (
	"encoding/json"
	"net/http"

	"applytrack/internal/auth"
	"applytrack/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	users  services.UserServiceProvider
	tokens *auth.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.Manager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RegisterPayload defines the structure for registration requests.
// CPassword is the confirmation copy of the password.
type RegisterPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CPassword string `json:"cpassword"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the success body for both auth endpoints. The token is
// all the client ever receives; user records and hashes stay server-side.
type TokenResponse struct {
	Token string `json:"token"`
}

// Register handles new user registration and returns a signed token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Register(r.Context(), payload.FirstName, payload.LastName,
		payload.Email, payload.Password, payload.CPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Login verifies credentials and returns a signed token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed authentication attempt")
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}
