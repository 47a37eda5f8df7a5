package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"applytrack/internal/auth"
	"applytrack/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ApplicationHandler handles HTTP requests for application records. Every
// operation is scoped to the identity the auth middleware resolved.
type ApplicationHandler struct {
	service services.ApplicationServiceProvider
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationServiceProvider) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// ApplicationPayload defines the request body for create and update.
type ApplicationPayload struct {
	Position   string `json:"position"`
	Employment string `json:"employment"`
	Company    string `json:"company"`
	Salary     int64  `json:"salary"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

func (p ApplicationPayload) toInput() services.ApplicationInput {
	return services.ApplicationInput{
		Position:   p.Position,
		Employment: p.Employment,
		Company:    p.Company,
		Salary:     p.Salary,
		Location:   p.Location,
		Status:     p.Status,
		Date:       p.Date,
		Notes:      p.Notes,
	}
}

// GetAll lists the caller's applications.
func (h *ApplicationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	apps, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list applications")
		writeError(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

// Create inserts a new application for the caller.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	var payload ApplicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.service.Create(r.Context(), userID, payload.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// Update replaces all mutable fields of one of the caller's applications.
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var payload ApplicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.service.Update(r.Context(), id, userID, payload.toInput())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// Delete removes one of the caller's applications. Repeating the call for a
// row that is already gone still succeeds.
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing auth token")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("id", id).Msg("Failed to delete application")
		writeError(w, http.StatusInternalServerError, "Failed to delete application")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Application deleted"})
}
