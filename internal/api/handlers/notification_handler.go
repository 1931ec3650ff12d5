package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskflow/taskflow-be/internal/auth"
	"github.com/taskflow/taskflow-be/internal/services"
)

// NotificationHandler handles HTTP requests for the notification summary.
type NotificationHandler struct {
	service services.NotificationServiceProvider
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service services.NotificationServiceProvider) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Get handles the request for the caller's undone count and recent
// updates. Clients poll this on a fixed interval.
func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.service.GetSummary(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", claims.UserID).Msg("Failed to compute notification summary")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
