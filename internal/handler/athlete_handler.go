package handler

import (
	"net/http"

	"lejog-map/internal/container"
)

// AthleteHandler serves the athlete profile passthrough
type AthleteHandler struct {
	container *container.Container
}

// NewAthleteHandler creates a new athlete handler
func NewAthleteHandler(container *container.Container) *AthleteHandler {
	return &AthleteHandler{
		container: container,
	}
}

// Get handles GET /api/athlete
func (h *AthleteHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	athlete, err := h.container.GetActivitiesService().GetAthlete(r.Context())
	if err != nil {
		logger.WithError(err).Error("Failed to fetch athlete profile")
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, athlete)
}
