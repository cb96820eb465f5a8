package handler

import (
	"net/http"
	"time"

	"lejog-map/internal/container"
	"lejog-map/pkg/errors"
)

const dateLayout = "2006-01-02"

// ActivitiesHandler serves the map-ready activity list
type ActivitiesHandler struct {
	container *container.Container
}

// NewActivitiesHandler creates a new activities handler
func NewActivitiesHandler(container *container.Container) *ActivitiesHandler {
	return &ActivitiesHandler{
		container: container,
	}
}

// List handles GET /api/activities. Every failure path terminates in either
// real data or the sample dataset; this endpoint never returns a hard failure.
func (h *ActivitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	startStr, endStr, start, end := h.dateWindow(r)

	logger.WithFields(map[string]interface{}{
		"start": startStr,
		"end":   endStr,
	}).Debug("Fetching activities for date range")

	cache := h.container.GetCacheService()
	if cache != nil {
		if activities, ok := cache.GetMappedActivities(ctx, startStr, endStr); ok {
			writeJSON(w, logger, http.StatusOK, activities)
			return
		}
	}

	activities, err := h.container.GetActivitiesService().ListMappedActivities(ctx, start, end)
	if err != nil {
		if errors.IsNoCredential(err) {
			logger.Info("No usable Strava credential, serving sample activities")
		} else {
			logger.WithError(err).Error("Activity aggregation failed, serving sample activities")
		}
		writeJSON(w, logger, http.StatusOK, h.container.SampleActivities())
		return
	}

	if len(activities) == 0 {
		logger.Info("No activities found in date range, serving sample activities")
		writeJSON(w, logger, http.StatusOK, h.container.SampleActivities())
		return
	}

	if cache != nil {
		cache.SetMappedActivities(ctx, startStr, endStr, activities)
	}

	logger.WithField("count", len(activities)).Info("Returning mapped activities")
	writeJSON(w, logger, http.StatusOK, activities)
}

// dateWindow resolves the requested date range, falling back to the
// configured tour window on missing or malformed values.
func (h *ActivitiesHandler) dateWindow(r *http.Request) (string, string, time.Time, time.Time) {
	cfg := h.container.GetConfig()
	logger := h.container.GetLogger()

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		if startStr != "" {
			logger.WithField("start", startStr).Warn("Invalid start date, using configured default")
		}
		startStr = cfg.TourStartDate
		start, _ = time.Parse(dateLayout, startStr)
	}

	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		if endStr != "" {
			logger.WithField("end", endStr).Warn("Invalid end date, using configured default")
		}
		endStr = cfg.TourEndDate
		end, _ = time.Parse(dateLayout, endStr)
	}

	return startStr, endStr, start, end
}
