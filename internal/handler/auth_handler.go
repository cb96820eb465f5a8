package handler

import (
	"net/http"

	"lejog-map/internal/container"
)

// AuthHandler drives the Strava consent flow
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// Login handles GET /auth by redirecting to the Strava consent page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	authURL := h.container.GetAuthService().AuthorizationURL()
	h.container.GetLogger().WithField("url", authURL).Debug("Redirecting to authorization URL")
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /auth/callback. The outcome is signalled back to the
// frontend through a redirect query flag, never an error page.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	code := r.URL.Query().Get("code")
	if code == "" {
		logger.Error("No authorization code received in callback")
		http.Redirect(w, r, "/?auth=error", http.StatusFound)
		return
	}

	if _, err := h.container.GetAuthService().ExchangeCode(r.Context(), code); err != nil {
		logger.WithError(err).Error("Authorization code exchange failed")
		http.Redirect(w, r, "/?auth=error", http.StatusFound)
		return
	}

	logger.Info("Strava authorization completed")
	http.Redirect(w, r, "/?auth=success", http.StatusFound)
}

// StatusResponse is the auth status payload
type StatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Status handles GET /api/auth/status. It reports stored-credential presence
// without triggering a refresh round-trip.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	cred := h.container.GetAuthService().StoredCredential(r.Context())
	writeJSON(w, h.container.GetLogger(), http.StatusOK, StatusResponse{
		Authenticated: cred != nil,
	})
}
