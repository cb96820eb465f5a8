package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lejog-map/internal/domain"
	"lejog-map/pkg/errors"
)

func TestAuthLogin_RedirectsToConsentURL(t *testing.T) {
	h := NewAuthHandler(testContainer(t, &stubAuth{}, &stubActivities{}))

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://www.strava.com/oauth/authorize?client_id=12345", rec.Header().Get("Location"))
}

func TestAuthCallback(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		auth         *stubAuth
		wantLocation string
	}{
		{
			name:         "missing code redirects to error",
			target:       "/auth/callback",
			auth:         &stubAuth{},
			wantLocation: "/?auth=error",
		},
		{
			name:         "exchange failure redirects to error",
			target:       "/auth/callback?code=bad",
			auth:         &stubAuth{exchangeErr: errors.NewAuthExchangeError("rejected", nil)},
			wantLocation: "/?auth=error",
		},
		{
			name:         "successful exchange redirects to success",
			target:       "/auth/callback?code=good",
			auth:         &stubAuth{cred: &domain.Credential{AccessToken: "a"}},
			wantLocation: "/?auth=success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(testContainer(t, tt.auth, &stubActivities{}))

			rec := httptest.NewRecorder()
			h.Callback(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestAuthStatus(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		h := NewAuthHandler(testContainer(t, &stubAuth{cred: &domain.Credential{AccessToken: "a"}}, &stubActivities{}))

		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Authenticated)
	})

	t.Run("not authenticated", func(t *testing.T) {
		h := NewAuthHandler(testContainer(t, &stubAuth{}, &stubActivities{}))

		rec := httptest.NewRecorder()
		h.Status(rec, httptest.NewRequest(http.MethodGet, "/api/auth/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp StatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Authenticated)
	})
}
