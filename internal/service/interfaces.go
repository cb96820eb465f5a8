package service

import (
	"context"
	"time"

	"lejog-map/internal/domain"
	"lejog-map/pkg/strava"
)

// AuthService owns the Strava credential lifecycle
type AuthService interface {
	// AuthorizationURL builds the Strava consent URL. Deterministic, no side effects.
	AuthorizationURL() string

	// ExchangeCode exchanges an authorization code for a fresh credential and
	// persists it, overwriting any prior one.
	ExchangeCode(ctx context.Context, code string) (*domain.Credential, error)

	// StoredCredential returns the last persisted credential without checking
	// expiry, or nil when none exists.
	StoredCredential(ctx context.Context) *domain.Credential

	// UsableCredential returns a credential guaranteed not expired at call
	// time, refreshing at most once if needed. Returns nil instead of an
	// error so callers can fall back silently.
	UsableCredential(ctx context.Context) *domain.Credential
}

// ActivitiesService aggregates Strava activities into map-ready form
type ActivitiesService interface {
	// ListMappedActivities returns normalized ride activities within the date
	// window, sorted by start time, each with a non-empty route.
	ListMappedActivities(ctx context.Context, start, end time.Time) ([]domain.MappedActivity, error)

	// GetAthlete returns the authenticated athlete's profile.
	GetAthlete(ctx context.Context) (*strava.Athlete, error)
}

// Services aggregates all service interfaces
type Services struct {
	Auth       AuthService
	Activities ActivitiesService
}
