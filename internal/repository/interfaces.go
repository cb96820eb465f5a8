package repository

import (
	"context"

	"lejog-map/internal/domain"
)

// CredentialStore persists the single Strava credential. Implementations
// report a missing or unreadable record as absence, not as an error, so
// callers can fall back to the unauthenticated path.
type CredentialStore interface {
	// Load returns the stored credential, or (nil, nil) when none exists.
	Load(ctx context.Context) (*domain.Credential, error)

	// Save stores the credential, replacing any previous one wholesale.
	Save(ctx context.Context, cred *domain.Credential) error
}
