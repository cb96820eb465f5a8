package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"lejog-map/internal/config"
	"lejog-map/internal/domain"
	"lejog-map/internal/repository"
	"lejog-map/pkg/errors"
	"lejog-map/pkg/logger"
)

// Endpoint is Strava's OAuth2 endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://www.strava.com/oauth/authorize",
	TokenURL: "https://www.strava.com/oauth/token",
}

// Service implements the AuthService interface. It owns the single stored
// credential: reads go through the injected store, writes always replace the
// record wholesale. Concurrent refreshes may race; Strava treats a duplicate
// refresh as idempotent, so the race is benign.
type Service struct {
	oauth  *oauth2.Config
	store  repository.CredentialStore
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a credential manager against Strava's production
// endpoints.
func NewService(cfg *config.Config, store repository.CredentialStore, logger *logger.Logger) *Service {
	return NewServiceWithEndpoint(cfg, Endpoint, store, logger)
}

// NewServiceWithEndpoint creates a credential manager against an alternate
// OAuth endpoint pair, primarily for tests.
func NewServiceWithEndpoint(cfg *config.Config, endpoint oauth2.Endpoint, store repository.CredentialStore, logger *logger.Logger) *Service {
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.StravaClientID,
			ClientSecret: cfg.StravaClientSecret,
			RedirectURL:  cfg.StravaRedirectURI,
			Scopes:       []string{cfg.StravaScope},
			Endpoint:     endpoint,
		},
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// AuthorizationURL builds the Strava consent URL from static configuration.
func (s *Service) AuthorizationURL() string {
	return s.oauth.AuthCodeURL("", oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

// ExchangeCode performs a one-time exchange of an authorization code for a
// fresh credential. No retry is attempted; the caller redirects the user to a
// success or error indicator based on the outcome.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*domain.Credential, error) {
	s.logger.Debug("Exchanging authorization code for token")

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.WithError(err).Error("Authorization code exchange failed")
		return nil, errors.NewAuthExchangeError("Failed to exchange authorization code", err)
	}

	cred := credentialFromToken(token)
	if err := s.store.Save(ctx, cred); err != nil {
		s.logger.WithError(err).Error("Failed to persist credential after exchange")
		return nil, errors.NewAuthExchangeError("Failed to persist credential", err)
	}

	s.logger.WithField("expires_at", cred.ExpiresAt).Info("Strava credential stored")
	return cred, nil
}

// StoredCredential reads the last persisted credential. A read failure is
// treated as "no credential", never as a fatal error.
func (s *Service) StoredCredential(ctx context.Context) *domain.Credential {
	cred, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load stored credential")
		return nil
	}
	return cred
}

// UsableCredential returns a credential guaranteed not expired at call time.
// An expired credential triggers at most one refresh attempt; any failure on
// that path returns nil so callers can fall back to sample data silently.
func (s *Service) UsableCredential(ctx context.Context) *domain.Credential {
	cred := s.StoredCredential(ctx)
	if cred == nil {
		s.logger.Debug("No stored credential, authentication required")
		return nil
	}

	if !cred.Expired(s.now()) {
		return cred
	}

	s.logger.Info("Stored credential expired, refreshing")

	source := s.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		Expiry:       time.Unix(cred.ExpiresAt, 0),
	})

	token, err := source.Token()
	if err != nil {
		s.logger.WithError(err).Warn("Credential refresh failed")
		return nil
	}

	refreshed := credentialFromToken(token)
	if refreshed.RefreshToken == "" {
		// Strava rotates refresh tokens on every refresh, but guard against a
		// response that omits one.
		refreshed.RefreshToken = cred.RefreshToken
	}

	if err := s.store.Save(ctx, refreshed); err != nil {
		s.logger.WithError(err).Error("Failed to persist refreshed credential")
		return nil
	}

	s.logger.WithField("expires_at", refreshed.ExpiresAt).Info("Strava credential refreshed")
	return refreshed
}

func credentialFromToken(token *oauth2.Token) *domain.Credential {
	cred := &domain.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		cred.ExpiresAt = token.Expiry.Unix()
	}
	return cred
}
