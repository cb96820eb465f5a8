package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lejog-map/internal/domain"
)

// credentialRowID pins the single-credential invariant at the schema level:
// every save targets the same row.
const credentialRowID = 1

// PostgresStore keeps the credential in a single-row Postgres table, for
// deployments where the filesystem is ephemeral.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed credential store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load reads the credential row, or (nil, nil) when none has been saved yet.
func (s *PostgresStore) Load(ctx context.Context) (*domain.Credential, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT access_token, refresh_token, expires_at FROM strava_credentials WHERE id = $1",
		credentialRowID)

	var cred domain.Credential
	err := row.Scan(&cred.AccessToken, &cred.RefreshToken, &cred.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &cred, nil
}

// Save upserts the credential row, replacing any previous record wholesale.
func (s *PostgresStore) Save(ctx context.Context, cred *domain.Credential) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO strava_credentials (id, access_token, refresh_token, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    refresh_token = EXCLUDED.refresh_token,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()`,
		credentialRowID, cred.AccessToken, cred.RefreshToken, cred.ExpiresAt)
	return err
}
