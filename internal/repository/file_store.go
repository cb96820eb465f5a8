package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"lejog-map/internal/domain"
	"lejog-map/pkg/logger"
)

// FileStore keeps the credential in a single JSON file. This is the default
// store for single-host deployments.
type FileStore struct {
	path   string
	logger *logger.Logger
}

// NewFileStore creates a file-backed credential store at path.
func NewFileStore(path string, logger *logger.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Load reads the credential file. A missing or unparseable file is treated
// as "no credential stored".
func (s *FileStore) Load(ctx context.Context) (*domain.Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.WithError(err).WithField("path", s.path).Warn("Failed to read credential file, treating as absent")
		return nil, nil
	}

	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("Credential file is corrupt, treating as absent")
		return nil, nil
	}

	return &cred, nil
}

// Save writes the credential, creating the parent directory on first use.
// The previous record is always replaced wholesale.
func (s *FileStore) Save(ctx context.Context, cred *domain.Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}
