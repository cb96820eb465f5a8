package container

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"lejog-map/internal/config"
	"lejog-map/internal/domain"
	"lejog-map/internal/repository"
	"lejog-map/internal/service"
	"lejog-map/internal/service/auth"
	"lejog-map/pkg/logger"
	"lejog-map/pkg/redis"
	"lejog-map/pkg/strava"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Pool        *pgxpool.Pool
	Store       repository.CredentialStore
	Services    *service.Services
	Samples     []domain.MappedActivity
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger) (*Container, error) {
	// Initialize Redis client if Redis URL is configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without caching")
	}

	// Credential storage: Postgres when configured, JSON file otherwise
	var pool *pgxpool.Pool
	var store repository.CredentialStore
	if cfg.DatabaseURL != "" {
		p, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pool = p
		store = repository.NewPostgresStore(pool)
		logger.Info("Using Postgres credential store")
	} else {
		store = repository.NewFileStore(cfg.TokenPath, logger)
		logger.WithField("path", cfg.TokenPath).Info("Using file credential store")
	}

	// Initialize services
	stravaClient := strava.NewClient(nil)
	authService := auth.NewService(cfg, store, logger)
	activitiesService := service.NewStravaActivitiesService(stravaClient, authService, cfg, logger)

	services := &service.Services{
		Auth:       authService,
		Activities: activitiesService,
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		RedisClient: redisClient,
		Pool:        pool,
		Store:       store,
		Services:    services,
		Samples:     loadSamples(cfg, logger),
	}, nil
}

// loadSamples reads the configured sample dataset, falling back to the
// built-in one when no file is configured or it cannot be read.
func loadSamples(cfg *config.Config, logger *logger.Logger) []domain.MappedActivity {
	if cfg.SampleDataPath == "" {
		return domain.SampleActivities()
	}

	data, err := os.ReadFile(cfg.SampleDataPath)
	if err != nil {
		logger.WithError(err).WithField("path", cfg.SampleDataPath).Warn("Failed to read sample data file, using built-in samples")
		return domain.SampleActivities()
	}

	var samples []domain.MappedActivity
	if err := json.Unmarshal(data, &samples); err != nil {
		logger.WithError(err).WithField("path", cfg.SampleDataPath).Warn("Failed to parse sample data file, using built-in samples")
		return domain.SampleActivities()
	}

	logger.WithField("count", len(samples)).Info("Loaded sample dataset from file")
	return samples
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetActivitiesService returns the activities service
func (c *Container) GetActivitiesService() service.ActivitiesService {
	return c.Services.Activities
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetCacheService returns a cache service instance (nil if Redis is not available)
func (c *Container) GetCacheService() *service.CacheService {
	if c.RedisClient == nil {
		return nil
	}
	return service.NewCacheService(c.RedisClient, c.Logger.Logger)
}

// SampleActivities returns the fallback dataset.
func (c *Container) SampleActivities() []domain.MappedActivity {
	return c.Samples
}

// Close releases held connections.
func (c *Container) Close() error {
	var err error
	if c.RedisClient != nil {
		err = c.RedisClient.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	return err
}
