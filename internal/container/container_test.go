package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lejog-map/internal/config"
	"lejog-map/internal/repository"
	"lejog-map/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		LogLevel:          "error",
		Environment:       "test",
		TokenPath:         filepath.Join(t.TempDir(), "token.json"),
		ActivityType:      "Ride",
		StravaPageSize:    30,
		StravaMaxPages:    20,
		EnrichConcurrency: 4,
	}
}

func testLogger(t *testing.T) *logger.Logger {
	log, err := logger.New("error", "test")
	require.NoError(t, err)
	return log
}

func TestNew(t *testing.T) {
	c, err := New(testConfig(t), testLogger(t))
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.GetAuthService())
	assert.NotNil(t, c.GetActivitiesService())
	assert.NotNil(t, c.GetConfig())
	assert.NotNil(t, c.GetLogger())

	// No Redis configured: caching degrades to nil
	assert.Nil(t, c.GetCacheService())

	// No database configured: credential store is file-backed
	_, ok := c.Store.(*repository.FileStore)
	assert.True(t, ok)
}

func TestNew_BuiltInSamples(t *testing.T) {
	c, err := New(testConfig(t), testLogger(t))
	require.NoError(t, err)
	defer c.Close()

	samples := c.SampleActivities()
	require.Len(t, samples, 2)
	assert.Equal(t, "Day 1: Land's End to Bodmin", samples[0].Name)
	assert.NotEmpty(t, samples[0].Route)
}

func TestNew_SamplesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.json")
	body := `[{"id": 42, "name": "Test Leg", "date": "2024-09-02", "distance": 10.5, "route": [[50.0, -5.0], [50.1, -5.1]]}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := testConfig(t)
	cfg.SampleDataPath = path

	c, err := New(cfg, testLogger(t))
	require.NoError(t, err)
	defer c.Close()

	samples := c.SampleActivities()
	require.Len(t, samples, 1)
	assert.Equal(t, int64(42), samples[0].ID)
}

func TestNew_UnreadableSampleFileFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.SampleDataPath = filepath.Join(t.TempDir(), "missing.json")

	c, err := New(cfg, testLogger(t))
	require.NoError(t, err)
	defer c.Close()

	assert.Len(t, c.SampleActivities(), 2)
}
