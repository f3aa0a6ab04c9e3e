package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sleep.sqlite")

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	status, err := GetMigrationStatus(database)
	require.NoError(t, err)
	assert.Equal(t, uint(0), status.CurrentVersion)
	assert.Equal(t, uint(1), status.LatestVersion)
	assert.True(t, status.Pending)

	require.NoError(t, RunMigrations(database))
	// Second run is a no-op
	require.NoError(t, RunMigrations(database))

	status, err = GetMigrationStatus(database)
	require.NoError(t, err)
	assert.Equal(t, uint(1), status.CurrentVersion)
	assert.False(t, status.Pending)
	assert.False(t, status.Dirty)

	var count int
	err = database.QueryRow("SELECT COUNT(*) FROM daily_sleep_quality_table").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunMigrations_NilHandle(t *testing.T) {
	assert.Error(t, RunMigrations(nil))

	_, err := GetMigrationStatus(nil)
	assert.Error(t, err)
}
