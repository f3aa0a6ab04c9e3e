package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/sleeptracker/internal/db"
	"github.com/emilianohg/sleeptracker/internal/models"
)

func setupTestRepo(t *testing.T) *NightRepo {
	t.Helper()

	database, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "sleep.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return NewNightRepo(database)
}

func TestNightRepo_InsertAssignsID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	first := &models.SleepNight{StartTimeMilli: 1000, EndTimeMilli: 1000, SleepQuality: models.UnratedQuality}
	second := &models.SleepNight{StartTimeMilli: 2000, EndTimeMilli: 2000, SleepQuality: models.UnratedQuality}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestNightRepo_Get_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNightRepo_GetTonight_Empty(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetTonight(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNightRepo_StartStopRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	night := &models.SleepNight{StartTimeMilli: 1000, EndTimeMilli: 1000, SleepQuality: models.UnratedQuality}
	require.NoError(t, repo.Insert(ctx, night))

	tonight, err := repo.GetTonight(ctx)
	require.NoError(t, err)
	require.NotNil(t, tonight)
	assert.Equal(t, night.ID, tonight.ID)
	assert.True(t, tonight.InProgress())

	tonight.EndTimeMilli = 5000
	require.NoError(t, repo.Update(ctx, tonight))

	// The row is still the latest; it is just no longer in progress
	latest, err := repo.GetTonight(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.False(t, latest.InProgress())

	nights, err := repo.GetAllNights(ctx)
	require.NoError(t, err)
	require.Len(t, nights, 1)
	assert.Equal(t, int64(1000), nights[0].StartTimeMilli)
	assert.Equal(t, int64(5000), nights[0].EndTimeMilli)
}

func TestNightRepo_GetAllNights_MostRecentFirst(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for _, start := range []int64{1000, 2000, 3000} {
		require.NoError(t, repo.Insert(ctx, &models.SleepNight{StartTimeMilli: start, EndTimeMilli: start + 500}))
	}

	nights, err := repo.GetAllNights(ctx)
	require.NoError(t, err)
	require.Len(t, nights, 3)
	assert.Equal(t, int64(3000), nights[0].StartTimeMilli)
	assert.Equal(t, int64(2000), nights[1].StartTimeMilli)
	assert.Equal(t, int64(1000), nights[2].StartTimeMilli)
}

func TestNightRepo_DeleteAllRows(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Insert(ctx, &models.SleepNight{StartTimeMilli: int64(i), EndTimeMilli: int64(i)}))
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, repo.DeleteAllRows(ctx))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	nights, err := repo.GetAllNights(ctx)
	require.NoError(t, err)
	assert.Empty(t, nights)
}

func TestNightRepo_CanceledContext(t *testing.T) {
	repo := setupTestRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Insert(ctx, &models.SleepNight{StartTimeMilli: 1, EndTimeMilli: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
