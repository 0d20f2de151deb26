package repository_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypeace-oss/jeda/internal/db"
	"github.com/anypeace-oss/jeda/internal/model"
	"github.com/anypeace-oss/jeda/internal/repository"
)

func setupRepos(t *testing.T) (*repository.UserRepository, *repository.StatsRepository) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})
	require.NoError(t, db.RunMigrations(database, db.Migrations))

	return repository.NewUserRepository(database), repository.NewStatsRepository(database)
}

func createUser(t *testing.T, userRepo *repository.UserRepository, email string) string {
	t.Helper()
	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Tester",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, userRepo.Create(context.Background(), &user))
	return user.ID
}

func TestAddFocusTimeCreatesThenAccumulates(t *testing.T) {
	userRepo, statsRepo := setupRepos(t)
	userID := createUser(t, userRepo, "a@example.com")
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	stat, err := statsRepo.AddFocusTime(context.Background(), uuid.NewString(), userID, now, 300, now)
	require.NoError(t, err)
	assert.Equal(t, 300, stat.FocusTime)
	assert.Equal(t, model.StartOfDay(now), stat.Date)

	later := now.Add(2 * time.Hour)
	stat, err = statsRepo.AddFocusTime(context.Background(), uuid.NewString(), userID, later, 150, later)
	require.NoError(t, err)
	assert.Equal(t, 450, stat.FocusTime)

	stats, err := statsRepo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stats, 1, "same-day writes must share one row")
}

func TestAddFocusTimeConcurrentSameDay(t *testing.T) {
	userRepo, statsRepo := setupRepos(t)
	userID := createUser(t, userRepo, "a@example.com")
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for _, delta := range []int{300, 400} {
		wg.Add(1)
		go func(delta int) {
			defer wg.Done()
			_, err := statsRepo.AddFocusTime(context.Background(), uuid.NewString(), userID, now, delta, now)
			assert.NoError(t, err)
		}(delta)
	}
	wg.Wait()

	stats, err := statsRepo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stats, 1, "concurrent writers must not duplicate the row")
	assert.Equal(t, 700, stats[0].FocusTime)
}

func TestAddFocusTimeSeparateDays(t *testing.T) {
	userRepo, statsRepo := setupRepos(t)
	userID := createUser(t, userRepo, "a@example.com")

	day1 := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 31, 0, 1, 0, 0, time.UTC)

	_, err := statsRepo.AddFocusTime(context.Background(), uuid.NewString(), userID, day1, 100, day1)
	require.NoError(t, err)
	_, err = statsRepo.AddFocusTime(context.Background(), uuid.NewString(), userID, day2, 200, day2)
	require.NoError(t, err)

	stats, err := statsRepo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}

func TestListFocusTotalsOrdersDescending(t *testing.T) {
	userRepo, statsRepo := setupRepos(t)
	low := createUser(t, userRepo, "low@example.com")
	high := createUser(t, userRepo, "high@example.com")
	none := createUser(t, userRepo, "none@example.com")
	now := time.Now().UTC()

	_, err := statsRepo.AddFocusTime(context.Background(), uuid.NewString(), low, now, 100, now)
	require.NoError(t, err)
	_, err = statsRepo.AddFocusTime(context.Background(), uuid.NewString(), high, now, 5000, now)
	require.NoError(t, err)

	totals, err := statsRepo.ListFocusTotals(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, high, totals[0].UserID)
	assert.Equal(t, low, totals[1].UserID)
	assert.Equal(t, none, totals[2].UserID)
	assert.Zero(t, totals[2].TotalFocusTime)
}
