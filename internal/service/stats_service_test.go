package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anypeace-oss/jeda/internal/db"
	"github.com/anypeace-oss/jeda/internal/repository"
)

func setupStatsService(t *testing.T, clock clockwork.Clock) (*StatsService, *AuthService) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})
	require.NoError(t, db.RunMigrations(database, db.Migrations))

	userRepo := repository.NewUserRepository(database)
	statsRepo := repository.NewStatsRepository(database)
	return NewStatsService(statsRepo, userRepo, clock), NewAuthService(userRepo, "test-secret", time.Hour)
}

func registerTestUser(t *testing.T, authService *AuthService, email string) string {
	t.Helper()
	result, apiErr := authService.Register(context.Background(), email, "123456", "Tester")
	require.Nil(t, apiErr)
	return result.User.ID
}

func TestTrackRejectsNegative(t *testing.T) {
	statsService, authService := setupStatsService(t, clockwork.NewFakeClock())
	userID := registerTestUser(t, authService, "a@example.com")

	_, apiErr := statsService.Track(context.Background(), userID, -5)
	require.NotNil(t, apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestTrackAccumulatesSameDay(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	statsService, authService := setupStatsService(t, clock)
	userID := registerTestUser(t, authService, "a@example.com")

	stat, apiErr := statsService.Track(context.Background(), userID, 300)
	require.Nil(t, apiErr)
	assert.Equal(t, 300, stat.FocusTime)

	clock.Advance(time.Hour)
	stat, apiErr = statsService.Track(context.Background(), userID, 400)
	require.Nil(t, apiErr)
	assert.Equal(t, 700, stat.FocusTime)
}

func TestSummaryEmptyUser(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	statsService, authService := setupStatsService(t, clockwork.NewFakeClockAt(now))
	userID := registerTestUser(t, authService, "a@example.com")

	summary, apiErr := statsService.Summary(context.Background(), userID)
	require.Nil(t, apiErr)
	assert.Zero(t, summary.HoursSpent)
	assert.Zero(t, summary.DaysAccessed)
	assert.Zero(t, summary.CurrentStreak)
	assert.Equal(t, now, summary.LastActive)
	assert.Equal(t, "Tester", summary.Username)
}

func TestSummaryStreakAndTotals(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	statsService, authService := setupStatsService(t, clock)
	userID := registerTestUser(t, authService, "a@example.com")

	// Three consecutive days, 30 minutes each, ending today.
	for i := 0; i < 3; i++ {
		_, apiErr := statsService.Track(context.Background(), userID, 1800)
		require.Nil(t, apiErr)
		if i < 2 {
			clock.Advance(24 * time.Hour)
		}
	}

	summary, apiErr := statsService.Summary(context.Background(), userID)
	require.Nil(t, apiErr)
	assert.Equal(t, 1.5, summary.HoursSpent)
	assert.Equal(t, 3, summary.DaysAccessed)
	assert.Equal(t, 3, summary.CurrentStreak)
}

func TestSummaryStreakBrokenByGap(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	statsService, authService := setupStatsService(t, clock)
	userID := registerTestUser(t, authService, "a@example.com")

	_, apiErr := statsService.Track(context.Background(), userID, 600)
	require.Nil(t, apiErr)

	// Two days later with no activity in between: streak resets to zero
	// because today has no row.
	clock.Advance(48 * time.Hour)
	summary, apiErr := statsService.Summary(context.Background(), userID)
	require.Nil(t, apiErr)
	assert.Equal(t, 1, summary.DaysAccessed)
	assert.Zero(t, summary.CurrentStreak)

	// Activity today starts a fresh one-day streak.
	_, apiErr = statsService.Track(context.Background(), userID, 600)
	require.Nil(t, apiErr)
	summary, apiErr = statsService.Summary(context.Background(), userID)
	require.Nil(t, apiErr)
	assert.Equal(t, 1, summary.CurrentStreak)
}

func TestRankingsSortAndCount(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	statsService, authService := setupStatsService(t, clockwork.NewFakeClockAt(now))

	first := registerTestUser(t, authService, "first@example.com")
	second := registerTestUser(t, authService, "second@example.com")
	registerTestUser(t, authService, "idle@example.com")

	_, apiErr := statsService.Track(context.Background(), second, 1000)
	require.Nil(t, apiErr)
	_, apiErr = statsService.Track(context.Background(), first, 9000)
	require.Nil(t, apiErr)

	rankings, apiErr := statsService.Rankings(context.Background(), 1, 25)
	require.Nil(t, apiErr)
	assert.Equal(t, 3, rankings.Total)
	require.Len(t, rankings.Users, 3)
	assert.Equal(t, first, rankings.Users[0].ID)
	assert.Equal(t, 9000, rankings.Users[0].TotalFocusTime)
	assert.Equal(t, 1, rankings.Users[0].Streak)
	assert.Equal(t, second, rankings.Users[1].ID)
	assert.Zero(t, rankings.Users[2].TotalFocusTime)
	assert.Zero(t, rankings.Users[2].Streak)
}

func TestRankingsPagination(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	statsService, authService := setupStatsService(t, clockwork.NewFakeClockAt(now))

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		registerTestUser(t, authService, email)
	}

	page1, apiErr := statsService.Rankings(context.Background(), 1, 2)
	require.Nil(t, apiErr)
	assert.Len(t, page1.Users, 2)
	assert.Equal(t, 3, page1.Total)

	page2, apiErr := statsService.Rankings(context.Background(), 2, 2)
	require.Nil(t, apiErr)
	assert.Len(t, page2.Users, 1)
}

func TestCountStreakTable(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		days []time.Time
		want int
	}{
		{name: "empty", days: nil, want: 0},
		{name: "today only", days: []time.Time{today}, want: 1},
		{name: "yesterday only", days: []time.Time{today.AddDate(0, 0, -1)}, want: 0},
		{
			name: "three day run",
			days: []time.Time{today, today.AddDate(0, 0, -1), today.AddDate(0, 0, -2)},
			want: 3,
		},
		{
			name: "gap breaks run",
			days: []time.Time{today, today.AddDate(0, 0, -2)},
			want: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			days := make(map[time.Time]struct{}, len(tc.days))
			for _, day := range tc.days {
				days[day] = struct{}{}
			}
			assert.Equal(t, tc.want, countStreak(days, now))
		})
	}
}
