package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	apperrors "github.com/anypeace-oss/jeda/internal/errors"
	"github.com/anypeace-oss/jeda/internal/model"
	"github.com/anypeace-oss/jeda/internal/repository"
)

const (
	defaultRankingsLimit = 25
	maxRankingsLimit     = 100
)

type StatsService struct {
	statsRepo *repository.StatsRepository
	userRepo  *repository.UserRepository
	clock     clockwork.Clock
}

type SummaryView struct {
	HoursSpent    float64   `json:"hoursSpent"`
	DaysAccessed  int       `json:"daysAccessed"`
	CurrentStreak int       `json:"currentStreak"`
	LastActive    time.Time `json:"lastActive"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
}

type RankedUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
	TotalFocusTime int    `json:"totalFocusTime"`
	Streak         int    `json:"streak"`
}

type RankingsView struct {
	Users []RankedUser `json:"users"`
	Total int          `json:"total"`
}

func NewStatsService(
	statsRepo *repository.StatsRepository,
	userRepo *repository.UserRepository,
	clock clockwork.Clock,
) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		userRepo:  userRepo,
		clock:     clock,
	}
}

// Track accumulates focusSeconds into today's stat row for the user. The
// same-day upsert is atomic at the storage layer, so two near-simultaneous
// submissions both land their increments.
func (s *StatsService) Track(ctx context.Context, userID string, focusSeconds int) (*model.DailyStat, *apperrors.APIError) {
	if focusSeconds < 0 {
		return nil, apperrors.Validation(apperrors.FieldErrors{
			"focusTime": {"focusTime must be greater than or equal to 0"},
		})
	}

	now := s.clock.Now().UTC()
	stat, err := s.statsRepo.AddFocusTime(ctx, uuid.NewString(), userID, now, focusSeconds, now)
	if err != nil {
		return nil, apperrors.Internal("failed to save stats")
	}
	return stat, nil
}

func (s *StatsService) Summary(ctx context.Context, userID string) (*SummaryView, *apperrors.APIError) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}

	stats, err := s.statsRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to query stats")
	}

	totalSeconds := 0
	days := make(map[time.Time]struct{}, len(stats))
	lastActive := time.Time{}
	for _, stat := range stats {
		totalSeconds += stat.FocusTime
		days[model.StartOfDay(stat.Date)] = struct{}{}
		if stat.UpdatedAt.After(lastActive) {
			lastActive = stat.UpdatedAt
		}
	}

	now := s.clock.Now().UTC()
	if lastActive.IsZero() {
		lastActive = now
	}

	return &SummaryView{
		HoursSpent:    roundHours(totalSeconds),
		DaysAccessed:  len(days),
		CurrentStreak: countStreak(days, now),
		LastActive:    lastActive,
		Username:      user.Name,
		AvatarURL:     user.AvatarURL,
	}, nil
}

func (s *StatsService) Rankings(ctx context.Context, page, limit int) (*RankingsView, *apperrors.APIError) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxRankingsLimit {
		limit = defaultRankingsLimit
	}
	offset := (page - 1) * limit

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count users")
	}

	totals, err := s.statsRepo.ListFocusTotals(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("failed to query rankings")
	}

	userIDs := make([]string, 0, len(totals))
	for _, row := range totals {
		userIDs = append(userIDs, row.UserID)
	}

	datesByUser, err := s.statsRepo.ListDatesByUsers(ctx, userIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to query rankings")
	}

	now := s.clock.Now().UTC()
	users := make([]RankedUser, 0, len(totals))
	for _, row := range totals {
		days := make(map[time.Time]struct{}, len(datesByUser[row.UserID]))
		for _, date := range datesByUser[row.UserID] {
			days[model.StartOfDay(date)] = struct{}{}
		}
		users = append(users, RankedUser{
			ID:             row.UserID,
			Username:       row.Name,
			AvatarURL:      row.AvatarURL,
			TotalFocusTime: row.TotalFocusTime,
			Streak:         countStreak(days, now),
		})
	}

	return &RankingsView{Users: users, Total: total}, nil
}

// countStreak counts consecutive stat days ending today. A day without a
// row breaks the run, so a user with no row today has a streak of zero.
func countStreak(days map[time.Time]struct{}, now time.Time) int {
	streak := 0
	day := model.StartOfDay(now)
	for {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// roundHours converts seconds to hours rounded to one decimal.
func roundHours(seconds int) float64 {
	return math.Round(float64(seconds)/3600*10) / 10
}
