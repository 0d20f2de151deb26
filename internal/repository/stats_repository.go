package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/anypeace-oss/jeda/internal/model"
)

type StatsRepository struct {
	db *sql.DB
}

// FocusTotal is one rankings row: a user with their lifetime focus seconds.
type FocusTotal struct {
	UserID         string
	Name           string
	AvatarURL      string
	TotalFocusTime int
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AddFocusTime accumulates delta seconds into the (userID, day) row in a
// single atomic statement. Concurrent callers for the same user and day
// both land their increments; neither can create a duplicate row.
func (r *StatsRepository) AddFocusTime(
	ctx context.Context,
	id string,
	userID string,
	day time.Time,
	delta int,
	now time.Time,
) (*model.DailyStat, error) {
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO stats (id, user_id, date, focus_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			focus_time = focus_time + excluded.focus_time,
			updated_at = excluded.updated_at
		 RETURNING id, user_id, date, focus_time, created_at, updated_at`,
		id,
		userID,
		model.StartOfDay(day).Format(time.RFC3339Nano),
		delta,
		now.UTC().Format(time.RFC3339Nano),
		now.UTC().Format(time.RFC3339Nano),
	)
	stat, err := scanDailyStat(row)
	if err != nil {
		return nil, fmt.Errorf("add focus time: %w", err)
	}
	return stat, nil
}

func (r *StatsRepository) ListByUser(ctx context.Context, userID string) ([]model.DailyStat, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, date, focus_time, created_at, updated_at
		 FROM stats
		 WHERE user_id = ?
		 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	stats := make([]model.DailyStat, 0)
	for rows.Next() {
		stat, scanErr := scanDailyStat(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		stats = append(stats, *stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}

	return stats, nil
}

// ListFocusTotals returns users ordered by lifetime focus seconds,
// descending, for the rankings page.
func (r *StatsRepository) ListFocusTotals(ctx context.Context, limit, offset int) ([]FocusTotal, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT u.id, u.name, u.avatar_url, COALESCE(SUM(s.focus_time), 0) AS total
		 FROM users u
		 LEFT JOIN stats s ON s.user_id = u.id
		 GROUP BY u.id, u.name, u.avatar_url
		 ORDER BY total DESC, u.id
		 LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list focus totals: %w", err)
	}
	defer rows.Close()

	totals := make([]FocusTotal, 0, limit)
	for rows.Next() {
		var total FocusTotal
		if err := rows.Scan(&total.UserID, &total.Name, &total.AvatarURL, &total.TotalFocusTime); err != nil {
			return nil, fmt.Errorf("scan focus total: %w", err)
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate focus totals: %w", err)
	}

	return totals, nil
}

// ListDatesByUsers returns the stat days (UTC midnight) recorded for each of
// the given users, for streak computation.
func (r *StatsRepository) ListDatesByUsers(ctx context.Context, userIDs []string) (map[string][]time.Time, error) {
	dates := make(map[string][]time.Time, len(userIDs))
	if len(userIDs) == 0 {
		return dates, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(userIDs)), ",")
	args := make([]interface{}, 0, len(userIDs))
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(
		ctx,
		`SELECT user_id, date FROM stats WHERE user_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list stat dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var rawDate string
		if err := rows.Scan(&userID, &rawDate); err != nil {
			return nil, fmt.Errorf("scan stat date: %w", err)
		}
		date, err := parseTime(rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse stat date: %w", err)
		}
		dates[userID] = append(dates[userID], date)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stat dates: %w", err)
	}

	return dates, nil
}

func scanDailyStat(s scanner) (*model.DailyStat, error) {
	var stat model.DailyStat
	var date string
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&stat.ID,
		&stat.UserID,
		&date,
		&stat.FocusTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan daily stat: %w", err)
	}

	parsedDate, err := parseTime(date)
	if err != nil {
		return nil, fmt.Errorf("parse stat date: %w", err)
	}
	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse stat created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse stat updated_at: %w", err)
	}
	stat.Date = parsedDate
	stat.CreatedAt = parsedCreatedAt
	stat.UpdatedAt = parsedUpdatedAt

	return &stat, nil
}
