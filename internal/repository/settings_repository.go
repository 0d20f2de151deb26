package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/anypeace-oss/jeda/internal/model"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetByUserID(ctx context.Context, userID string) (*model.Settings, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, pomodoro_time, short_break_time, long_break_time,
		        auto_start_breaks, auto_start_pomodoros, long_break_interval,
		        pomodoro_color, short_break_color, long_break_color,
		        background_type, background_image,
		        volume, alarm_sound, backsound, alarm_repeat,
		        created_at, updated_at
		 FROM settings
		 WHERE user_id = ?`,
		userID,
	)
	return scanSettings(row)
}

// Upsert stores the full settings record for a user, replacing any existing
// row. The row keeps its original id and created_at on replace.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *model.Settings) error {
	now := settings.UpdatedAt.UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO settings (
			id, user_id, pomodoro_time, short_break_time, long_break_time,
			auto_start_breaks, auto_start_pomodoros, long_break_interval,
			pomodoro_color, short_break_color, long_break_color,
			background_type, background_image,
			volume, alarm_sound, backsound, alarm_repeat,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			pomodoro_time = excluded.pomodoro_time,
			short_break_time = excluded.short_break_time,
			long_break_time = excluded.long_break_time,
			auto_start_breaks = excluded.auto_start_breaks,
			auto_start_pomodoros = excluded.auto_start_pomodoros,
			long_break_interval = excluded.long_break_interval,
			pomodoro_color = excluded.pomodoro_color,
			short_break_color = excluded.short_break_color,
			long_break_color = excluded.long_break_color,
			background_type = excluded.background_type,
			background_image = excluded.background_image,
			volume = excluded.volume,
			alarm_sound = excluded.alarm_sound,
			backsound = excluded.backsound,
			alarm_repeat = excluded.alarm_repeat,
			updated_at = excluded.updated_at`,
		settings.ID,
		settings.UserID,
		settings.PomodoroTime,
		settings.ShortBreakTime,
		settings.LongBreakTime,
		settings.AutoStartBreaks,
		settings.AutoStartPomodoros,
		settings.LongBreakInterval,
		settings.PomodoroColor,
		settings.ShortBreakColor,
		settings.LongBreakColor,
		settings.BackgroundType,
		settings.BackgroundImage,
		settings.Volume,
		settings.AlarmSound,
		settings.Backsound,
		settings.AlarmRepeat,
		settings.CreatedAt.UTC().Format(time.RFC3339Nano),
		now,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

func scanSettings(s scanner) (*model.Settings, error) {
	var settings model.Settings
	var createdAt string
	var updatedAt string
	err := s.Scan(
		&settings.ID,
		&settings.UserID,
		&settings.PomodoroTime,
		&settings.ShortBreakTime,
		&settings.LongBreakTime,
		&settings.AutoStartBreaks,
		&settings.AutoStartPomodoros,
		&settings.LongBreakInterval,
		&settings.PomodoroColor,
		&settings.ShortBreakColor,
		&settings.LongBreakColor,
		&settings.BackgroundType,
		&settings.BackgroundImage,
		&settings.Volume,
		&settings.AlarmSound,
		&settings.Backsound,
		&settings.AlarmRepeat,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan settings: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse settings created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse settings updated_at: %w", err)
	}
	settings.CreatedAt = parsedCreatedAt
	settings.UpdatedAt = parsedUpdatedAt

	return &settings, nil
}
