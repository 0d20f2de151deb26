package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/anypeace-oss/jeda/internal/errors"
	"github.com/anypeace-oss/jeda/internal/model"
	"github.com/anypeace-oss/jeda/internal/repository"
)

type SettingsService struct {
	repo *repository.SettingsRepository
}

func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the user's stored settings, or the default record when none
// exist. A read failure also degrades to defaults so the timer never sees
// a null settings state.
func (s *SettingsService) Get(ctx context.Context, userID string) (*model.Settings, *apperrors.APIError) {
	settings, err := s.repo.GetByUserID(ctx, userID)
	if err == repository.ErrNotFound {
		defaults := model.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		slog.Warn("settings read failed, serving defaults", "user_id", userID, "error", err)
		defaults := model.DefaultSettings()
		return &defaults, nil
	}
	return settings, nil
}

// Update stores the full settings payload for the user, replacing any
// existing row. There are no partial-update semantics.
func (s *SettingsService) Update(ctx context.Context, userID string, input model.Settings) (*model.Settings, *apperrors.APIError) {
	if fields := validateSettings(input); len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	now := time.Now().UTC()
	input.UserID = userID
	input.UpdatedAt = now

	existing, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		input.ID = existing.ID
		input.CreatedAt = existing.CreatedAt
	case err == repository.ErrNotFound:
		input.ID = uuid.NewString()
		input.CreatedAt = now
	default:
		return nil, apperrors.Internal("failed to query settings")
	}

	if err := s.repo.Upsert(ctx, &input); err != nil {
		return nil, apperrors.Internal("failed to save settings")
	}

	return &input, nil
}

func validateSettings(settings model.Settings) apperrors.FieldErrors {
	fields := apperrors.FieldErrors{}

	requirePositive := func(field string, value int) {
		if value < 1 {
			fields[field] = append(fields[field], fmt.Sprintf("%s must be a positive integer", field))
		}
	}
	requirePositive("pomodoroTime", settings.PomodoroTime)
	requirePositive("shortBreakTime", settings.ShortBreakTime)
	requirePositive("longBreakTime", settings.LongBreakTime)
	requirePositive("longBreakInterval", settings.LongBreakInterval)
	requirePositive("alarmRepeat", settings.AlarmRepeat)

	if settings.Volume < 0 || settings.Volume > 1 {
		fields["volume"] = append(fields["volume"], "volume must be between 0 and 1")
	}
	if settings.BackgroundType != model.BackgroundTypeColor && settings.BackgroundType != model.BackgroundTypeImage {
		fields["backgroundType"] = append(fields["backgroundType"], "backgroundType must be color or image")
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
