package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anypeace-oss/jeda/internal/middleware"
	"github.com/anypeace-oss/jeda/internal/model"
	"github.com/anypeace-oss/jeda/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

// settingsPayload is the full settings surface exchanged with clients.
// Bookkeeping fields (id, userId, timestamps) never cross the wire.
type settingsPayload struct {
	PomodoroTime       int     `json:"pomodoroTime"`
	ShortBreakTime     int     `json:"shortBreakTime"`
	LongBreakTime      int     `json:"longBreakTime"`
	AutoStartBreaks    bool    `json:"autoStartBreaks"`
	AutoStartPomodoros bool    `json:"autoStartPomodoros"`
	LongBreakInterval  int     `json:"longBreakInterval"`
	PomodoroColor      string  `json:"pomodoroColor"`
	ShortBreakColor    string  `json:"shortBreakColor"`
	LongBreakColor     string  `json:"longBreakColor"`
	BackgroundType     string  `json:"backgroundType"`
	BackgroundImage    string  `json:"backgroundImage"`
	Volume             float64 `json:"volume"`
	AlarmSound         string  `json:"alarmSound"`
	Backsound          string  `json:"backsound"`
	AlarmRepeat        int     `json:"alarmRepeat"`
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
		})
		return
	}

	settings, apiErr := h.settingsService.Get(c.Request.Context(), userID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, toSettingsPayload(settings))
}

// Update treats the body as a full replacement; there are no partial
// updates.
func (h *SettingsHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": gin.H{"code": "unauthorized", "message": "unauthorized"},
		})
		return
	}

	var req settingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	stored, apiErr := h.settingsService.Update(c.Request.Context(), userID, model.Settings{
		PomodoroTime:       req.PomodoroTime,
		ShortBreakTime:     req.ShortBreakTime,
		LongBreakTime:      req.LongBreakTime,
		AutoStartBreaks:    req.AutoStartBreaks,
		AutoStartPomodoros: req.AutoStartPomodoros,
		LongBreakInterval:  req.LongBreakInterval,
		PomodoroColor:      req.PomodoroColor,
		ShortBreakColor:    req.ShortBreakColor,
		LongBreakColor:     req.LongBreakColor,
		BackgroundType:     req.BackgroundType,
		BackgroundImage:    req.BackgroundImage,
		Volume:             req.Volume,
		AlarmSound:         req.AlarmSound,
		Backsound:          req.Backsound,
		AlarmRepeat:        req.AlarmRepeat,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, toSettingsPayload(stored))
}

func toSettingsPayload(settings *model.Settings) settingsPayload {
	return settingsPayload{
		PomodoroTime:       settings.PomodoroTime,
		ShortBreakTime:     settings.ShortBreakTime,
		LongBreakTime:      settings.LongBreakTime,
		AutoStartBreaks:    settings.AutoStartBreaks,
		AutoStartPomodoros: settings.AutoStartPomodoros,
		LongBreakInterval:  settings.LongBreakInterval,
		PomodoroColor:      settings.PomodoroColor,
		ShortBreakColor:    settings.ShortBreakColor,
		LongBreakColor:     settings.LongBreakColor,
		BackgroundType:     settings.BackgroundType,
		BackgroundImage:    settings.BackgroundImage,
		Volume:             settings.Volume,
		AlarmSound:         settings.AlarmSound,
		Backsound:          settings.Backsound,
		AlarmRepeat:        settings.AlarmRepeat,
	}
}
