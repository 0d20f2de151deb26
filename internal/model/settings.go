package model

import "time"

const (
	BackgroundTypeColor = "color"
	BackgroundTypeImage = "image"
)

const defaultBackgroundImage = "https://res.cloudinary.com/dxurnpbrc/image/upload/v1755188916/6_si5cfa.png"

// Settings is the per-user timer configuration. Exactly one row per user;
// a user without a row is served DefaultSettings instead.
type Settings struct {
	ID                 string    `json:"-"`
	UserID             string    `json:"-"`
	PomodoroTime       int       `json:"pomodoroTime"`
	ShortBreakTime     int       `json:"shortBreakTime"`
	LongBreakTime      int       `json:"longBreakTime"`
	AutoStartBreaks    bool      `json:"autoStartBreaks"`
	AutoStartPomodoros bool      `json:"autoStartPomodoros"`
	LongBreakInterval  int       `json:"longBreakInterval"`
	PomodoroColor      string    `json:"pomodoroColor"`
	ShortBreakColor    string    `json:"shortBreakColor"`
	LongBreakColor     string    `json:"longBreakColor"`
	BackgroundType     string    `json:"backgroundType"`
	BackgroundImage    string    `json:"backgroundImage"`
	Volume             float64   `json:"volume"`
	AlarmSound         string    `json:"alarmSound"`
	Backsound          string    `json:"backsound"`
	AlarmRepeat        int       `json:"alarmRepeat"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

// DefaultSettings returns the documented default record served when a user
// has no stored settings row. Durations are minutes.
func DefaultSettings() Settings {
	return Settings{
		PomodoroTime:       25,
		ShortBreakTime:     5,
		LongBreakTime:      15,
		AutoStartBreaks:    false,
		AutoStartPomodoros: false,
		LongBreakInterval:  4,
		PomodoroColor:      "oklch(0.3635 0.0554 277.8)",
		ShortBreakColor:    "oklch(0.5406 0.067 196.69)",
		LongBreakColor:     "oklch(0.4703 0.0888 247.87)",
		BackgroundType:     BackgroundTypeImage,
		BackgroundImage:    defaultBackgroundImage,
		Volume:             1,
		AlarmSound:         "alarm-bell.mp3",
		Backsound:          "",
		AlarmRepeat:        1,
	}
}
