package model

import "time"

// DailyStat accumulates focus seconds for one user on one calendar day.
// Date is always UTC midnight; (UserID, Date) is unique.
type DailyStat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	FocusTime int       `json:"focusTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StartOfDay truncates t to UTC midnight, the day boundary used for all
// daily stat rows and streak math.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
