package models

import "time"

// WorkDay is one weekday's entry in a project's weekly schedule.
// StartTime and EndTime are wall-clock "HH:MM" strings; they are only
// meaningful when IsWorkDay is true.
type WorkDay struct {
	DayOfWeek time.Weekday `json:"day_of_week"`
	IsWorkDay bool         `json:"is_work_day"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
}

// DefaultWorkWeek returns the schedule seeded when a project is created:
// Monday through Friday 09:00-18:00, weekend off.
func DefaultWorkWeek() []WorkDay {
	days := make([]WorkDay, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		wd := WorkDay{DayOfWeek: d}
		if d != time.Sunday && d != time.Saturday {
			wd.IsWorkDay = true
			wd.StartTime = "09:00"
			wd.EndTime = "18:00"
		}
		days[d] = wd
	}
	return days
}
