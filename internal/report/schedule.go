package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dev-logger/dev-logger/internal/models"
)

// Schedule is a project's weekly schedule as an explicit weekday mapping.
// Construction guarantees exactly one entry per weekday, so lookups never
// depend on the ordering of the persisted rows.
type Schedule struct {
	days [7]models.WorkDay
}

// NewSchedule builds a Schedule from persisted rows. It fails when the set
// does not cover all 7 weekdays exactly once. Time-ordering problems are
// deliberately not checked here: pre-existing bad data must not make a
// report unavailable (hours clamp to zero instead, see HoursForDay).
func NewSchedule(days []models.WorkDay) (*Schedule, error) {
	if len(days) != 7 {
		return nil, fmt.Errorf("schedule must have exactly 7 entries, got %d", len(days))
	}

	var s Schedule
	seen := [7]bool{}
	for _, day := range days {
		if day.DayOfWeek < time.Sunday || day.DayOfWeek > time.Saturday {
			return nil, fmt.Errorf("invalid day of week: %d", day.DayOfWeek)
		}
		if seen[day.DayOfWeek] {
			return nil, fmt.Errorf("duplicate entry for %s", day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true
		s.days[day.DayOfWeek] = day
	}

	return &s, nil
}

// Day returns the schedule entry for a weekday.
func (s *Schedule) Day(w time.Weekday) models.WorkDay {
	return s.days[w]
}

// Days returns the entries ordered Sunday through Saturday.
func (s *Schedule) Days() []models.WorkDay {
	return s.days[:]
}

// Validate applies the write-time invariants: every working day needs
// parseable times with start strictly before end. Schedules that fail here
// must be rejected before they are saved.
func (s *Schedule) Validate() error {
	for _, day := range s.days {
		if !day.IsWorkDay {
			continue
		}
		start, err := ParseClock(day.StartTime)
		if err != nil {
			return fmt.Errorf("%s: invalid start time: %w", day.DayOfWeek, err)
		}
		end, err := ParseClock(day.EndTime)
		if err != nil {
			return fmt.Errorf("%s: invalid end time: %w", day.DayOfWeek, err)
		}
		if end <= start {
			return fmt.Errorf("%s: end time %s must be after start time %s", day.DayOfWeek, day.EndTime, day.StartTime)
		}
	}
	return nil
}

// ParseClock parses an "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q (expected HH:MM)", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hours*60 + minutes, nil
}

// HoursForDay returns the nominal hours for one schedule entry. Hours are
// schedule-derived: a working day reports its full span even with no
// commits, and a non-working day reports zero regardless of activity.
//
// A non-nil error means the entry violates the start < end invariant that
// should have been enforced at write time; the returned hours are already
// clamped to zero so callers only need to log the condition.
func HoursForDay(day models.WorkDay) (float64, error) {
	if !day.IsWorkDay {
		return 0, nil
	}

	start, err := ParseClock(day.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(day.EndTime)
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, fmt.Errorf("end time %s is not after start time %s", day.EndTime, day.StartTime)
	}

	return float64(end-start) / 60.0, nil
}
