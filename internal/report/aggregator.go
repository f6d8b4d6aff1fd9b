package report

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dev-logger/dev-logger/internal/models"
)

// Entry is one calendar day's aggregated view of hours and commits.
// Entries are ephemeral: computed per request, never persisted.
type Entry struct {
	Date        time.Time       `json:"date"`
	IsWorkDay   bool            `json:"is_work_day"`
	HoursWorked float64         `json:"hours_worked"`
	Commits     []models.Commit `json:"commits"`
}

// Report is a whole month of entries in ascending calendar order, plus the
// non-fatal per-repository fetch errors collected by the caller.
type Report struct {
	Year         int       `json:"year"`
	Month        time.Month `json:"month"`
	Distributed  bool      `json:"distributed"`
	Entries      []Entry   `json:"entries"`
	TotalHours   float64   `json:"total_hours"`
	TotalCommits int       `json:"total_commits"`
	Errors       []string  `json:"errors,omitempty"`
}

// Aggregator turns a commit list and a schedule into daily report entries.
// It holds no state across calls; the logger is used for data-integrity
// warnings (skipped commits, clamped hours).
type Aggregator struct {
	logger *logrus.Logger
}

func NewAggregator(logger *logrus.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// DateKey is the canonical per-day bucket key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// GroupByDay buckets commits by the calendar date of their author timestamp
// in loc (direct mode). Commits inside a day are ordered by timestamp
// ascending. Commits without a usable date are skipped with a warning and
// appear in no bucket.
func (a *Aggregator) GroupByDay(commits []models.Commit, loc *time.Location) map[string][]models.Commit {
	groups := make(map[string][]models.Commit)
	for _, commit := range commits {
		if commit.AuthorDate.IsZero() {
			a.logger.WithFields(logrus.Fields{
				"sha":        commit.SHA,
				"repository": commit.Repository,
			}).Warn("Skipping commit with missing author date")
			continue
		}
		key := DateKey(commit.AuthorDate.In(loc))
		groups[key] = append(groups[key], commit)
	}

	for key := range groups {
		day := groups[key]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].AuthorDate.Before(day[j].AuthorDate)
		})
	}

	return groups
}

// WorkingDays returns the month's working days in ascending calendar order.
func (a *Aggregator) WorkingDays(year int, month time.Month, schedule *Schedule, loc *time.Location) []time.Time {
	var days []time.Time
	for _, date := range monthDays(year, month, loc) {
		if schedule.Day(date.Weekday()).IsWorkDay {
			days = append(days, date)
		}
	}
	return days
}

// Redistribute assigns commits to working days round-robin, ignoring their
// true dates (spread mode). Commits are flattened oldest-first before
// assignment so early-month commits land on early working days; commit i
// goes to workingDays[i mod N]. With no working days every bucket is empty,
// which is a valid (all-zero) report rather than an error.
func (a *Aggregator) Redistribute(commits []models.Commit, workingDays []time.Time) map[string][]models.Commit {
	groups := make(map[string][]models.Commit)
	if len(workingDays) == 0 || len(commits) == 0 {
		return groups
	}

	flat := make([]models.Commit, 0, len(commits))
	for _, commit := range commits {
		if commit.AuthorDate.IsZero() {
			a.logger.WithFields(logrus.Fields{
				"sha":        commit.SHA,
				"repository": commit.Repository,
			}).Warn("Skipping commit with missing author date")
			continue
		}
		flat = append(flat, commit)
	}
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].AuthorDate.Before(flat[j].AuthorDate)
	})

	for i, commit := range flat {
		key := DateKey(workingDays[i%len(workingDays)])
		groups[key] = append(groups[key], commit)
	}

	return groups
}

// MonthReport assembles one Entry per calendar day of the target month, in
// ascending order. Non-working days are included with zero hours so CSV
// exports cover the full month. Hours come from the schedule alone; commit
// placement comes from direct grouping or, when distribute is set, from
// round-robin redistribution.
func (a *Aggregator) MonthReport(year int, month time.Month, schedule *Schedule, commits []models.Commit, distribute bool, loc *time.Location) *Report {
	var groups map[string][]models.Commit
	if distribute {
		groups = a.Redistribute(commits, a.WorkingDays(year, month, schedule, loc))
	} else {
		groups = a.GroupByDay(commits, loc)
	}

	rep := &Report{
		Year:        year,
		Month:       month,
		Distributed: distribute,
	}

	for _, date := range monthDays(year, month, loc) {
		day := schedule.Day(date.Weekday())

		hours, err := HoursForDay(day)
		if err != nil {
			a.logger.WithFields(logrus.Fields{
				"date":       DateKey(date),
				"start_time": day.StartTime,
				"end_time":   day.EndTime,
			}).WithError(err).Warn("Invalid schedule entry reached report time, clamping hours to 0")
		}

		entry := Entry{
			Date:        date,
			IsWorkDay:   day.IsWorkDay,
			HoursWorked: hours,
			Commits:     groups[DateKey(date)],
		}
		rep.Entries = append(rep.Entries, entry)
		rep.TotalHours += entry.HoursWorked
		rep.TotalCommits += len(entry.Commits)
	}

	return rep
}

func monthDays(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	var days []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
