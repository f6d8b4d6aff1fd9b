package report

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-logger/dev-logger/internal/models"
)

func testAggregator() *Aggregator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAggregator(logger)
}

func makeCommit(sha, message string, date time.Time) models.Commit {
	return models.Commit{
		SHA:        sha,
		Message:    message,
		AuthorDate: date,
		Repository: "repo",
	}
}

func TestGroupByDay(t *testing.T) {
	a := testAggregator()

	t.Run("groups by calendar date with ascending order inside a day", func(t *testing.T) {
		commits := []models.Commit{
			makeCommit("c", "third", time.Date(2024, 3, 19, 15, 0, 0, 0, time.UTC)),
			makeCommit("a", "first", time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC)),
			makeCommit("b", "second", time.Date(2024, 3, 19, 10, 30, 0, 0, time.UTC)),
			makeCommit("d", "next day", time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)),
		}

		groups := a.GroupByDay(commits, time.UTC)
		require.Len(t, groups, 2)
		require.Len(t, groups["2024-03-19"], 3)
		assert.Equal(t, "first", groups["2024-03-19"][0].Message)
		assert.Equal(t, "second", groups["2024-03-19"][1].Message)
		assert.Equal(t, "third", groups["2024-03-19"][2].Message)
		assert.Len(t, groups["2024-03-20"], 1)
	})

	t.Run("is idempotent", func(t *testing.T) {
		commits := []models.Commit{
			makeCommit("a", "m1", time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC)),
			makeCommit("b", "m2", time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)),
			makeCommit("c", "m3", time.Date(2024, 3, 19, 12, 0, 0, 0, time.UTC)),
		}

		first := a.GroupByDay(commits, time.UTC)

		var flattened []models.Commit
		for _, day := range first {
			flattened = append(flattened, day...)
		}
		second := a.GroupByDay(flattened, time.UTC)

		assert.Equal(t, first, second)
	})

	t.Run("skips commits without a usable date", func(t *testing.T) {
		commits := []models.Commit{
			makeCommit("a", "good", time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC)),
			{SHA: "b", Message: "no date", Repository: "repo"},
		}

		groups := a.GroupByDay(commits, time.UTC)
		require.Len(t, groups, 1)
		assert.Len(t, groups["2024-03-19"], 1)
	})
}

func TestWorkingDays(t *testing.T) {
	a := testAggregator()
	schedule := weekSchedule(t, "09:00", "18:00")

	// March 2023 starts on a Wednesday: 23 weekdays.
	days := a.WorkingDays(2023, time.March, schedule, time.UTC)
	require.Len(t, days, 23)
	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Before(days[i]))
	}
	for _, day := range days {
		assert.NotEqual(t, time.Saturday, day.Weekday())
		assert.NotEqual(t, time.Sunday, day.Weekday())
	}
}

func TestRedistribute(t *testing.T) {
	a := testAggregator()
	schedule := weekSchedule(t, "09:00", "18:00")

	t.Run("spreads commits evenly with no loss or duplication", func(t *testing.T) {
		workingDays := a.WorkingDays(2023, time.March, schedule, time.UTC)
		require.Len(t, workingDays, 23)

		const commitCount = 100
		commits := make([]models.Commit, 0, commitCount)
		for i := 0; i < commitCount; i++ {
			commits = append(commits, makeCommit(
				fmt.Sprintf("sha-%03d", i),
				fmt.Sprintf("commit %d", i),
				time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i)*time.Hour),
			))
		}

		groups := a.Redistribute(commits, workingDays)

		total := 0
		seen := make(map[string]int)
		for _, day := range workingDays {
			bucket := groups[DateKey(day)]
			assert.Contains(t, []int{4, 5}, len(bucket), "day %s", DateKey(day))
			total += len(bucket)
			for _, commit := range bucket {
				seen[commit.SHA]++
			}
		}
		assert.Equal(t, commitCount, total)
		assert.Len(t, seen, commitCount)
		for sha, count := range seen {
			assert.Equal(t, 1, count, sha)
		}
	})

	t.Run("flattens oldest first", func(t *testing.T) {
		workingDays := a.WorkingDays(2023, time.March, schedule, time.UTC)
		commits := []models.Commit{
			makeCommit("new", "newest", time.Date(2023, 3, 28, 12, 0, 0, 0, time.UTC)),
			makeCommit("old", "oldest", time.Date(2023, 3, 2, 12, 0, 0, 0, time.UTC)),
		}

		groups := a.Redistribute(commits, workingDays)
		first := groups[DateKey(workingDays[0])]
		require.Len(t, first, 1)
		assert.Equal(t, "old", first[0].SHA)
	})

	t.Run("no working days yields empty buckets without error", func(t *testing.T) {
		commits := []models.Commit{
			makeCommit("a", "m", time.Date(2023, 3, 2, 12, 0, 0, 0, time.UTC)),
		}
		groups := a.Redistribute(commits, nil)
		assert.Empty(t, groups)
	})
}

func TestMonthReport(t *testing.T) {
	a := testAggregator()

	t.Run("tuesday scenario", func(t *testing.T) {
		schedule := weekSchedule(t, "07:00", "17:00")

		// 2024-03-19 is a Tuesday.
		commits := []models.Commit{
			makeCommit("a", "fix bug", time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC)),
			makeCommit("b", "add feature", time.Date(2024, 3, 19, 10, 30, 0, 0, time.UTC)),
			makeCommit("c", "update docs", time.Date(2024, 3, 19, 15, 0, 0, 0, time.UTC)),
		}

		rep := a.MonthReport(2024, time.March, schedule, commits, false, time.UTC)
		require.Len(t, rep.Entries, 31)

		entry := rep.Entries[18]
		assert.Equal(t, "2024-03-19", DateKey(entry.Date))
		assert.True(t, entry.IsWorkDay)
		assert.Equal(t, 10.0, entry.HoursWorked)
		require.Len(t, entry.Commits, 3)
		assert.Equal(t, "fix bug", entry.Commits[0].Message)
		assert.Equal(t, "add feature", entry.Commits[1].Message)
		assert.Equal(t, "update docs", entry.Commits[2].Message)

		obs := Observation(entry, PtBR)
		assert.Equal(t, "08:00 - repo: fix bug\n10:30 - repo: add feature\n15:00 - repo: update docs", obs)
	})

	t.Run("non-working weekday reports zero hours regardless of commits", func(t *testing.T) {
		days := models.DefaultWorkWeek()
		days[time.Tuesday].IsWorkDay = false
		days[time.Tuesday].StartTime = ""
		days[time.Tuesday].EndTime = ""
		schedule, err := NewSchedule(days)
		require.NoError(t, err)

		commits := []models.Commit{
			makeCommit("a", "worked anyway", time.Date(2024, 3, 19, 8, 0, 0, 0, time.UTC)),
		}

		rep := a.MonthReport(2024, time.March, schedule, commits, false, time.UTC)
		entry := rep.Entries[18]
		assert.False(t, entry.IsWorkDay)
		assert.Zero(t, entry.HoursWorked)
		assert.Len(t, entry.Commits, 1)
	})

	t.Run("entries ascend and cover the whole month", func(t *testing.T) {
		schedule := weekSchedule(t, "09:00", "18:00")
		rep := a.MonthReport(2024, time.February, schedule, nil, false, time.UTC)
		require.Len(t, rep.Entries, 29)
		for i := 1; i < len(rep.Entries); i++ {
			assert.True(t, rep.Entries[i-1].Date.Before(rep.Entries[i].Date))
		}
	})

	t.Run("invalid schedule data clamps hours instead of failing", func(t *testing.T) {
		days := models.DefaultWorkWeek()
		days[time.Monday].StartTime = "18:00"
		days[time.Monday].EndTime = "09:00"
		schedule, err := NewSchedule(days)
		require.NoError(t, err)

		rep := a.MonthReport(2024, time.March, schedule, nil, false, time.UTC)
		// 2024-03-04 is a Monday.
		entry := rep.Entries[3]
		assert.Equal(t, time.Monday, entry.Date.Weekday())
		assert.Zero(t, entry.HoursWorked)
	})

	t.Run("spread mode totals", func(t *testing.T) {
		schedule := weekSchedule(t, "09:00", "18:00")
		commits := make([]models.Commit, 0, 10)
		for i := 0; i < 10; i++ {
			commits = append(commits, makeCommit(
				fmt.Sprintf("s%d", i), "m",
				time.Date(2023, 3, 25, 10, 0, 0, 0, time.UTC),
			))
		}

		rep := a.MonthReport(2023, time.March, schedule, commits, true, time.UTC)
		assert.True(t, rep.Distributed)
		assert.Equal(t, 10, rep.TotalCommits)

		// All commits land on working days even though the 25th is a Saturday.
		for _, entry := range rep.Entries {
			if !entry.IsWorkDay {
				assert.Empty(t, entry.Commits, DateKey(entry.Date))
			}
		}
	})

	t.Run("spread mode with no working days", func(t *testing.T) {
		days := make([]models.WorkDay, 7)
		for d := time.Sunday; d <= time.Saturday; d++ {
			days[d] = models.WorkDay{DayOfWeek: d}
		}
		schedule, err := NewSchedule(days)
		require.NoError(t, err)

		commits := []models.Commit{
			makeCommit("a", "m", time.Date(2023, 3, 2, 12, 0, 0, 0, time.UTC)),
		}

		rep := a.MonthReport(2023, time.March, schedule, commits, true, time.UTC)
		assert.Zero(t, rep.TotalHours)
		assert.Zero(t, rep.TotalCommits)
		for _, entry := range rep.Entries {
			assert.Empty(t, entry.Commits)
		}
	})
}
