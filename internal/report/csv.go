package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteCSV serializes the report's entries as {date, weekday, observations}
// rows in ascending calendar order. encoding/csv applies RFC 4180 quoting,
// so embedded commas, quotes and newlines in commit messages survive a
// round-trip through any standard CSV parser.
func WriteCSV(w io.Writer, rep *Report, locale *Locale) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(locale.CSVHeader[:]); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, entry := range rep.Entries {
		record := []string{
			entry.Date.Format(locale.DateFormat),
			locale.WeekdayName(entry.Date.Weekday()),
			Observation(entry, locale),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Observation renders a day's commit list as newline-joined
// "HH:MM - repository: message" lines. The timestamp is each commit's true
// author time, even in spread mode where placement ignores it. Non-working
// days are labelled as such before any commits assigned to them.
func Observation(entry Entry, locale *Locale) string {
	var lines []string
	if !entry.IsWorkDay {
		lines = append(lines, locale.NonWorkingDay)
	}
	for _, commit := range entry.Commits {
		lines = append(lines, fmt.Sprintf("%s - %s: %s",
			commit.AuthorDate.In(entry.Date.Location()).Format("15:04"),
			commit.Repository,
			commit.Message,
		))
	}
	return strings.Join(lines, "\n")
}

// Filename builds the export attachment name:
// relatorio[-distribuido]-YYYY-MM.csv
func Filename(year int, month time.Month, distributed bool) string {
	name := "relatorio"
	if distributed {
		name += "-distribuido"
	}
	return fmt.Sprintf("%s-%04d-%02d.csv", name, year, int(month))
}
