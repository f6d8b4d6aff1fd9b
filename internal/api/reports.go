package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/dev-logger/dev-logger/internal/auth"
	apperrors "github.com/dev-logger/dev-logger/internal/errors"
	"github.com/dev-logger/dev-logger/internal/github"
	"github.com/dev-logger/dev-logger/internal/models"
	"github.com/dev-logger/dev-logger/internal/report"
)

const monthLayout = "2006-01"

// maxConcurrentFetches bounds the parallel per-repository commit fetches.
const maxConcurrentFetches = 4

// GetReport returns the monthly report as JSON: one entry per calendar day
// ascending, plus the list of repositories whose fetch failed.
func (h *Handler) GetReport(c *gin.Context) {
	rep, ok := h.buildReport(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ExportReport returns the monthly report as a CSV attachment.
func (h *Handler) ExportReport(c *gin.Context) {
	improve := c.Query("improve") == "true"

	rep, ok := h.buildReport(c, improve)
	if !ok {
		return
	}

	locale := report.LocaleByCode(h.localeFor(c))
	filename := report.Filename(rep.Year, rep.Month, rep.Distributed)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Status(http.StatusOK)

	if err := report.WriteCSV(c.Writer, rep, locale); err != nil {
		h.logger.WithError(err).Error("Failed to write CSV export")
	}
}

// buildReport runs the shared report pipeline: resolve project and token,
// fetch commits for every repository (partial-result policy), and hand
// schedule plus commits to the aggregator. It writes the error response
// itself when the report cannot be produced at all.
func (h *Handler) buildReport(c *gin.Context, improve bool) (*report.Report, bool) {
	project, ok := h.loadProject(c)
	if !ok {
		return nil, false
	}

	year, month, ok := h.parseMonth(c)
	if !ok {
		return nil, false
	}
	distribute := c.Query("distribute") == "true"

	userID, _ := auth.UserID(c)
	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load user")
		respondWithError(c, http.StatusInternalServerError, "Failed to load user")
		return nil, false
	}
	if user == nil || user.AccessToken == "" {
		respondWithAppError(c, apperrors.NewTokenNotConfiguredError())
		return nil, false
	}

	days, err := h.store.GetSchedule(c.Request.Context(), project.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load schedule")
		respondWithError(c, http.StatusInternalServerError, "Failed to load schedule")
		return nil, false
	}
	schedule, err := report.NewSchedule(days)
	if err != nil {
		h.logger.WithError(err).Error("Stored schedule is malformed")
		respondWithError(c, http.StatusInternalServerError, "Project schedule is malformed")
		return nil, false
	}

	since := time.Date(year, month, 1, 0, 0, 0, 0, h.loc)
	until := since.AddDate(0, 1, 0)

	commits, fetchErrors := h.fetchCommits(c.Request.Context(), user.AccessToken, project.Repositories, since, until)

	if improve && h.summarizer.Enabled() {
		commits = h.summarizer.ImproveAll(c.Request.Context(), commits)
	}

	aggregator := report.NewAggregator(h.logger)
	rep := aggregator.MonthReport(year, month, schedule, commits, distribute, h.loc)
	rep.Errors = fetchErrors

	return rep, true
}

// fetchCommits loads commits for every repository concurrently. A failing
// repository contributes an error string and zero commits; it never aborts
// the other fetches (partial-result policy, no retry beyond the client's
// own transient backoff).
func (h *Handler) fetchCommits(ctx context.Context, token string, repos []models.Repository, since, until time.Time) ([]models.Commit, []string) {
	client := github.NewClient(token, h.logger, h.githubOpts...)

	var (
		mu          sync.Mutex
		commits     []models.Commit
		fetchErrors []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, repo := range repos {
		repo := repo
		g.Go(func() error {
			key := fmt.Sprintf("%s|%s|%s", repo.FullName(), since.Format(monthLayout), token[:min(len(token), 8)])
			repoCommits, err := h.cache.GetOrFetch(gctx, key, func(fctx context.Context) ([]models.Commit, error) {
				return client.ListCommits(fctx, repo.Owner, repo.Name, since, until)
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				h.logger.WithField("repository", repo.FullName()).WithError(err).Warn("Commit fetch failed, omitting repository from report")
				fetchErrors = append(fetchErrors, fmt.Sprintf("%s: %v", repo.FullName(), err))
				return nil
			}
			commits = append(commits, repoCommits...)
			return nil
		})
	}
	// The goroutines report per-repo failures through fetchErrors and
	// always return nil, so Wait cannot fail.
	_ = g.Wait()

	sort.Strings(fetchErrors)
	return commits, fetchErrors
}

func (h *Handler) parseMonth(c *gin.Context) (int, time.Month, bool) {
	raw := c.Query("month")
	if raw == "" {
		now := time.Now().In(h.loc)
		return now.Year(), now.Month(), true
	}

	parsed, err := time.ParseInLocation(monthLayout, raw, h.loc)
	if err != nil {
		respondWithError(c, http.StatusBadRequest, "Invalid month parameter (use YYYY-MM)")
		return 0, 0, false
	}
	return parsed.Year(), parsed.Month(), true
}

func (h *Handler) localeFor(c *gin.Context) string {
	if code := c.Query("locale"); code != "" {
		return code
	}
	return h.defaultLocale
}
