package github

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dev-logger/dev-logger/internal/models"
)

// keepWindow bounds how long an unused cache entry stays eligible for
// background refresh before being dropped.
const keepWindow = 30 * time.Minute

// FetchFunc loads the commits for one cached window.
type FetchFunc func(ctx context.Context) ([]models.Commit, error)

type cacheEntry struct {
	commits   []models.Commit
	fetchedAt time.Time
	lastUsed  time.Time
	fetch     FetchFunc
}

// CommitCache is a small TTL cache of commit windows keyed by
// repository+month. Report requests read through it; StartRefresh re-fetches
// recently used windows on a fixed interval so repeated report views don't
// hammer the GitHub API.
type CommitCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*cacheEntry
	logger  *logrus.Logger
}

func NewCommitCache(ttl time.Duration, logger *logrus.Logger) *CommitCache {
	return &CommitCache{
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
		logger:  logger,
	}
}

// GetOrFetch returns the cached commits for key if they are fresh,
// otherwise calls fetch and caches the result. Failed fetches are not
// cached; a stale entry is never served in place of an error.
func (c *CommitCache) GetOrFetch(ctx context.Context, key string, fetch FetchFunc) ([]models.Commit, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && time.Since(entry.fetchedAt) < c.ttl {
		entry.lastUsed = time.Now()
		commits := entry.commits
		c.mu.Unlock()
		return commits, nil
	}
	c.mu.Unlock()

	commits, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{
		commits:   commits,
		fetchedAt: time.Now(),
		lastUsed:  time.Now(),
		fetch:     fetch,
	}
	c.mu.Unlock()

	return commits, nil
}

// StartRefresh runs the periodic re-fetch loop until ctx is cancelled.
// Each tick refreshes stale entries that were used recently and evicts
// entries nobody has asked for within the keep window.
func (c *CommitCache) StartRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.refresh(ctx)
		case <-ctx.Done():
			c.logger.Info("Stopping commit refresh loop")
			return
		}
	}
}

func (c *CommitCache) refresh(ctx context.Context) {
	c.mu.Lock()
	type job struct {
		key   string
		fetch FetchFunc
	}
	var jobs []job
	for key, entry := range c.entries {
		if time.Since(entry.lastUsed) > keepWindow {
			delete(c.entries, key)
			continue
		}
		if time.Since(entry.fetchedAt) >= c.ttl {
			jobs = append(jobs, job{key: key, fetch: entry.fetch})
		}
	}
	c.mu.Unlock()

	for _, j := range jobs {
		commits, err := j.fetch(ctx)
		if err != nil {
			c.logger.WithField("key", j.key).WithError(err).Warn("Background commit refresh failed")
			continue
		}

		c.mu.Lock()
		if entry, ok := c.entries[j.key]; ok {
			entry.commits = commits
			entry.fetchedAt = time.Now()
		}
		c.mu.Unlock()
	}
}
