package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/dev-logger/dev-logger/internal/auth"
	"github.com/dev-logger/dev-logger/internal/db"
	apperrors "github.com/dev-logger/dev-logger/internal/errors"
	"github.com/dev-logger/dev-logger/internal/github"
	"github.com/dev-logger/dev-logger/internal/summarize"
)

// Handler holds the dependencies shared by all API endpoints.
type Handler struct {
	store      db.Store
	provider   *auth.GitHubProvider
	tokens     *auth.TokenService
	summarizer *summarize.Client
	cache      *github.CommitCache
	logger     *logrus.Logger
	validate   *validator.Validate

	loc           *time.Location
	defaultLocale string
	githubOpts    []github.ClientOption
	secureCookies bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLocation sets the time zone reports are computed in.
func WithLocation(loc *time.Location) HandlerOption {
	return func(h *Handler) {
		h.loc = loc
	}
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(code string) HandlerOption {
	return func(h *Handler) {
		h.defaultLocale = code
	}
}

// WithGitHubOptions forwards options to the per-request GitHub clients,
// used by tests to point them at a local server.
func WithGitHubOptions(opts ...github.ClientOption) HandlerOption {
	return func(h *Handler) {
		h.githubOpts = opts
	}
}

// WithSecureCookies marks session cookies as Secure (HTTPS deployments).
func WithSecureCookies(secure bool) HandlerOption {
	return func(h *Handler) {
		h.secureCookies = secure
	}
}

func NewHandler(store db.Store, provider *auth.GitHubProvider, tokens *auth.TokenService, summarizer *summarize.Client, cache *github.CommitCache, logger *logrus.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:         store,
		provider:      provider,
		tokens:        tokens,
		summarizer:    summarizer,
		cache:         cache,
		logger:        logger,
		validate:      validator.New(),
		loc:           time.UTC,
		defaultLocale: "pt-BR",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondWithAppError maps the typed error taxonomy onto HTTP statuses and
// surfaces the error type as a machine-readable code.
func respondWithAppError(c *gin.Context, err *apperrors.AppError) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsInvalidInput(err):
		status = http.StatusBadRequest
	case apperrors.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case apperrors.IsTokenNotConfigured(err):
		status = http.StatusPreconditionFailed
	}
	c.JSON(status, ErrorResponse{Error: err.Message, Code: string(err.Type)})
}
