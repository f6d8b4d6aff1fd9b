package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dev-logger/dev-logger/internal/auth"
	"github.com/dev-logger/dev-logger/internal/github"
	"github.com/dev-logger/dev-logger/internal/summarize"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testJWTSecret = "test-secret-0123456789"

type testEnv struct {
	store  *MockStore
	router *gin.Engine
	tokens *auth.TokenService
	userID uuid.UUID
}

// newTestEnv wires a router with a mock store. The extra handler options
// let report tests point the GitHub client at a local httptest server.
func newTestEnv(t *testing.T, opts ...HandlerOption) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens, err := auth.NewTokenService(testJWTSecret, time.Hour)
	require.NoError(t, err)

	store := &MockStore{}
	provider := auth.NewGitHubProvider("client-id", "client-secret", "http://localhost/auth/github/callback")
	summarizer := summarize.NewClient("", "", logger)
	cache := github.NewCommitCache(time.Minute, logger)

	h := NewHandler(store, provider, tokens, summarizer, cache, logger, opts...)

	return &testEnv{
		store:  store,
		router: SetupRouter(h, tokens),
		tokens: tokens,
		userID: uuid.New(),
	}
}

// do performs an authenticated request against the test router.
func (e *testEnv) do(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	session, err := e.tokens.Generate(e.userID.String())
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: session})

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
