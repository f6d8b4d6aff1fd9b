package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-logger/dev-logger/internal/auth"
	apperrors "github.com/dev-logger/dev-logger/internal/errors"
	"github.com/dev-logger/dev-logger/internal/models"
)

const stateCookie = "oauth_state"

// Login starts the GitHub OAuth flow: store a random state in a short-lived
// cookie and redirect to GitHub's authorization page.
func (h *Handler) Login(c *gin.Context) {
	state := auth.NewState()
	c.SetCookie(stateCookie, state, 600, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusFound, h.provider.AuthURL(state))
}

// Callback completes the flow: verify the state, exchange the code, upsert
// the user with the delegated token, and issue the session cookie.
func (h *Handler) Callback(c *gin.Context) {
	state := c.Query("state")
	expected, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != expected {
		respondWithError(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		respondWithError(c, http.StatusBadRequest, "Missing OAuth code")
		return
	}

	ghUser, accessToken, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.WithError(err).Error("OAuth exchange failed")
		respondWithError(c, http.StatusBadGateway, "GitHub authentication failed")
		return
	}

	user := &models.User{
		GitHubID:    ghUser.ID,
		Login:       ghUser.Login,
		Name:        ghUser.Name,
		Email:       ghUser.Email,
		AvatarURL:   ghUser.AvatarURL,
		AccessToken: accessToken,
	}
	if err := h.store.UpsertUser(c.Request.Context(), user); err != nil {
		h.logger.WithError(err).Error("Failed to upsert user")
		respondWithError(c, http.StatusInternalServerError, "Failed to save user")
		return
	}

	session, err := h.tokens.Generate(user.ID.String())
	if err != nil {
		h.logger.WithError(err).Error("Failed to issue session token")
		respondWithError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	c.SetCookie(auth.SessionCookie, session, 0, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, user)
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		respondWithAppError(c, apperrors.NewUnauthorizedError("Authentication required", nil))
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load user")
		respondWithAppError(c, apperrors.NewInternalError("Failed to load user", err))
		return
	}
	if user == nil {
		respondWithAppError(c, apperrors.NewNotFoundError("User not found", nil))
		return
	}

	c.JSON(http.StatusOK, user)
}
