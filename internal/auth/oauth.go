package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/xid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubUser is the slice of the GitHub /user response we care about.
type GitHubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// GitHubProvider wraps the GitHub authorization-code flow. The exchanged
// access token is kept so it can be stored as the user's delegated token
// for commit fetches; it is never sent to the browser.
type GitHubProvider struct {
	config  *oauth2.Config
	userAPI string
}

// ProviderOption configures a GitHubProvider.
type ProviderOption func(*GitHubProvider)

// WithUserAPI overrides the /user endpoint, used by tests.
func WithUserAPI(url string) ProviderOption {
	return func(p *GitHubProvider) {
		p.userAPI = url
	}
}

// NewGitHubProvider creates a provider for the given OAuth app credentials.
// The repo scope is required to read commits from the user's private
// repositories; read:user and user:email cover the profile upsert.
func NewGitHubProvider(clientID, clientSecret, callbackURL string, opts ...ProviderOption) *GitHubProvider {
	p := &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user", "user:email", "repo"},
			Endpoint:     github.Endpoint,
		},
		userAPI: "https://api.github.com/user",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewState returns a random state token for CSRF protection of the flow.
func NewState() string {
	return xid.New().String()
}

// AuthURL returns the GitHub authorization URL for the given state.
func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the callback code for the user's profile and access
// token.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*GitHubUser, string, error) {
	oauthToken, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange OAuth code: %w", err)
	}

	client := p.config.Client(ctx, oauthToken)
	resp, err := client.Get(p.userAPI)
	if err != nil {
		return nil, "", fmt.Errorf("failed to call GitHub /user API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("GitHub /user API returned status %d", resp.StatusCode)
	}

	var ghUser GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
		return nil, "", fmt.Errorf("failed to decode GitHub /user response: %w", err)
	}
	if ghUser.ID == 0 {
		return nil, "", fmt.Errorf("GitHub returned an invalid user")
	}

	return &ghUser, oauthToken.AccessToken, nil
}
