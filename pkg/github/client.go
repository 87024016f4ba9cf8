package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/artem13815/internhub/pkg/signals"
)

const (
	DefaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "internhub/1.0"
	reposPerPage     = 100
)

// Config настраивает клиент GitHub API.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// RequestsPerSecond of 0 disables client-side limiting.
	RequestsPerSecond float64
	Retry             RetryConfig
}

// Client fetches public profile data from the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	retry   RetryConfig
	cache   Cache
	log     zerolog.Logger
}

func NewClient(cfg Config, cache Cache, log zerolog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retry := cfg.Retry
	if retry.MaxTries == 0 {
		retry = DefaultRetryConfig
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
		retry:   retry,
		cache:   cache,
		log:     log,
	}
}

// Username returns the last non-empty path segment of a profile URL,
// or the input itself when it is a bare username.
func Username(profileURL string) (string, error) {
	s := strings.TrimSpace(profileURL)
	s = strings.TrimRight(s, "/")
	if s == "" {
		return "", ErrNoUsername
	}
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", fmt.Errorf("parse profile url: %w", err)
		}
		s = strings.TrimRight(u.Path, "/")
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimPrefix(s, "@")
	if s == "" {
		return "", ErrNoUsername
	}
	return s, nil
}

// Analyze fetches the account and its first page of repositories and
// aggregates them. Results are cached per username.
func (c *Client) Analyze(ctx context.Context, profileURL string) (Analysis, error) {
	username, err := Username(profileURL)
	if err != nil {
		return Analysis{}, err
	}
	if c.cache != nil {
		if a, ok := c.cache.Get(ctx, username); ok {
			return a, nil
		}
	}

	var user userDTO
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &user); err != nil {
		return Analysis{}, err
	}
	var repos []signals.Repository
	path := fmt.Sprintf("/users/%s/repos?per_page=%d", url.PathEscape(username), reposPerPage)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		if ctx.Err() != nil {
			return Analysis{}, err
		}
		c.log.Warn().Err(err).Str("username", username).Msg("github: repos unavailable, using empty list")
		repos = nil
	}

	a := Analysis{
		Username:    username,
		AvatarURL:   user.AvatarURL,
		PublicRepos: user.PublicRepos,
		Followers:   user.Followers,
		Summary:     signals.Aggregate(repos),
	}
	if user.Bio != nil {
		a.Bio = *user.Bio
	}
	if c.cache != nil {
		c.cache.Set(ctx, username, a)
	}
	return a, nil
}
