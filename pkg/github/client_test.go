package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/internhub/pkg/signals"
)

var fastRetry = RetryConfig{MaxTries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond, MaxElapsed: time.Second}

func newTestClient(t *testing.T, h http.Handler, cache Cache) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Token: "tkn", Retry: fastRetry}, cache, zerolog.Nop())
}

func TestUsername(t *testing.T) {
	cases := map[string]string{
		"https://github.com/octocat":        "octocat",
		"https://github.com/octocat/":       "octocat",
		"http://www.github.com/Octo-Cat?x=1": "Octo-Cat",
		"github.com/octocat":                "octocat",
		"octocat":                           "octocat",
		"@octocat":                          "octocat",
	}
	for in, want := range cases {
		got, err := Username(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := Username("   ")
	assert.ErrorIs(t, err, ErrNoUsername)
	_, err = Username("https://github.com/")
	assert.ErrorIs(t, err, ErrNoUsername)
}

func TestAnalyze_Success(t *testing.T) {
	var sawAuth, sawAccept string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		sawAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"login":"octocat","avatar_url":"https://a/1.png","bio":"hi","public_repos":8,"followers":42}`))
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`[
			{"name":"a","stargazers_count":5,"language":"Go","pushed_at":"2025-05-01T10:00:00Z"},
			{"name":"b","stargazers_count":1,"language":null,"pushed_at":"2025-05-20T10:00:00Z"},
			{"name":"c","stargazers_count":0,"language":"Go","pushed_at":"2024-01-01T10:00:00Z"}
		]`))
	})
	c := newTestClient(t, mux, nil)

	a, err := c.Analyze(context.Background(), "https://github.com/octocat")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tkn", sawAuth)
	assert.Equal(t, "application/vnd.github.v3+json", sawAccept)
	assert.Equal(t, "octocat", a.Username)
	assert.Equal(t, "hi", a.Bio)
	assert.Equal(t, 42, a.Followers)
	assert.Equal(t, 3, a.RepoCount)
	assert.Equal(t, 6, a.Popularity)
	assert.Equal(t, []signals.LanguageCount{{Name: "Go", Count: 2}}, a.Languages)
	assert.Equal(t, "2025-05-20", a.LastActivity)
	assert.Equal(t, 8, a.Signals().RepoCount)
}

func TestAnalyze_NotFound(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	})
	c := newTestClient(t, h, nil)
	_, err := c.Analyze(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnalyze_MalformedBodyIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"login":`))
	})
	c := newTestClient(t, h, nil)
	_, err := c.Analyze(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnalyze_RateLimitedForbidden(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	})
	c := newTestClient(t, h, nil)
	_, err := c.Analyze(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAnalyze_RetriesThenRateLimited(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})
	c := newTestClient(t, h, nil)
	_, err := c.Analyze(context.Background(), "octocat")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAnalyze_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"login":"octocat","public_repos":0}`))
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	c := newTestClient(t, mux, nil)

	a, err := c.Analyze(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, signals.UnknownActivity, a.LastActivity)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAnalyze_ReposFailureYieldsEmptySummary(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octocat","public_repos":3}`))
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, mux, nil)

	a, err := c.Analyze(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, 0, a.RepoCount)
	assert.Equal(t, 3, a.Signals().RepoCount)
}

func TestAnalyze_UsesCache(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"login":"octocat","public_repos":1}`))
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"stargazers_count":2,"language":"Go","pushed_at":"2025-01-01T00:00:00Z"}]`))
	})
	cache := NewTieredCache(nil, time.Minute, zerolog.Nop())
	c := newTestClient(t, mux, cache)

	first, err := c.Analyze(context.Background(), "octocat")
	require.NoError(t, err)
	second, err := c.Analyze(context.Background(), "https://github.com/OCTOCAT")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first.Summary, second.Summary)
}

func TestTieredCache_Expiry(t *testing.T) {
	cache := NewTieredCache(nil, time.Minute, zerolog.Nop())
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	cache.Set(context.Background(), "u", Analysis{Username: "u"})
	_, ok := cache.Get(context.Background(), "u")
	require.True(t, ok)

	clock = clock.Add(2 * time.Minute)
	_, ok = cache.Get(context.Background(), "u")
	assert.False(t, ok)
}

func TestAnalysisSignalsDefaults(t *testing.T) {
	s := Analysis{}.Signals()
	assert.Equal(t, signals.UnknownActivity, s.LastActivity)
	assert.NotNil(t, s.Languages)
}
