package github

import (
	"errors"

	"github.com/artem13815/internhub/pkg/signals"
)

var (
	ErrNotFound    = errors.New("github: user not found")
	ErrRateLimited = errors.New("github: api rate limit exceeded")
	ErrNoUsername  = errors.New("github: profile url has no username")
)

// Analysis - результат анализа GitHub-профиля кандидата.
type Analysis struct {
	Username    string `json:"username"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	signals.Summary
}

// Signals returns the summary used for scoring. The repository list is capped
// at one page, so the account's public repo count wins when it is larger.
func (a Analysis) Signals() signals.Summary {
	s := a.Summary
	if a.PublicRepos > s.RepoCount {
		s.RepoCount = a.PublicRepos
	}
	if s.Languages == nil {
		s.Languages = []signals.LanguageCount{}
	}
	if s.LastActivity == "" {
		s.LastActivity = signals.UnknownActivity
	}
	return s
}

type userDTO struct {
	Login       string  `json:"login"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
}
