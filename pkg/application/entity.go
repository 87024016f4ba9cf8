package application

import (
	"time"

	"github.com/artem13815/internhub/pkg/github"
	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/scoring"
)

// Status - стадия обработки заявки. Переходы только вперёд.
type Status string

const (
	StatusReceived         Status = "received"
	StatusPersisted        Status = "persisted"
	StatusProfileExtracted Status = "profile_extracted"
	StatusProfileFailed    Status = "profile_failed"
	StatusSignalsFetched   Status = "signals_fetched"
	StatusSignalsFailed    Status = "signals_failed"
	StatusScored           Status = "scored"
	StatusCompleted        Status = "completed"
)

var statusRank = map[Status]int{
	StatusReceived:         0,
	StatusPersisted:        1,
	StatusProfileExtracted: 2,
	StatusProfileFailed:    2,
	StatusSignalsFetched:   3,
	StatusSignalsFailed:    3,
	StatusScored:           4,
	StatusCompleted:        5,
}

// Advance returns next when it is a later stage than s, s otherwise.
func (s Status) Advance(next Status) Status {
	if statusRank[next] > statusRank[s] {
		return next
	}
	return s
}

// Error kinds recorded on enrichment sub-fields.
const (
	KindProfileExtraction = "profile_extraction_failed"
	KindSignalsFetch      = "signals_fetch_failed"
)

// ErrorPayload replaces the output of an enrichment step that failed.
type ErrorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ProfileOutcome holds the extracted profile and the error of the latest
// failed attempt, if any. After a failure Value keeps the last successful
// profile. Both nil means extraction has not run yet.
type ProfileOutcome struct {
	Value *profile.Profile `json:"value,omitempty"`
	Error *ErrorPayload    `json:"error,omitempty"`
}

func (o ProfileOutcome) IsEmpty() bool { return o.Value == nil && o.Error == nil }

// Profile returns the extracted value or an empty profile.
func (o ProfileOutcome) Profile() profile.Profile {
	if o.Value == nil {
		return profile.Profile{}
	}
	return *o.Value
}

// SignalsOutcome holds the profile analysis and the latest step error,
// with the same retention rule as ProfileOutcome.
type SignalsOutcome struct {
	Value *github.Analysis `json:"value,omitempty"`
	Error *ErrorPayload    `json:"error,omitempty"`
}

func (o SignalsOutcome) IsEmpty() bool { return o.Value == nil && o.Error == nil }

// Application - заявка кандидата.
type Application struct {
	ID            int64  `json:"-"`
	ApplicationID string `json:"application_id"`

	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	College      string `json:"college"`
	Degree       string `json:"degree"`
	GithubURL    string `json:"github"`
	PortfolioURL string `json:"portfolio"`
	ResumeRef    string `json:"resume_ref"`

	Ratings scoring.Ratings `json:"self_ratings"`
	Profile ProfileOutcome  `json:"parsed_resume"`
	Signals SignalsOutcome  `json:"github_analysis"`

	OverallScore int                `json:"overall_score"`
	Breakdown    *scoring.Breakdown `json:"score_breakdown"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Scored reports whether a score has been computed for the record.
func (a Application) Scored() bool { return a.Breakdown != nil }
