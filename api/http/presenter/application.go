package presenter

import (
	"strings"
	"time"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/scoring"
)

// Preview markers for list rows whose enrichment is missing.
const (
	PreviewProcessing  = "Processing..."
	PreviewUnavailable = "Unavailable"
	skillsPreviewSize  = 5
)

type SubmitResponse struct {
	ApplicationID string             `json:"applicationId"`
	Status        application.Status `json:"status"`
	DashboardURL  string             `json:"dashboardUrl"`
}

type TrackResponse struct {
	ApplicationID string `json:"applicationId"`
	DashboardURL  string `json:"dashboardUrl"`
}

// ApplicationView - карточка заявки для кандидата и рекрутера.
type ApplicationView struct {
	ApplicationID  string                     `json:"applicationId"`
	FullName       string                     `json:"fullName"`
	Email          string                     `json:"email"`
	College        string                     `json:"college"`
	Degree         string                     `json:"degree"`
	Github         string                     `json:"github"`
	Portfolio      string                     `json:"portfolio,omitempty"`
	Status         application.Status         `json:"status"`
	OverallScore   int                        `json:"overallScore"`
	ScoreBreakdown *scoring.Breakdown         `json:"scoreBreakdown"`
	SelfRatings    scoring.Ratings            `json:"selfRatings"`
	ParsedResume   application.ProfileOutcome `json:"parsedResume"`
	GithubAnalysis application.SignalsOutcome `json:"githubAnalysis"`
	ResumeRef      string                     `json:"resumeRef,omitempty"`
	CreatedAt      time.Time                  `json:"createdAt"`
	UpdatedAt      time.Time                  `json:"updatedAt"`
}

// NewApplicationView builds the view. The storage reference is only
// included for admins.
func NewApplicationView(a application.Application, admin bool) ApplicationView {
	v := ApplicationView{
		ApplicationID:  a.ApplicationID,
		FullName:       a.FullName,
		Email:          a.Email,
		College:        a.College,
		Degree:         a.Degree,
		Github:         a.GithubURL,
		Portfolio:      a.PortfolioURL,
		Status:         a.Status,
		OverallScore:   a.OverallScore,
		ScoreBreakdown: a.Breakdown,
		SelfRatings:    a.Ratings,
		ParsedResume:   a.Profile,
		GithubAnalysis: a.Signals,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if admin {
		v.ResumeRef = a.ResumeRef
	}
	return v
}

// ListItem - строка таблицы кандидатов. Stars и Repos nil, пока нет данных.
type ListItem struct {
	ApplicationID string             `json:"applicationId"`
	FullName      string             `json:"fullName"`
	Email         string             `json:"email"`
	College       string             `json:"college"`
	Degree        string             `json:"degree"`
	OverallScore  int                `json:"overallScore"`
	Status        application.Status `json:"status"`
	SkillsPreview string             `json:"skillsPreview"`
	Stars         *int               `json:"stars"`
	Repos         *int               `json:"repos"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func NewListItem(a application.Application) ListItem {
	item := ListItem{
		ApplicationID: a.ApplicationID,
		FullName:      a.FullName,
		Email:         a.Email,
		College:       a.College,
		Degree:        a.Degree,
		OverallScore:  a.OverallScore,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
	switch {
	case a.Profile.Value != nil:
		item.SkillsPreview = strings.Join(a.Profile.Value.SkillsPreview(skillsPreviewSize), ", ")
	case a.Profile.Error != nil:
		item.SkillsPreview = PreviewUnavailable
	default:
		item.SkillsPreview = PreviewProcessing
	}
	if s := a.Signals.Value; s != nil {
		stars, repos := s.Popularity, s.PublicRepos
		item.Stars, item.Repos = &stars, &repos
	}
	return item
}

type ListResponse struct {
	Items  []ListItem `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}
