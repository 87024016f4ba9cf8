package application

import (
	"time"

	"github.com/artem13815/internhub/pkg/scoring"
)

// ExportRecord - строка выгрузки кандидатов для рекрутера.
type ExportRecord struct {
	ApplicationID    string             `json:"application_id"`
	FullName         string             `json:"full_name"`
	Email            string             `json:"email"`
	College          string             `json:"college"`
	Degree           string             `json:"degree"`
	GithubProfile    string             `json:"github_profile"`
	PortfolioProfile string             `json:"portfolio_profile"`
	ResumeRef        string             `json:"resume_ref"`
	OverallScore     int                `json:"overall_score"`
	Status           Status             `json:"status"`
	SelfRatings      scoring.Ratings    `json:"self_ratings"`
	ParsedResume     ProfileOutcome     `json:"parsed_resume"`
	GithubAnalysis   SignalsOutcome     `json:"github_analysis"`
	ScoreBreakdown   *scoring.Breakdown `json:"score_breakdown"`
	CreatedAt        time.Time          `json:"created_at"`
}

func toExportRecord(a Application) ExportRecord {
	return ExportRecord{
		ApplicationID:    a.ApplicationID,
		FullName:         a.FullName,
		Email:            a.Email,
		College:          a.College,
		Degree:           a.Degree,
		GithubProfile:    a.GithubURL,
		PortfolioProfile: a.PortfolioURL,
		ResumeRef:        a.ResumeRef,
		OverallScore:     a.OverallScore,
		Status:           a.Status,
		SelfRatings:      a.Ratings,
		ParsedResume:     a.Profile,
		GithubAnalysis:   a.Signals,
		ScoreBreakdown:   a.Breakdown,
		CreatedAt:        a.CreatedAt,
	}
}

// ExportFilename returns the download name for an export taken at now.
func ExportFilename(now time.Time) string {
	return "internhub_candidates_" + now.Format("20060102") + ".json"
}

// profileDocument is the snapshot written next to the résumé blob.
type profileDocument struct {
	ApplicationID  string          `json:"application_id"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	College        string          `json:"college"`
	Degree         string          `json:"degree"`
	Github         string          `json:"github"`
	Portfolio      string          `json:"portfolio"`
	SelfRatings    scoring.Ratings `json:"self_ratings"`
	ParsedResume   ProfileOutcome  `json:"parsed_resume"`
	GithubAnalysis SignalsOutcome  `json:"github_analysis"`
	ResumeRef      string          `json:"resume_ref"`
}

func toProfileDocument(a Application) profileDocument {
	return profileDocument{
		ApplicationID:  a.ApplicationID,
		FullName:       a.FullName,
		Email:          a.Email,
		College:        a.College,
		Degree:         a.Degree,
		Github:         a.GithubURL,
		Portfolio:      a.PortfolioURL,
		SelfRatings:    a.Ratings,
		ParsedResume:   a.Profile,
		GithubAnalysis: a.Signals,
		ResumeRef:      a.ResumeRef,
	}
}
