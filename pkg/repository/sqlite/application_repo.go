package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/scoring"
)

const columns = `id, application_id, full_name, email, college, degree, github_url, portfolio_url,
	resume_ref, ratings_json, profile_json, signals_json, overall_score, breakdown_json,
	status, created_at, updated_at`

// ApplicationRepository хранит заявки в SQLite. Время хранится строкой RFC3339 в UTC.
type ApplicationRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ application.Repository = (*ApplicationRepository)(nil)

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	now := r.now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	res, err := r.db.ExecContext(ctx, `
INSERT INTO applications (application_id, full_name, email, college, degree, github_url, portfolio_url,
	resume_ref, ratings_json, profile_json, signals_json, overall_score, breakdown_json,
	status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, a.ApplicationID, a.FullName, a.Email, a.College, a.Degree, a.GithubURL, a.PortfolioURL,
		a.ResumeRef, application.EncodeJSON(a.Ratings), application.EncodeJSON(a.Profile),
		application.EncodeJSON(a.Signals), a.OverallScore, application.EncodeBreakdown(a.Breakdown),
		string(a.Status), formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return application.Application{}, application.ErrConflict
		}
		return application.Application{}, fmt.Errorf("insert application: %w", err)
	}
	a.ID, _ = res.LastInsertId()
	return a, nil
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM applications WHERE application_id = ?`, applicationID)
	a, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, applicationID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM applications WHERE application_id = ?`, applicationID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ApplicationRepository) UpdateEnrichment(ctx context.Context, a application.Application) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE applications
SET profile_json = ?, signals_json = ?, overall_score = ?, breakdown_json = ?, status = ?, updated_at = ?
WHERE application_id = ?
`, application.EncodeJSON(a.Profile), application.EncodeJSON(a.Signals), a.OverallScore,
		application.EncodeBreakdown(a.Breakdown), string(a.Status), formatTime(r.now()), a.ApplicationID)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	return affected(res)
}

func (r *ApplicationRepository) UpdateScore(ctx context.Context, applicationID string, s scoring.Result) error {
	b := s.Breakdown
	res, err := r.db.ExecContext(ctx, `
UPDATE applications SET overall_score = ?, breakdown_json = ?, updated_at = ? WHERE application_id = ?
`, s.Overall, application.EncodeBreakdown(&b), formatTime(r.now()), applicationID)
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	return affected(res)
}

func (r *ApplicationRepository) List(ctx context.Context, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.query(ctx, `SELECT `+columns+` FROM applications
ORDER BY overall_score DESC, created_at ASC LIMIT ? OFFSET ?`, limit, offset)
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	return r.query(ctx, `SELECT `+columns+` FROM applications ORDER BY application_id`)
}

func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM applications`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ApplicationRepository) query(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []application.Application{}
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (application.Application, error) {
	var (
		a                                     application.Application
		ratings, prof, sig, breakdown, status string
		created, updated                      string
	)
	if err := s.Scan(&a.ID, &a.ApplicationID, &a.FullName, &a.Email, &a.College, &a.Degree,
		&a.GithubURL, &a.PortfolioURL, &a.ResumeRef, &ratings, &prof, &sig, &a.OverallScore,
		&breakdown, &status, &created, &updated); err != nil {
		return application.Application{}, err
	}
	a.Ratings = application.DecodeJSON[scoring.Ratings](ratings)
	a.Profile = application.DecodeJSON[application.ProfileOutcome](prof)
	a.Signals = application.DecodeJSON[application.SignalsOutcome](sig)
	a.Breakdown = application.DecodeBreakdown(breakdown)
	a.Status = application.Status(status)
	a.CreatedAt = parseTime(created)
	a.UpdatedAt = parseTime(updated)
	return a, nil
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
