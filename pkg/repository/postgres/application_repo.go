package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/scoring"
)

const uniqueViolation = "23505"

const columns = `id, application_id, full_name, email, college, degree, github_url, portfolio_url,
	resume_ref, ratings_json, profile_json, signals_json, overall_score, breakdown_json,
	status, created_at, updated_at`

// ApplicationRepository хранит заявки кандидатов. Схема создаётся миграциями.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

var _ application.Repository = (*ApplicationRepository)(nil)

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO applications (application_id, full_name, email, college, degree, github_url, portfolio_url,
	resume_ref, ratings_json, profile_json, signals_json, overall_score, breakdown_json, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING `+columns,
		a.ApplicationID, a.FullName, a.Email, a.College, a.Degree, a.GithubURL, a.PortfolioURL,
		a.ResumeRef, application.EncodeJSON(a.Ratings), application.EncodeJSON(a.Profile),
		application.EncodeJSON(a.Signals), a.OverallScore, application.EncodeBreakdown(a.Breakdown),
		string(a.Status))
	out, err := scan(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return application.Application{}, application.ErrConflict
		}
		return application.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return out, nil
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+columns+` FROM applications WHERE application_id = $1`, applicationID)
	a, err := scan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, applicationID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE application_id = $1)`, applicationID).Scan(&ok)
	return ok, err
}

func (r *ApplicationRepository) UpdateEnrichment(ctx context.Context, a application.Application) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE applications
SET profile_json = $2, signals_json = $3, overall_score = $4, breakdown_json = $5, status = $6, updated_at = now()
WHERE application_id = $1
`, a.ApplicationID, application.EncodeJSON(a.Profile), application.EncodeJSON(a.Signals), a.OverallScore,
		application.EncodeBreakdown(a.Breakdown), string(a.Status))
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) UpdateScore(ctx context.Context, applicationID string, s scoring.Result) error {
	b := s.Breakdown
	tag, err := r.pool.Exec(ctx, `
UPDATE applications SET overall_score = $2, breakdown_json = $3, updated_at = now() WHERE application_id = $1
`, applicationID, s.Overall, application.EncodeBreakdown(&b))
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) List(ctx context.Context, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.query(ctx, `
SELECT `+columns+` FROM applications
ORDER BY overall_score DESC, created_at ASC
LIMIT $1 OFFSET $2
`, limit, offset)
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	return r.query(ctx, `SELECT `+columns+` FROM applications ORDER BY application_id`)
}

func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM applications`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ApplicationRepository) query(ctx context.Context, q string, args ...any) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []application.Application{}
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func scan(row pgx.Row) (application.Application, error) {
	var (
		a                                     application.Application
		ratings, prof, sig, breakdown, status string
	)
	if err := row.Scan(&a.ID, &a.ApplicationID, &a.FullName, &a.Email, &a.College, &a.Degree,
		&a.GithubURL, &a.PortfolioURL, &a.ResumeRef, &ratings, &prof, &sig, &a.OverallScore,
		&breakdown, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Ratings = application.DecodeJSON[scoring.Ratings](ratings)
	a.Profile = application.DecodeJSON[application.ProfileOutcome](prof)
	a.Signals = application.DecodeJSON[application.SignalsOutcome](sig)
	a.Breakdown = application.DecodeBreakdown(breakdown)
	a.Status = application.Status(status)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
