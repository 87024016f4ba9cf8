package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/internhub/pkg/application"
	"github.com/artem13815/internhub/pkg/github"
	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/scoring"
	"github.com/artem13815/internhub/pkg/signals"
	"github.com/artem13815/internhub/pkg/storage/migrations"
	sqlitestore "github.com/artem13815/internhub/pkg/storage/sqlite"
)

func newRepo(t *testing.T) (*ApplicationRepository, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlitestore.Open(ctx, sqlitestore.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = migrations.Up(ctx, db, migrations.SQLite)
	require.NoError(t, err)
	return NewApplicationRepository(db), db
}

func placeholder(name string) application.Application {
	id := uuid.NewString()
	return application.Application{
		ApplicationID: id,
		FullName:      name,
		Email:         "candidate@example.com",
		College:       "XYZ University",
		Degree:        "B.Tech",
		GithubURL:     "https://github.com/candidate",
		ResumeRef:     "applications/" + id + "/resume.pdf",
		Ratings:       scoring.Ratings{Programming: 7, DataStructures: 6, MLAI: 3, WebDev: 8, Tools: 5},
		Status:        application.StatusPersisted,
	}
}

func TestRepository_NeverPopulatedRoundTrip(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, placeholder("Jane Doe"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByApplicationID(ctx, created.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, created.ApplicationID, got.ApplicationID)
	assert.Equal(t, created.Ratings, got.Ratings)
	assert.True(t, got.Profile.IsEmpty())
	assert.True(t, got.Signals.IsEmpty())
	assert.Nil(t, got.Breakdown)
	assert.False(t, got.Scored())
	assert.Zero(t, got.OverallScore)
	assert.Equal(t, application.StatusPersisted, got.Status)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestRepository_PopulatedRoundTrip(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	a, err := repo.Create(ctx, placeholder("Jane Doe"))
	require.NoError(t, err)

	p := profile.Profile{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Skills:     []string{"Python", "Docker"},
		Education:  []string{"B.Tech, XYZ University"},
		Experience: []string{"Intern, Acme"},
	}
	lang := []signals.LanguageCount{{Name: "Go", Count: 2}}
	an := github.Analysis{
		Username:    "candidate",
		PublicRepos: 12,
		Summary:     signals.Summary{RepoCount: 3, Popularity: 7, Languages: lang, LastActivity: "2025-05-01"},
	}
	a.Profile = application.ProfileOutcome{Value: &p}
	a.Signals = application.SignalsOutcome{Value: &an}
	a.OverallScore = 77
	a.Breakdown = &scoring.Breakdown{Skills: 40, Resume: 20, Github: 17}
	a.Status = application.StatusCompleted

	require.NoError(t, repo.UpdateEnrichment(ctx, a))
	// Повторная запись не меняет результат.
	require.NoError(t, repo.UpdateEnrichment(ctx, a))

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	require.NoError(t, err)
	require.NotNil(t, got.Profile.Value)
	assert.Equal(t, p, *got.Profile.Value)
	require.NotNil(t, got.Signals.Value)
	assert.Equal(t, an, *got.Signals.Value)
	assert.Equal(t, 77, got.OverallScore)
	assert.Equal(t, &scoring.Breakdown{Skills: 40, Resume: 20, Github: 17}, got.Breakdown)
	assert.Equal(t, application.StatusCompleted, got.Status)
	assert.Equal(t, "Jane Doe", got.FullName)
}

func TestRepository_ErrorPayloadRoundTrip(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	a, err := repo.Create(ctx, placeholder("Jane Doe"))
	require.NoError(t, err)

	a.Signals = application.SignalsOutcome{Error: &application.ErrorPayload{
		Kind:    application.KindSignalsFetch,
		Message: "github: user not found",
	}}
	a.Breakdown = &scoring.Breakdown{}
	a.Status = application.StatusSignalsFailed
	require.NoError(t, repo.UpdateEnrichment(ctx, a))

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.Nil(t, got.Signals.Value)
	require.NotNil(t, got.Signals.Error)
	assert.Equal(t, application.KindSignalsFetch, got.Signals.Error.Kind)
	// Нулевой, но посчитанный балл отличается от отсутствующего.
	require.NotNil(t, got.Breakdown)
	assert.True(t, got.Breakdown.IsZero())
}

func TestRepository_MalformedJSONDecodesEmpty(t *testing.T) {
	repo, db := newRepo(t)
	ctx := context.Background()
	a, err := repo.Create(ctx, placeholder("Jane Doe"))
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE applications SET profile_json = '{broken', signals_json = '',
		ratings_json = 'null', breakdown_json = '[1,2]' WHERE application_id = ?`, a.ApplicationID)
	require.NoError(t, err)

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.True(t, got.Profile.IsEmpty())
	assert.True(t, got.Signals.IsEmpty())
	assert.Equal(t, scoring.Ratings{}, got.Ratings)
	assert.Nil(t, got.Breakdown)
}

func TestRepository_NotFoundAndConflict(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.GetByApplicationID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, application.ErrNotFound)

	err = repo.UpdateEnrichment(ctx, placeholder("Ghost"))
	assert.ErrorIs(t, err, application.ErrNotFound)
	err = repo.UpdateScore(ctx, uuid.NewString(), scoring.Result{})
	assert.ErrorIs(t, err, application.ErrNotFound)

	a, err := repo.Create(ctx, placeholder("Jane Doe"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, a)
	assert.ErrorIs(t, err, application.ErrConflict)

	ok, err := repo.Exists(ctx, a.ApplicationID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_ListOrdering(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	scores := []int{40, 90, 65}
	for _, s := range scores {
		a, err := repo.Create(ctx, placeholder("Candidate"))
		require.NoError(t, err)
		require.NoError(t, repo.UpdateScore(ctx, a.ApplicationID, scoring.Result{Overall: s}))
	}

	page, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, 90, page[0].OverallScore)
	assert.Equal(t, 65, page[1].OverallScore)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, 40, page[0].OverallScore)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ApplicationID, all[i].ApplicationID)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
