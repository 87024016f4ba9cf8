package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lang(s string) *string { return &s }

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.RepoCount)
	assert.Equal(t, 0, s.Popularity)
	assert.Empty(t, s.Languages)
	assert.Equal(t, UnknownActivity, s.LastActivity)
}

func TestAggregate_SumsStarsAndBuildsHistogram(t *testing.T) {
	repos := []Repository{
		{Name: "a", Stars: 3, Language: lang("Go"), PushedAt: "2025-01-10T08:00:00Z"},
		{Name: "b", Stars: 0, Language: lang("Python"), PushedAt: "2025-03-02T11:30:00Z"},
		{Name: "c", Stars: 7, Language: nil, PushedAt: "2024-12-31T23:59:59Z"},
		{Name: "d", Stars: 1, Language: lang("Python"), PushedAt: ""},
		{Name: "e", Stars: 2, Language: lang("Rust"), PushedAt: "2025-02-01T00:00:00Z"},
	}
	s := Aggregate(repos)

	assert.Equal(t, 5, s.RepoCount)
	assert.Equal(t, 13, s.Popularity)
	assert.Equal(t, []LanguageCount{
		{Name: "Python", Count: 2},
		{Name: "Go", Count: 1},
		{Name: "Rust", Count: 1},
	}, s.Languages)
	assert.Equal(t, "2025-03-02", s.LastActivity)
}

func TestAggregate_TiesKeepDiscoveryOrder(t *testing.T) {
	s := Aggregate([]Repository{
		{Language: lang("Rust")},
		{Language: lang("Go")},
		{Language: lang("C")},
	})
	assert.Equal(t, []string{"Rust", "Go", "C"}, names(s.Languages))
}

func TestAggregate_AllTimestampsMissing(t *testing.T) {
	s := Aggregate([]Repository{{Stars: 1}, {Stars: 2}})
	assert.Equal(t, UnknownActivity, s.LastActivity)
	assert.Equal(t, 3, s.Popularity)
}

func names(in []LanguageCount) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		out = append(out, l.Name)
	}
	return out
}
