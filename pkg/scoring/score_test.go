package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/signals"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func daysAgo(n int) string {
	return now.AddDate(0, 0, -n).Format("2006-01-02")
}

func skills(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("skill-%d", i)
	}
	return out
}

func TestScore_WorkedExample(t *testing.T) {
	r := Ratings{Programming: 8, DataStructures: 7, MLAI: 5, WebDev: 6, Tools: 9}
	p := profile.Profile{Skills: skills(6), Education: []string{"B.Tech, Example University"}}
	s := signals.Summary{RepoCount: 25, Popularity: 60, LastActivity: daysAgo(30)}

	got := Score(r, p, s, now)

	assert.Equal(t, Result{Overall: 89, Breakdown: Breakdown{Skills: 40, Resume: 19, Github: 30}}, got)
}

func TestScore_IsDeterministic(t *testing.T) {
	r := Ratings{Programming: 3, DataStructures: 4, MLAI: 1, WebDev: 7, Tools: 2}
	p := profile.Profile{Skills: skills(3), Experience: []string{"Intern"}}
	s := signals.Summary{RepoCount: 4, Popularity: 9, LastActivity: daysAgo(10)}

	first := Score(r, p, s, now)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Score(r, p, s, now))
	}
}

func TestScore_SkillsSaturateAtCap(t *testing.T) {
	r := Ratings{Programming: 10, DataStructures: 10, MLAI: 10, WebDev: 10, Tools: 10}
	got := Score(r, profile.Profile{}, signals.Empty(), now)
	assert.Equal(t, 40, got.Breakdown.Skills)
	assert.Equal(t, 40, got.Overall)
}

func TestScore_MissingRatingsCountAsZero(t *testing.T) {
	got := Score(Ratings{Programming: 5}, profile.Profile{}, signals.Empty(), now)
	assert.Equal(t, 10, got.Breakdown.Skills)
}

func TestScore_ResumeCaps(t *testing.T) {
	p := profile.Profile{Skills: skills(25), Education: []string{"x"}, Experience: []string{"y"}}
	got := Score(Ratings{}, p, signals.Empty(), now)
	assert.Equal(t, 30, got.Breakdown.Resume)

	p = profile.Profile{Skills: skills(4)}
	got = Score(Ratings{}, p, signals.Empty(), now)
	assert.Equal(t, 6, got.Breakdown.Resume)
}

func TestScore_GithubZeroReposOnlyRecency(t *testing.T) {
	recent := Score(Ratings{}, profile.Profile{}, signals.Summary{LastActivity: daysAgo(1)}, now)
	assert.Equal(t, 10, recent.Breakdown.Github)

	none := Score(Ratings{}, profile.Profile{}, signals.Empty(), now)
	assert.Equal(t, 0, none.Breakdown.Github)
	assert.Equal(t, 0, none.Overall)
}

func TestScore_RecencyBoundary(t *testing.T) {
	cases := []struct {
		activity string
		want     int
	}{
		{daysAgo(180), 10},
		{daysAgo(181), 0},
		{daysAgo(0), 10},
		{now.AddDate(0, 0, 3).Format("2006-01-02"), 10},
		{daysAgo(5) + "T23:59:59Z", 10},
		{signals.UnknownActivity, 0},
		{"N/A", 0},
		{"", 0},
		{"2025-13-45", 0},
	}
	for _, tc := range cases {
		s := signals.Summary{LastActivity: tc.activity}
		assert.Equal(t, tc.want, Score(Ratings{}, profile.Profile{}, s, now).Breakdown.Github, tc.activity)
	}
}

func TestScore_GithubCaps(t *testing.T) {
	s := signals.Summary{RepoCount: 500, Popularity: 10000, LastActivity: daysAgo(2)}
	got := Score(Ratings{}, profile.Profile{}, s, now)
	assert.Equal(t, 30, got.Breakdown.Github)
}

func TestScore_NegativeCountsTreatedAsZero(t *testing.T) {
	s := signals.Summary{RepoCount: -3, Popularity: -10, LastActivity: signals.UnknownActivity}
	got := Score(Ratings{}, profile.Profile{}, s, now)
	assert.Equal(t, 0, got.Breakdown.Github)
}

func TestScore_OverallNeverExceedsHundred(t *testing.T) {
	r := Ratings{Programming: 10, DataStructures: 10, MLAI: 10, WebDev: 10, Tools: 10}
	p := profile.Profile{Skills: skills(10), Education: []string{"x"}, Experience: []string{"y"}}
	s := signals.Summary{RepoCount: 20, Popularity: 50, LastActivity: daysAgo(1)}
	got := Score(r, p, s, now)
	assert.Equal(t, 100, got.Overall)
	assert.Equal(t, Breakdown{Skills: 40, Resume: 30, Github: 30}, got.Breakdown)
}

// Overall is rounded from the raw sum, so it can differ by one from the sum
// of independently rounded subscores.
func TestScore_RoundingDriftAtHalfPoints(t *testing.T) {
	// skills 1.2 -> 1; resume 1.5 -> 2; github 0.5 + 0.2 = 0.7 -> 1.
	r := Ratings{WebDev: 1}
	p := profile.Profile{Skills: skills(1)}
	s := signals.Summary{RepoCount: 1, Popularity: 1, LastActivity: signals.UnknownActivity}

	got := Score(r, p, s, now)

	assert.Equal(t, Breakdown{Skills: 1, Resume: 2, Github: 1}, got.Breakdown)
	assert.Equal(t, 3, got.Overall) // round(1.2 + 1.5 + 0.7) = round(3.4)
	sum := got.Breakdown.Skills + got.Breakdown.Resume + got.Breakdown.Github
	assert.LessOrEqual(t, absInt(sum-got.Overall), 1)
}

func TestScore_HalfRoundsToEven(t *testing.T) {
	// resume = 3 * 1.5 = 4.5 и 7 * 1.5 = 10.5
	got := Score(Ratings{}, profile.Profile{Skills: skills(3)}, signals.Empty(), now)
	assert.Equal(t, 4, got.Breakdown.Resume)
	assert.Equal(t, 4, got.Overall)

	got = Score(Ratings{}, profile.Profile{Skills: skills(7)}, signals.Empty(), now)
	assert.Equal(t, 10, got.Breakdown.Resume)
	assert.Equal(t, 10, got.Overall)

	// 5 * 1.5 = 7.5 -> 8
	got = Score(Ratings{}, profile.Profile{Skills: skills(5)}, signals.Empty(), now)
	assert.Equal(t, 8, got.Breakdown.Resume)
}

func TestScore_ExactHalfTotalIsNotLostToFloat(t *testing.T) {
	// 9 * 1.2 + 0.5 + 0.2 = 11.5 ровно; в float64 это 11.4999...
	s := signals.Summary{RepoCount: 1, Popularity: 1, LastActivity: signals.UnknownActivity}
	got := Score(Ratings{WebDev: 9}, profile.Profile{}, s, now)
	assert.Equal(t, 12, got.Overall)
	assert.Equal(t, Breakdown{Skills: 11, Resume: 0, Github: 1}, got.Breakdown)
}

// tenths is an independent integer reference for DefaultWeights.
func tenths(r Ratings, nSkills, repos, stars int, edu, exp, recent bool) Result {
	roundEven := func(v int) int {
		q, rem := v/10, v%10
		if rem > 5 || (rem == 5 && q%2 == 1) {
			q++
		}
		return q
	}
	sk := min(20*r.Get(Programming)+20*r.Get(DataStructures)+16*r.Get(MLAI)+12*r.Get(WebDev)+12*r.Get(Tools), 400)
	rs := 15 * min(nSkills, 10)
	if edu {
		rs += 100
	}
	if exp {
		rs += 50
	}
	rs = min(rs, 300)
	gh := 5*min(repos, 20) + 2*min(stars, 50)
	if recent {
		gh += 100
	}
	gh = min(gh, 300)
	return Result{
		Overall:   roundEven(min(sk+rs+gh, 1000)),
		Breakdown: Breakdown{Skills: roundEven(sk), Resume: roundEven(rs), Github: roundEven(gh)},
	}
}

func TestScore_MatchesExactTenthsArithmetic(t *testing.T) {
	mismatches := 0
	for prog := 0; prog <= 10; prog++ {
		for ml := 0; ml <= 10; ml++ {
			for web := 0; web <= 10; web++ {
				r := Ratings{Programming: prog, MLAI: ml, WebDev: web, Tools: (prog + web) % 11}
				for _, n := range []int{0, 1, 3, 5, 7, 10, 11} {
					for _, repos := range []int{0, 1, 3, 19, 21} {
						for _, stars := range []int{0, 1, 3, 7, 49, 60} {
							for _, rec := range []bool{false, true} {
								p := profile.Profile{Skills: skills(n)}
								edu := n%2 == 1
								if edu {
									p.Education = []string{"University"}
								}
								activity := signals.UnknownActivity
								if rec {
									activity = daysAgo(7)
								}
								s := signals.Summary{RepoCount: repos, Popularity: stars, LastActivity: activity}
								want := tenths(r, n, repos, stars, edu, false, rec)
								if got := Score(r, p, s, now); got != want {
									mismatches++
									if mismatches <= 5 {
										t.Errorf("ratings=%v skills=%d repos=%d stars=%d recent=%v: got %+v, want %+v",
											r, n, repos, stars, rec, got, want)
									}
								}
							}
						}
					}
				}
			}
		}
	}
	assert.Zero(t, mismatches)
}

func TestScorer_CustomWeights(t *testing.T) {
	w := DefaultWeights()
	w.SkillsCap = 10
	w.RecencyDays = 30
	sc := NewScorer(w)

	r := Ratings{Programming: 10}
	s := signals.Summary{LastActivity: daysAgo(45)}
	got := sc.Score(r, profile.Profile{}, s, now)
	assert.Equal(t, Breakdown{Skills: 10}, got.Breakdown)
}

func TestRatingsValidate(t *testing.T) {
	require.NoError(t, Ratings{Programming: 10, Tools: 0}.Validate())
	assert.Error(t, Ratings{MLAI: 11}.Validate())
	assert.Error(t, Ratings{WebDev: -1}.Validate())
}

func TestBreakdownIsZero(t *testing.T) {
	assert.True(t, Breakdown{}.IsZero())
	assert.False(t, Breakdown{Resume: 1}.IsZero())
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
