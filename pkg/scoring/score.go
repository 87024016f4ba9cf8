package scoring

import (
	"math"
	"time"

	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/signals"
)

const activityLayout = "2006-01-02"

// Scorer computes composite scores from a weights table. It holds no other state.
type Scorer struct {
	w Weights
}

func NewScorer(w Weights) *Scorer { return &Scorer{w: w} }

var defaultScorer = NewScorer(DefaultWeights())

// Score uses DefaultWeights.
func Score(r Ratings, p profile.Profile, s signals.Summary, now time.Time) Result {
	return defaultScorer.Score(r, p, s, now)
}

// Score is deterministic in its inputs; now is only used for the recency bonus.
// Subscores are capped, then each reported number is rounded half to even.
// Overall is rounded from the raw sum, so it may differ by one from the sum of
// the rounded breakdown.
func (sc *Scorer) Score(r Ratings, p profile.Profile, s signals.Summary, now time.Time) Result {
	skills := sc.skills(r)
	resume := sc.resume(p)
	github := sc.github(s, now)
	overall := clamp(skills+resume+github, units(sc.w.OverallCap))
	return Result{
		Overall: round(overall),
		Breakdown: Breakdown{
			Skills: round(skills),
			Resume: round(resume),
			Github: round(github),
		},
	}
}

// Баллы считаются в сотых долях: веса кратны 0.01, и сумма на границе .5 не
// уплывает в .4999.
const scale = 100

func units(v float64) int64 { return int64(math.Round(v * scale)) }

func (sc *Scorer) skills(r Ratings) int64 {
	var raw int64
	for _, c := range Categories {
		raw += int64(r.Get(c)) * units(sc.w.Ratings[c])
	}
	return clamp(raw, units(sc.w.SkillsCap))
}

func (sc *Scorer) resume(p profile.Profile) int64 {
	raw := int64(min(len(p.Skills), sc.w.ResumeSkillLimit)) * units(sc.w.ResumeSkillPoints)
	if len(p.Education) > 0 {
		raw += units(sc.w.EducationBonus)
	}
	if len(p.Experience) > 0 {
		raw += units(sc.w.ExperienceBonus)
	}
	return clamp(raw, units(sc.w.ResumeCap))
}

func (sc *Scorer) github(s signals.Summary, now time.Time) int64 {
	raw := int64(min(max(s.RepoCount, 0), sc.w.RepoLimit)) * units(sc.w.RepoPoints)
	raw += int64(min(max(s.Popularity, 0), sc.w.StarLimit)) * units(sc.w.StarPoints)
	if recent(s.LastActivity, now, sc.w.RecencyDays) {
		raw += units(sc.w.RecencyBonus)
	}
	return clamp(raw, units(sc.w.GithubCap))
}

// recent reports whether the YYYY-MM-DD prefix of activity is at most days
// calendar days before now. Unparseable values are never recent.
func recent(activity string, now time.Time, days int) bool {
	if len(activity) < len(activityLayout) {
		return false
	}
	last, err := time.Parse(activityLayout, activity[:len(activityLayout)])
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	age := int(today.Sub(last).Hours() / 24)
	return age <= days
}

func clamp(v, hi int64) int64 {
	return max(0, min(v, hi))
}

// round переводит сотые в целые баллы, половину к чётному.
func round(v int64) int {
	q, r := v/scale, v%scale
	if r > scale/2 || (r == scale/2 && q%2 == 1) {
		q++
	}
	return int(q)
}
