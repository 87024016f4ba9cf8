package scoring

// Weights is the scoring table. Caps bound each subscore after weighting.
type Weights struct {
	Ratings map[string]float64 `yaml:"ratings"`

	SkillsCap  float64 `yaml:"skills_cap"`
	ResumeCap  float64 `yaml:"resume_cap"`
	GithubCap  float64 `yaml:"github_cap"`
	OverallCap float64 `yaml:"overall_cap"`

	ResumeSkillLimit  int     `yaml:"resume_skill_limit"`
	ResumeSkillPoints float64 `yaml:"resume_skill_points"`
	EducationBonus    float64 `yaml:"education_bonus"`
	ExperienceBonus   float64 `yaml:"experience_bonus"`

	RepoLimit    int     `yaml:"repo_limit"`
	RepoPoints   float64 `yaml:"repo_points"`
	StarLimit    int     `yaml:"star_limit"`
	StarPoints   float64 `yaml:"star_points"`
	RecencyDays  int     `yaml:"recency_days"`
	RecencyBonus float64 `yaml:"recency_bonus"`
}

// DefaultWeights returns the production table.
func DefaultWeights() Weights {
	return Weights{
		Ratings: map[string]float64{
			Programming:    2.0,
			DataStructures: 2.0,
			MLAI:           1.6,
			WebDev:         1.2,
			Tools:          1.2,
		},
		SkillsCap:  40,
		ResumeCap:  30,
		GithubCap:  30,
		OverallCap: 100,

		ResumeSkillLimit:  10,
		ResumeSkillPoints: 1.5,
		EducationBonus:    10,
		ExperienceBonus:   5,

		RepoLimit:    20,
		RepoPoints:   0.5,
		StarLimit:    50,
		StarPoints:   0.2,
		RecencyDays:  180,
		RecencyBonus: 10,
	}
}
