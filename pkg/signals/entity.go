package signals

// UnknownActivity marks a summary with no usable push timestamps.
const UnknownActivity = "unknown"

// Repository is the subset of a public repository record the aggregator reads.
type Repository struct {
	Name     string  `json:"name"`
	Stars    int     `json:"stargazers_count"`
	Language *string `json:"language"`
	PushedAt string  `json:"pushed_at"`
}

// LanguageCount is one histogram bucket.
type LanguageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary - агрегированные сигналы публичного профиля.
type Summary struct {
	RepoCount    int             `json:"repo_count"`
	Popularity   int             `json:"total_stars"`
	Languages    []LanguageCount `json:"top_languages"`
	LastActivity string          `json:"last_activity"`
}

// Empty is the summary of an account without repositories.
func Empty() Summary {
	return Summary{Languages: []LanguageCount{}, LastActivity: UnknownActivity}
}
