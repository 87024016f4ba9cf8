package scoring

import "fmt"

// Rating categories.
const (
	Programming    = "programming"
	DataStructures = "data_structures"
	MLAI           = "ml_ai"
	WebDev         = "web_dev"
	Tools          = "tools"
)

// Categories lists the rating categories in display order.
var Categories = []string{Programming, DataStructures, MLAI, WebDev, Tools}

const (
	MinRating = 0
	MaxRating = 10
)

// Ratings - самооценка кандидата по пяти категориям.
type Ratings struct {
	Programming    int `json:"programming"`
	DataStructures int `json:"data_structures"`
	MLAI           int `json:"ml_ai"`
	WebDev         int `json:"web_dev"`
	Tools          int `json:"tools"`
}

// Get returns the rating for a category name, 0 for unknown names.
func (r Ratings) Get(category string) int {
	switch category {
	case Programming:
		return r.Programming
	case DataStructures:
		return r.DataStructures
	case MLAI:
		return r.MLAI
	case WebDev:
		return r.WebDev
	case Tools:
		return r.Tools
	}
	return 0
}

// Validate checks every rating is within [MinRating, MaxRating].
func (r Ratings) Validate() error {
	for _, c := range Categories {
		if v := r.Get(c); v < MinRating || v > MaxRating {
			return fmt.Errorf("rating %s must be between %d and %d, got %d", c, MinRating, MaxRating, v)
		}
	}
	return nil
}

// Breakdown holds the rounded, capped subscores.
type Breakdown struct {
	Skills int `json:"skills"`
	Resume int `json:"resume"`
	Github int `json:"github"`
}

// IsZero reports whether the breakdown was never computed.
func (b Breakdown) IsZero() bool { return b == Breakdown{} }

// Result is the output of Score.
type Result struct {
	Overall   int       `json:"overall_score"`
	Breakdown Breakdown `json:"breakdown"`
}
