package profile

const (
	UnknownName   = "Unknown"
	EmailNotFound = "Not found"
)

// Profile - структурированные поля, извлечённые из текста резюме.
type Profile struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
}

// Fallback returns the fixed value used when a document cannot be read.
func Fallback() Profile {
	return Profile{
		Name:       UnknownName,
		Email:      EmailNotFound,
		Skills:     []string{},
		Education:  []string{},
		Experience: []string{},
	}
}

// SkillsPreview returns up to n skills for list views.
func (p Profile) SkillsPreview(n int) []string {
	if len(p.Skills) <= n {
		return p.Skills
	}
	return p.Skills[:n]
}
