package profile

// Vocabulary holds the keyword tables the extractor classifies lines with.
type Vocabulary struct {
	SectionHeaders     []string `yaml:"section_headers"`
	Skills             []string `yaml:"skills"`
	EducationKeywords  []string `yaml:"education_keywords"`
	ExperienceKeywords []string `yaml:"experience_keywords"`

	NameMaxWords       int `yaml:"name_max_words"`
	EducationMaxWords  int `yaml:"education_max_words"`
	ExperienceMaxWords int `yaml:"experience_max_words"`
}

// DefaultVocabulary returns the built-in tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SectionHeaders: []string{
			"RESUME", "CURRICULUM VITAE", "CV", "BIO", "PROFILE", "SUMMARY",
			"OBJECTIVE", "SKILLS", "EDUCATION", "EXPERIENCE", "WORK HISTORY",
			"PROJECTS", "CONTACT", "CONTACT INFO", "DECLARATION", "CERTIFICATIONS",
			"LANGUAGES", "HOBBIES", "ACHIEVEMENTS",
		},
		Skills: []string{
			"Python", "Java", "C++", "C", "C#", "JavaScript", "TypeScript", "HTML", "CSS",
			"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "FastAPI",
			"SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Oracle",
			"Docker", "Kubernetes", "AWS", "Azure", "GCP", "Git", "GitHub", "GitLab",
			"Machine Learning", "Deep Learning", "AI", "Data Science", "Pandas", "NumPy",
			"TensorFlow", "PyTorch", "Scikit-learn", "Keras", "NLP", "OpenCV",
			"Linux", "Bash", "Shell", "DevOps", "Agile", "Scrum", "Jira",
		},
		EducationKeywords: []string{
			"B.Tech", "M.Tech", "Bachelor", "Master", "PhD", "B.Sc", "M.Sc",
			"University", "College", "Institute", "Degree",
		},
		ExperienceKeywords: []string{
			"Intern", "Internship", "Experience", "Work", "Project",
			"Developer", "Engineer", "Analyst", "Associate", "Consultant",
		},
		NameMaxWords:       4,
		EducationMaxWords:  20,
		ExperienceMaxWords: 15,
	}
}
