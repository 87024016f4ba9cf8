package profile

import (
	"regexp"
	"strings"

	"github.com/artem13815/internhub/pkg/nlp"
)

var (
	reEmail     = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	rePhoneLike = regexp.MustCompile(`\d{10}`)
)

// Extractor turns résumé text into a Profile using fixed keyword rules.
// Rules favour recall: a header line that contains an experience keyword
// is reported as experience.
type Extractor struct {
	vocab   Vocabulary
	headers map[string]struct{}
}

func NewExtractor(v Vocabulary) *Extractor {
	headers := make(map[string]struct{}, len(v.SectionHeaders))
	for _, h := range v.SectionHeaders {
		headers[nlp.HeaderKey(h)] = struct{}{}
	}
	return &Extractor{vocab: v, headers: headers}
}

var defaultExtractor = NewExtractor(DefaultVocabulary())

// Extract runs the default extractor.
func Extract(text string) Profile {
	return defaultExtractor.Extract(text)
}

// Extract never fails: empty input or an internal panic yields Fallback().
func (e *Extractor) Extract(text string) (p Profile) {
	defer func() {
		if r := recover(); r != nil {
			p = Fallback()
		}
	}()
	if strings.TrimSpace(text) == "" {
		return Fallback()
	}
	lines := nlp.Lines(text)
	return Profile{
		Name:       e.name(lines),
		Email:      email(text),
		Skills:     e.skills(text),
		Education:  matchLines(lines, e.vocab.EducationKeywords, e.vocab.EducationMaxWords),
		Experience: matchLines(lines, e.vocab.ExperienceKeywords, e.vocab.ExperienceMaxWords),
	}
}

// name takes the first line that is not a section header or contact info
// and has between 1 and NameMaxWords words.
func (e *Extractor) name(lines []string) string {
	for _, l := range lines {
		if _, ok := e.headers[nlp.HeaderKey(l)]; ok {
			continue
		}
		if strings.Contains(l, "@") || rePhoneLike.MatchString(l) {
			continue
		}
		if n := nlp.WordCount(l); n > 0 && n <= e.vocab.NameMaxWords {
			return l
		}
	}
	return UnknownName
}

func email(text string) string {
	if m := reEmail.FindString(text); m != "" {
		return m
	}
	return EmailNotFound
}

// skills returns matched vocabulary entries in vocabulary order, once each.
func (e *Extractor) skills(text string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(e.vocab.Skills))
	for _, s := range e.vocab.Skills {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		if nlp.ContainsWord(text, s) {
			seen[key] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func matchLines(lines, keywords []string, maxWords int) []string {
	out := []string{}
	for _, l := range lines {
		if nlp.WordCount(l) >= maxWords {
			continue
		}
		for _, kw := range keywords {
			if nlp.ContainsFold(l, kw) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
