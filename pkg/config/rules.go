package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/artem13815/internhub/pkg/profile"
	"github.com/artem13815/internhub/pkg/scoring"
)

// Rules - таблицы извлечения и веса скоринга. По умолчанию встроенные.
type Rules struct {
	Vocabulary profile.Vocabulary
	Weights    scoring.Weights
}

func DefaultRules() Rules {
	return Rules{Vocabulary: profile.DefaultVocabulary(), Weights: scoring.DefaultWeights()}
}

type rulesFile struct {
	Vocabulary *profile.Vocabulary `yaml:"vocabulary"`
	Weights    *scoring.Weights    `yaml:"weights"`
}

// LoadRules reads a YAML rules file over the defaults. Keys absent from the
// file keep their default values. An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Rules{}, fmt.Errorf("rules: %w", err)
	}
	defer f.Close()

	doc := rulesFile{Vocabulary: &rules.Vocabulary, Weights: &rules.Weights}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	if err := rules.validate(); err != nil {
		return Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

func (r Rules) validate() error {
	for k := range r.Weights.Ratings {
		if !slices.Contains(scoring.Categories, k) {
			return fmt.Errorf("unknown rating category %q", k)
		}
	}
	w := r.Weights
	if w.SkillsCap <= 0 || w.ResumeCap <= 0 || w.GithubCap <= 0 || w.OverallCap <= 0 {
		return errors.New("caps must be positive")
	}
	if r.Vocabulary.NameMaxWords < 1 {
		return errors.New("name_max_words must be at least 1")
	}
	return nil
}
