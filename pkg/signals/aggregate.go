package signals

import "sort"

// Aggregate summarises repository records.
//
// LastActivity is the date prefix of the lexicographically greatest PushedAt.
// String order equals time order only while every timestamp uses the same
// ISO-8601 layout, which the upstream API guarantees (2006-01-02T15:04:05Z).
func Aggregate(repos []Repository) Summary {
	s := Empty()
	s.RepoCount = len(repos)

	index := map[string]int{}
	latest := ""
	for _, r := range repos {
		if r.Stars > 0 {
			s.Popularity += r.Stars
		}
		if r.Language != nil && *r.Language != "" {
			lang := *r.Language
			if i, ok := index[lang]; ok {
				s.Languages[i].Count++
			} else {
				index[lang] = len(s.Languages)
				s.Languages = append(s.Languages, LanguageCount{Name: lang, Count: 1})
			}
		}
		if r.PushedAt > latest {
			latest = r.PushedAt
		}
	}
	sort.SliceStable(s.Languages, func(i, j int) bool {
		return s.Languages[i].Count > s.Languages[j].Count
	})
	if latest != "" {
		s.LastActivity = datePrefix(latest)
	}
	return s
}

func datePrefix(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}
