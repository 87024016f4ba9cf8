package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var nonLetter = regexp.MustCompile(`[^a-zA-Z\s]`)

// Lines splits text on newlines and returns the non-empty, trimmed lines in order.
func Lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// HeaderKey reduces a line to upper-case ASCII letters and whitespace, the
// form section headers are compared in. Inner whitespace is kept as is.
func HeaderKey(line string) string {
	s := nonLetter.ReplaceAllString(line, "")
	return strings.ToUpper(strings.TrimSpace(s))
}

// ContainsFold reports whether substr occurs in s ignoring case.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ContainsWord reports whether word occurs in text as a whole word, ignoring case.
// An occurrence counts when the characters on both sides of it are not letters,
// digits or underscores, so "c++" matches in "C++, Go" and "java" does not match
// inside "javascript".
func ContainsWord(text, word string) bool {
	if word == "" {
		return false
	}
	hay := strings.ToLower(text)
	needle := strings.ToLower(word)
	from := 0
	for from <= len(hay)-len(needle) {
		i := strings.Index(hay[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if !isWordByteBefore(hay, start) && !isWordByteAt(hay, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordByteBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func isWordByteAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
