package application

import (
	"encoding/json"
	"strings"

	"github.com/artem13815/internhub/pkg/scoring"
)

// Sub-objects are stored as JSON text. Decoding never fails: empty or
// malformed text yields the zero value.

func EncodeJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func DecodeJSON[T any](s string) T {
	var v T
	s = strings.TrimSpace(s)
	if s == "" {
		return v
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// EncodeBreakdown stores an uncomputed breakdown as "{}".
func EncodeBreakdown(b *scoring.Breakdown) string {
	if b == nil {
		return "{}"
	}
	return EncodeJSON(b)
}

func DecodeBreakdown(s string) *scoring.Breakdown {
	s = strings.TrimSpace(s)
	if s == "" || s == "{}" || s == "null" {
		return nil
	}
	var b scoring.Breakdown
	if err := json.Unmarshal([]byte(s), &b); err != nil {
		return nil
	}
	return &b
}
