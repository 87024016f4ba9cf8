package blob

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	ErrNotFound   = errors.New("blob: not found")
	ErrInvalidKey = errors.New("blob: invalid key")
)

// Store keeps application files (résumé, profile snapshot) by slash-separated key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// ResumeKey and ProfileKey lay files out per application.
func ResumeKey(applicationID string) string {
	return path.Join("applications", applicationID, "resume.pdf")
}

func ProfileKey(applicationID string) string {
	return path.Join("applications", applicationID, "profile.json")
}

// cleanKey rejects absolute keys and keys escaping the store root.
func cleanKey(key string) (string, error) {
	k := path.Clean(strings.TrimSpace(key))
	if k == "." || k == "" || strings.HasPrefix(k, "/") || k == ".." || strings.HasPrefix(k, "../") {
		return "", ErrInvalidKey
	}
	return k, nil
}
