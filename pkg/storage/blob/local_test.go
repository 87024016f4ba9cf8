package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

func TestLocal_PutGet(t *testing.T) {
	dir := fs.NewDir(t, "blobs")
	defer dir.Remove()

	store, err := NewLocal(dir.Path())
	require.NoError(t, err)
	ctx := context.Background()

	key := ResumeKey("app-1")
	require.NoError(t, store.Put(ctx, key, []byte("%PDF-1.4"), "application/pdf"))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), got)

	_, err = os.Stat(filepath.Join(dir.Path(), "applications", "app-1", "resume.pdf"))
	assert.NoError(t, err)
}

func TestLocal_Overwrite(t *testing.T) {
	dir := fs.NewDir(t, "blobs")
	defer dir.Remove()
	store, err := NewLocal(dir.Path())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, ProfileKey("a"), []byte(`{"v":1}`), "application/json"))
	require.NoError(t, store.Put(ctx, ProfileKey("a"), []byte(`{"v":2}`), "application/json"))
	got, err := store.Get(ctx, ProfileKey("a"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestLocal_NotFound(t *testing.T) {
	dir := fs.NewDir(t, "blobs")
	defer dir.Remove()
	store, err := NewLocal(dir.Path())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "applications/missing/resume.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	dir := fs.NewDir(t, "blobs")
	defer dir.Remove()
	store, err := NewLocal(dir.Path())
	require.NoError(t, err)

	for _, k := range []string{"../etc/passwd", "/abs/key", "", "a/../../b"} {
		assert.ErrorIs(t, store.Put(context.Background(), k, nil, ""), ErrInvalidKey, k)
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "applications/x/resume.pdf", ResumeKey("x"))
	assert.Equal(t, "applications/x/profile.json", ProfileKey("x"))
}
