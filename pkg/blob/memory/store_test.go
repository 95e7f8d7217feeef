package memory

import (
	"context"
	"testing"

	"broadcast-eval-be/pkg/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadMissing(t *testing.T) {
	store := NewStore()

	_, err := store.Download(context.Background(), "/missing.json")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestUploadThenGetWithRevision(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	meta, err := store.Upload(ctx, "/a.json", []byte(`{"v":1}`))
	require.NoError(t, err)
	assert.Equal(t, "/a.json", meta.Path)
	assert.NotEmpty(t, meta.Revision)

	content, rev, err := store.GetWithRevision(ctx, "/a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), content)
	assert.Equal(t, meta.Revision, rev)
}

func TestConditionalOverwriteCreateSemantics(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	// Zero revision creates only when the path is empty.
	rev, err := store.ConditionalOverwrite(ctx, "/a.json", []byte("one"), "")
	require.NoError(t, err)

	_, err = store.ConditionalOverwrite(ctx, "/a.json", []byte("two"), "")
	assert.ErrorIs(t, err, blob.ErrRevisionMismatch)

	// Fresh revision is accepted, stale one is not.
	rev2, err := store.ConditionalOverwrite(ctx, "/a.json", []byte("two"), rev)
	require.NoError(t, err)
	assert.NotEqual(t, rev, rev2)

	_, err = store.ConditionalOverwrite(ctx, "/a.json", []byte("three"), rev)
	assert.ErrorIs(t, err, blob.ErrRevisionMismatch)
}

func TestMove(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Upload(ctx, "/pending/a.json", []byte("x"))
	require.NoError(t, err)

	meta, err := store.Move(ctx, "/pending/a.json", "/completed/a.json")
	require.NoError(t, err)
	assert.Equal(t, "/completed/a.json", meta.Path)

	assert.False(t, store.Exists("/pending/a.json"))
	assert.True(t, store.Exists("/completed/a.json"))

	_, err = store.Move(ctx, "/pending/a.json", "/elsewhere/a.json")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestDownloadReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_, err := store.Upload(ctx, "/a.json", []byte("abc"))
	require.NoError(t, err)

	content, err := store.Download(ctx, "/a.json")
	require.NoError(t, err)
	content[0] = 'z'

	again, err := store.Download(ctx, "/a.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
