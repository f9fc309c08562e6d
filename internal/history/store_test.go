package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/tnguyen/resume-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id1, err := store.Record(ctx, types.Run{
		Company:        "Example Corp",
		JobURL:         "https://example.com/jobs/1",
		JobDescription: "We need a Go engineer",
		Changelog:      "- tightened summary",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)

	id2, err := store.Record(ctx, types.Run{
		JobURL:         "https://example.com/jobs/2",
		JobDescription: "We need a Python engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)

	runs, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, int64(2), runs[0].ID)
	assert.Equal(t, int64(1), runs[1].ID)
	assert.Equal(t, "Example Corp", runs[1].Company)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestStoreListLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, types.Run{JobURL: "https://example.com"})
		require.NoError(t, err)
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStoreSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, types.Run{
		JobURL:         "https://example.com/go",
		JobDescription: "Senior Go engineer with Kubernetes experience",
	})
	require.NoError(t, err)
	_, err = store.Record(ctx, types.Run{
		JobURL:         "https://example.com/py",
		JobDescription: "Python data engineer",
	})
	require.NoError(t, err)

	runs, err := store.Search(ctx, "kubernetes", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "https://example.com/go", runs[0].JobURL)

	runs, err = store.Search(ctx, "engineer", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = store.Search(ctx, "haskell", 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreSearchChangelog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, types.Run{
		JobURL:    "https://example.com",
		Changelog: "- emphasized distributed systems work",
	})
	require.NoError(t, err)

	runs, err := store.Search(ctx, "distributed", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStoreExportYAML(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	_, err := store.Record(ctx, types.Run{
		CreatedAt: created,
		Company:   "Example Corp",
		JobURL:    "https://example.com/jobs/1",
	})
	require.NoError(t, err)
	_, err = store.Record(ctx, types.Run{JobURL: "https://example.com/jobs/2"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "history.yaml")
	require.NoError(t, store.ExportYAML(ctx, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var runs []types.Run
	require.NoError(t, yaml.Unmarshal(data, &runs))
	require.Len(t, runs, 2)

	// Oldest first in the export.
	assert.Equal(t, int64(1), runs[0].ID)
	assert.Equal(t, "Example Corp", runs[0].Company)
	assert.True(t, created.Equal(runs[0].CreatedAt))
}

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	_, err = store.Record(context.Background(), types.Run{JobURL: "https://example.com"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Schema creation must be idempotent across reopens.
	store, err = NewStore(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
