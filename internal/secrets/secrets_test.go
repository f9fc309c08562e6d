package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "anthropic-api-key"), []byte("sk-test-123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gemini-api-key"), []byte("  g-test-456  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("skip me"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-key"), []byte("   \n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", secrets["anthropic-api-key"], "values are trimmed")
	assert.Equal(t, "g-test-456", secrets["gemini-api-key"])
	assert.NotContains(t, secrets, ".hidden", "dotfiles are skipped")
	assert.NotContains(t, secrets, "empty-key", "blank files are skipped")
	assert.NotContains(t, secrets, "subdir", "directories are skipped")
	assert.Len(t, secrets, 2)
}

func TestLoadMissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestGet(t *testing.T) {
	secs := map[string]string{"anthropic-api-key": "from-file"}

	assert.Equal(t, "from-file", Get(secs, "anthropic-api-key"))

	t.Setenv("RESUME_ENGINE_GEMINI_API_KEY", " from-env \n")
	assert.Equal(t, "from-env", Get(secs, "gemini-api-key"), "environment fallback is trimmed")

	t.Setenv("RESUME_ENGINE_MISSING_KEY", "")
	assert.Empty(t, Get(secs, "missing-key"))
}
