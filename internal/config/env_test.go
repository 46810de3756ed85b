package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_Precedence(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	t.Setenv(LegacyTokenEnvVar, "")
	assert.Empty(t, Token())

	t.Setenv(LegacyTokenEnvVar, "legacy")
	assert.Equal(t, "legacy", Token())

	t.Setenv(TokenEnvVar, " secret_abc ")
	assert.Equal(t, "secret_abc", Token())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOTION_API_KEY=from_file\n"), 0600))

	// t.Setenv registers cleanup; unset so godotenv will populate it
	t.Setenv(TokenEnvVar, "")
	require.NoError(t, os.Unsetenv(TokenEnvVar))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from_file", os.Getenv(TokenEnvVar))
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOTION_API_KEY=from_file\n"), 0600))

	t.Setenv(TokenEnvVar, "from_env")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from_env", os.Getenv(TokenEnvVar))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")), "missing file is not an error")
}
