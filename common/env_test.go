package common

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvVar(t *testing.T) {
	key, value, err := ParseEnvVar("AWS_PROFILE=my-profile")
	require.NoError(t, err)
	assert.Equal(t, "AWS_PROFILE", key)
	assert.Equal(t, "my-profile", value)

	key, value, err = ParseEnvVar("LDFLAGS=-X main.version=1.0")
	require.NoError(t, err)
	assert.Equal(t, "LDFLAGS", key)
	assert.Equal(t, "-X main.version=1.0", value)

	for _, bad := range []string{"AWS_PROFILE", "AWS_PROFILE=", "=value", ""} {
		_, _, err := ParseEnvVar(bad)
		var inputErr *InputError
		assert.ErrorAs(t, err, &inputErr, bad)
	}
}

func TestEnvVarsApply(t *testing.T) {
	t.Setenv("LAMBDA_BUILD_TEST_A", "shell")

	var e EnvVars
	require.NoError(t, e.Set("LAMBDA_BUILD_TEST_A=first"))
	require.NoError(t, e.Set("LAMBDA_BUILD_TEST_A=second"))
	assert.Error(t, e.Set("broken"))
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, "LAMBDA_BUILD_TEST_A=second", e.String())

	require.NoError(t, e.Apply())
	assert.Equal(t, "second", os.Getenv("LAMBDA_BUILD_TEST_A"))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LAMBDA_BUILD_TEST_B=dotenv\n"), 0o600))

	t.Setenv("LAMBDA_BUILD_TEST_B", "shell")
	require.NoError(t, LoadDotEnv(path, false))
	assert.Equal(t, "shell", os.Getenv("LAMBDA_BUILD_TEST_B"))

	require.NoError(t, LoadDotEnv(path, true))
	assert.Equal(t, "dotenv", os.Getenv("LAMBDA_BUILD_TEST_B"))

	assert.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), false))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDotEnvDefaultPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	// No .env in the working directory: nothing to load.
	assert.NoError(t, LoadDotEnv("", false))
	assert.NoError(t, LoadDotEnv(" ", true))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LAMBDA_BUILD_TEST_F=dotenv\n"), 0o600))
	t.Setenv("LAMBDA_BUILD_TEST_F", "shell")
	require.NoError(t, LoadDotEnv("", true))
	assert.Equal(t, "dotenv", os.Getenv("LAMBDA_BUILD_TEST_F"))
}

func TestLoadDotEnvNamedPathMustExist(t *testing.T) {
	chdir(t, t.TempDir())
	assert.ErrorIs(t, LoadDotEnv(".env", false), fs.ErrNotExist)
	assert.ErrorIs(t, LoadDotEnv("prod.env", true), fs.ErrNotExist)
}
