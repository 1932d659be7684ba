// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "SCANNER_DB", "REVIEWED_DB", "DB_BASE_PATH", "CLIENT_ORIGIN", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags([]string{"-env", ""})
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, DefaultOrigins, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.ScannerDB)
	assert.Empty(t, cfg.ReviewedDB)
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SCANNER_DB", "/data/scanner.db")
	t.Setenv("REVIEWED_DB", "postgres://localhost/reviewed")
	t.Setenv("DB_BASE_PATH", "/data")
	t.Setenv("CLIENT_ORIGIN", " https://a.example , ,https://b.example")

	cfg, err := ParseFlags([]string{"-env", ""})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/data/scanner.db", cfg.ScannerDB)
	assert.Equal(t, "postgres://localhost/reviewed", cfg.ReviewedDB)
	assert.Equal(t, "/data", cfg.BasePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SCANNER_DB", "/env/scanner.db")

	cfg, err := ParseFlags([]string{"-env", "", "-p", "8080", "-scanner", "/cli/scanner.db"})
	require.NoError(t, err)

	// CLI should override env
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/cli/scanner.db", cfg.ScannerDB)
}

func TestParseFlags_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := ParseFlags([]string{"-env", ""})
	assert.Error(t, err)

	_, err = ParseFlags([]string{"-env", "", "-p", "70000"})
	assert.Error(t, err)
}

func TestParseFlags_DotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("REVIEWED_DB")
	os.Unsetenv("PORT")
	t.Setenv("SCANNER_DB", "/from/environment.db")

	envPath := filepath.Join(t.TempDir(), ".env")
	content := "SCANNER_DB=/from/dotenv.db\nREVIEWED_DB=/from/dotenv-reviewed.db\nPORT=5050\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("REVIEWED_DB")
		os.Unsetenv("PORT")
	})

	cfg, err := ParseFlags([]string{"-env", envPath})
	require.NoError(t, err)

	// Existing environment is not overwritten by the dotenv file
	assert.Equal(t, "/from/environment.db", cfg.ScannerDB)
	assert.Equal(t, "/from/dotenv-reviewed.db", cfg.ReviewedDB)
	assert.Equal(t, 5050, cfg.Port)
}

func TestParseFlags_MissingDotEnvIgnored(t *testing.T) {
	clearEnv(t)

	_, err := ParseFlags([]string{"-env", filepath.Join(t.TempDir(), "missing.env")})
	assert.NoError(t, err)
}
