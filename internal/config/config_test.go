package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CHEMDATA_CONFIG", "CHEMDATA_TRANSPORT", "CHEMDATA_HTTP_ADDR", "CHEMDATA_SERVICES",
		"CHEMDATA_TIMEOUT", "CHEMDATA_SEQUENCE_TIMEOUT", "CHEMDATA_MAX_CONCURRENT",
		"CHEMDATA_RATE_LIMIT", "CHEMDATA_MAX_BODY_BYTES", "DRUGBANK_API_KEY", "LOG_LEVEL",
		"PDB_DATA_URL", "PDB_SEARCH_URL", "PDB_FILES_URL", "PUBCHEM_URL", "CHEMBL_URL",
		"OPENTARGETS_URL", "SURECHEMBL_URL", "DRUGBANK_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, TransportStdio, cfg.Server.Transport)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, 120, cfg.Server.RateLimit)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 30*time.Second, cfg.Guard.Timeout)
	assert.Equal(t, 60*time.Second, cfg.Guard.SequenceTimeout)
	assert.Equal(t, 8, cfg.Guard.MaxConcurrent)
	assert.Equal(t, AllServices, cfg.Services)
	assert.Equal(t, DefaultPDBSearchURL, cfg.Backends.PDBSearch)
	assert.Equal(t, DefaultOpenTargetsURL, cfg.Backends.OpenTargets)
	assert.Empty(t, cfg.DrugBank.APIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHEMDATA_TRANSPORT", "http")
	t.Setenv("CHEMDATA_HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("CHEMDATA_SERVICES", "pdb, ChEMBL")
	t.Setenv("CHEMDATA_TIMEOUT", "45")
	t.Setenv("CHEMDATA_SEQUENCE_TIMEOUT", "2m")
	t.Setenv("CHEMDATA_MAX_CONCURRENT", "3")
	t.Setenv("DRUGBANK_API_KEY", "secret")
	t.Setenv("CHEMBL_URL", "http://localhost:1234/chembl/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"pdb", "chembl"}, cfg.Services)
	assert.True(t, cfg.Enabled(ServiceChEMBL))
	assert.False(t, cfg.Enabled(ServiceDrugBank))
	assert.Equal(t, 45*time.Second, cfg.Guard.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Guard.SequenceTimeout)
	assert.Equal(t, 3, cfg.Guard.MaxConcurrent)
	assert.Equal(t, "secret", cfg.DrugBank.APIKey)
	assert.Equal(t, "http://localhost:1234/chembl", cfg.Backends.ChEMBL)
}

func TestLoad_YAMLFileWithExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_DRUGBANK_KEY", "from-env")

	path := filepath.Join(t.TempDir(), "chemdata.yaml")
	content := `
server:
  transport: http
  rate_limit: 30
guard:
  timeout: 10s
  max_concurrent: 2
services: [pdb, opentargets]
drugbank:
  api_key: ${TEST_DRUGBANK_KEY}
logging:
  level: ${MISSING_LEVEL:-debug}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, 30, cfg.Server.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.Guard.Timeout)
	assert.Equal(t, 2, cfg.Guard.MaxConcurrent)
	assert.Equal(t, []string{"pdb", "opentargets"}, cfg.Services)
	assert.Equal(t, "from-env", cfg.DrugBank.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHEMDATA_TRANSPORT", "stdio")

	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  transport: http\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown transport", map[string]string{"CHEMDATA_TRANSPORT": "grpc"}},
		{"unknown service", map[string]string{"CHEMDATA_SERVICES": "pdb,uniprot"}},
		{"bad timeout", map[string]string{"CHEMDATA_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"CHEMDATA_TIMEOUT": "-5"}},
		{"bad pool size", map[string]string{"CHEMDATA_MAX_CONCURRENT": "-1"}},
		{"non-numeric pool size", map[string]string{"CHEMDATA_MAX_CONCURRENT": "many"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,B "))
	assert.Nil(t, SplitList(""))
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load("")
	require.NoError(t, err)
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DRUGBANK_API_KEY=\"unterminated\n"), 0o600))
	t.Chdir(dir)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".env")
}
