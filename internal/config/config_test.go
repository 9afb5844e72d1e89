package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GDP_SOURCE_URL", "GDP_TABLE_SELECTOR", "GDP_HEADER_LABEL", "CSV_PATH",
		"PROGRESS_LOG_PATH", "SQLITE_PATH", "TABLE_NAME", "HTTP_TIMEOUT", "SQL_DRIVER",
		"SQL_CONNECTION_STRING", "MONGO_CONNECTION_STRING", "MONGO_DATABASE", "GDP_THRESHOLD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultFile), false)
	require.NoError(t, err)
	require.Equal(t, Defaults(), *cfg)
	require.False(t, cfg.ServerEnabled())
	require.False(t, cfg.MongoEnabled())
}

func TestLoadConfigRequiredFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json5"), true)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigFileAndLocalOverride(t *testing.T) {
	clearEnv(t)
	logger.SetOutput(io.Discard)

	dir := t.TempDir()
	path := filepath.Join(dir, "gdpetl.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// shared settings
		tableName: "GDP_2023",
		threshold: 250,
		csvPath: "out/gdp.csv",
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gdpetl.local.json5"), []byte(`{
		threshold: 500,
		sqlConnectionString: "sqlserver://sa:pw@localhost:1433?database=etl",
	}`), 0644))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	require.Equal(t, "GDP_2023", cfg.TableName)
	require.Equal(t, 500.0, cfg.Threshold)
	require.Equal(t, "out/gdp.csv", cfg.CSVPath)
	require.True(t, cfg.ServerEnabled())
	require.Equal(t, "./etl_project_log.txt", cfg.LogPath)
}

func TestLoadConfigEnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "gdpetl.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{tableName: "FromFile"}`), 0644))

	t.Setenv("TABLE_NAME", "FromEnv")
	t.Setenv("GDP_THRESHOLD", "42.5")
	t.Setenv("SQL_DRIVER", "postgres")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	require.Equal(t, "FromEnv", cfg.TableName)
	require.Equal(t, 42.5, cfg.Threshold)
	require.Equal(t, "postgres", cfg.ServerDriver)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{"TABLE_NAME", "Countries; DROP TABLE x"},
		{"GDP_THRESHOLD", "lots"},
		{"HTTP_TIMEOUT", "soon"},
		{"SQL_DRIVER", "oracle"},
	}

	for _, test := range testCases {
		t.Run(test.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.value)
			_, err := LoadConfig("", false)
			require.Error(t, err)
		})
	}
}

func TestLocalName(t *testing.T) {
	require.Equal(t, "conf/gdpetl.local.json5", localName("conf/gdpetl.json5"))
	require.Equal(t, "gdpetl.local", localName("gdpetl"))
}
