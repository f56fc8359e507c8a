package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestParseJson_PartialOverlay(t *testing.T) {
	path := writeTempConfig(t, `{"database_dsn": "postgres://json", "session_validity_days": 3}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	config := &Config{}
	config.LoadDefaults()

	require.NotPanics(t, func() { parseJson(config) })

	assert.Equal(t, "postgres://json", config.DatabaseDSN)
	assert.Equal(t, 3*24*time.Hour, config.SessionValidityDuration)
	// untouched fields keep their defaults
	assert.Equal(t, ":8080", config.EndpointAddrHTTP)
	assert.Equal(t, "media", config.S3Bucket)
}

func TestParseJson_NoFileFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	before := *config

	require.NotPanics(t, func() { parseJson(config) })
	assert.Equal(t, before, *config)
}

func TestParseJson_InvalidJSONPanics(t *testing.T) {
	path := writeTempConfig(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cmd", "-c", path}

	config := &Config{}
	require.Panics(t, func() { parseJson(config) })
}
