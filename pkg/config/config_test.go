package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fremantleline/fremantleline/pkg/fetcher"
	"github.com/fremantleline/fremantleline/pkg/transperth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fremantleline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, transperth.OperatorName, config.Operator.Name)
	assert.Equal(t, transperth.OperatorURL, config.Operator.URL)
	assert.Equal(t, fetcher.DefaultUserAgent, config.HTTP.UserAgent)
	assert.Equal(t, fetcher.DefaultTimeout, config.HTTP.Timeout)
	assert.Equal(t, uint64(0), config.HTTP.Retries)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
operator:
  url: http://example/Live
http:
  useragent: test-agent
  timeout: 5s
  retries: 2
  retryinterval: 250ms
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, transperth.OperatorName, config.Operator.Name)
	assert.Equal(t, "http://example/Live", config.Operator.URL)
	assert.Equal(t, "test-agent", config.HTTP.UserAgent)
	assert.Equal(t, 5*time.Second, config.HTTP.Timeout)
	assert.Equal(t, uint64(2), config.HTTP.Retries)
	assert.Equal(t, 250*time.Millisecond, config.HTTP.RetryInterval)

	options := config.FetcherOptions()
	assert.Equal(t, "test-agent", options.UserAgent)
	assert.Equal(t, uint64(2), options.Retries)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `
operator:
  name: File Trains
  url: http://example/File
`)
	t.Setenv("FREMANTLELINE_OPERATOR_URL", "http://example/Env")
	t.Setenv("FREMANTLELINE_HTTP_TIMEOUT", "12s")
	t.Setenv("FREMANTLELINE_HTTP_RETRIES", "4")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "File Trains", config.Operator.Name)
	assert.Equal(t, "http://example/Env", config.Operator.URL)
	assert.Equal(t, 12*time.Second, config.HTTP.Timeout)
	assert.Equal(t, uint64(4), config.HTTP.Retries)
}

func TestLoad_OperatorNameAndUserAgentFromEnvironment(t *testing.T) {
	t.Setenv("FREMANTLELINE_OPERATOR_NAME", " Env Trains ")
	t.Setenv("FREMANTLELINE_USER_AGENT", "board-test/1.0")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Env Trains", config.Operator.Name)
	assert.Equal(t, "board-test/1.0", config.HTTP.UserAgent)
	assert.Equal(t, "Env Trains", config.NewOperator().Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "operator:\n  colour: yellow\n"))
		assert.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("FREMANTLELINE_HTTP_TIMEOUT", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "FREMANTLELINE_HTTP_TIMEOUT")
	})

	t.Run("bad retries", func(t *testing.T) {
		t.Setenv("FREMANTLELINE_HTTP_RETRIES", "-1")
		_, err := Load("")
		assert.ErrorContains(t, err, "FREMANTLELINE_HTTP_RETRIES")
	})
}

func TestConfig_NewOperator(t *testing.T) {
	config := Default()
	config.Operator.Name = "Test Trains"
	config.Operator.URL = "http://example/Live"

	operator := config.NewOperator()

	assert.Equal(t, "Test Trains", operator.Name)
	assert.Equal(t, "http://example/Live", operator.URL)
}
