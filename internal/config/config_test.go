package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Point the file lookup at an empty directory so no default.yaml is found.
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.API.QueryTimeout)
	assert.Equal(t, "webex_cc_data.db", cfg.Database.Path)
	assert.Equal(t, 7, cfg.Extract.DaysBack)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("WXCC_BASE_URL", "https://api.wxcc-eu1.cisco.com")
	t.Setenv("WXCC_ACCESS_TOKEN", "eyJhbGciOi_c2VjcmV0_ORG-42")
	t.Setenv("WXCC_DB_PATH", "/tmp/extract.db")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://api.wxcc-eu1.cisco.com", cfg.API.BaseURL)
	assert.Equal(t, "eyJhbGciOi_c2VjcmV0_ORG-42", cfg.API.AccessToken)
	assert.Equal(t, "/tmp/extract.db", cfg.Database.Path)
	// Last underscore-separated token segment.
	assert.Equal(t, "ORG-42", cfg.API.OrgID)
}

func TestLoadConfigExplicitOrgIDWins(t *testing.T) {
	t.Setenv("WXCC_ACCESS_TOKEN", "token_SEGMENT")
	t.Setenv("WXCC_ORG_ID", "explicit-org")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "explicit-org", cfg.API.OrgID)
}

func TestDeriveOrgIDNoSeparator(t *testing.T) {
	assert.Equal(t, "opaque", deriveOrgID("opaque"))
}

func TestValidateRejectsIncompleteConfig(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	// No base URL or token configured.
	assert.Error(t, cfg.Validate())

	cfg.API.BaseURL = "https://api.wxcc-us1.cisco.com"
	cfg.API.AccessToken = "token_org"
	assert.NoError(t, cfg.Validate())

	cfg.Extract.DaysBack = 0
	assert.Error(t, cfg.Validate())
}
