package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thisjamieguy/complyeur-v2-sub005/config"
	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 180, cfg.Compliance.WindowDays)
	assert.Equal(t, 90, cfg.Compliance.Limit)
	assert.Equal(t, "2021-01-01", cfg.Compliance.StartDate)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complyeur.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090

[compliance]
limit = 60

[compliance.thresholds]
green_min = 40
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Compliance.Limit)
	assert.Equal(t, 40, cfg.Compliance.Thresholds.GreenMin)
	// Untouched keys keep defaults.
	assert.Equal(t, 180, cfg.Compliance.WindowDays)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("COMPLYEUR_COMPLIANCE_LIMIT", "75")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Compliance.Limit)
}

func TestComplianceConfig_Materializes(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	ref := schengen.MustDay("2025-11-20")
	engineCfg, err := cfg.ComplianceConfig(ref)
	require.NoError(t, err)

	assert.Equal(t, ref, engineCfg.ReferenceDate)
	assert.Equal(t, schengen.MustDay("2021-01-01"), engineCfg.StartDate)
	assert.NoError(t, engineCfg.Validate())
}

func TestComplianceConfig_RejectsBadStartDate(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Compliance.StartDate = "garbage"

	_, err = cfg.ComplianceConfig(schengen.MustDay("2025-01-01"))
	assert.ErrorIs(t, err, schengen.ErrInvalidDateRange)
}
