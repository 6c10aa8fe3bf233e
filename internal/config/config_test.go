package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9002/teld", cfg.TeldURL)
	assert.Equal(t, "http://localhost:9008/powerd", cfg.PowerdURL)
	assert.Equal(t, "http://localhost:9012/pipelined", cfg.PipelinedURL)
	assert.Equal(t, "telescope_80v", cfg.DrivePowerSwitch)
	assert.Equal(t, "telescope_covers", cfg.CoverPowerSwitch)
	assert.Equal(t, 5*time.Second, cfg.PingTimeout)
	assert.Equal(t, 5*time.Second, cfg.RebootDelay)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "telctl.yaml")
	content := `
teld_url: http://teld.obs.example:9002/teld
drive_power_switch: dome_west_80v
ping_timeout: 2s
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://teld.obs.example:9002/teld", cfg.TeldURL)
	assert.Equal(t, "dome_west_80v", cfg.DrivePowerSwitch)
	assert.Equal(t, 2*time.Second, cfg.PingTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, "http://localhost:9008/powerd", cfg.PowerdURL)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("TELCTL_POWERD_URL", "http://pdu.obs.example:9008/powerd")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://pdu.obs.example:9008/powerd", cfg.PowerdURL)
}
