// Package config loads client configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the daemon endpoints and tunables for the client.
type Config struct {
	// TeldURL is the base URL of the telescope daemon.
	TeldURL string `mapstructure:"teld_url"`
	// PowerdURL is the base URL of the power distribution daemon.
	PowerdURL string `mapstructure:"powerd_url"`
	// PipelinedURL is the base URL of the data reduction pipeline daemon.
	PipelinedURL string `mapstructure:"pipelined_url"`

	// BrokerURL is the MQTT broker carrying the live telescope status feed.
	BrokerURL string `mapstructure:"broker_url"`
	// StatusTopic is the topic teld publishes status snapshots on.
	StatusTopic string `mapstructure:"status_topic"`

	// DrivePowerSwitch is the PDU switch feeding the telescope drives.
	DrivePowerSwitch string `mapstructure:"drive_power_switch"`
	// CoverPowerSwitch is the PDU switch feeding the mirror covers.
	CoverPowerSwitch string `mapstructure:"cover_power_switch"`

	// PingTimeout bounds the liveness probe sent before each command.
	// The commands themselves are never time-bounded: telescope motions
	// can legitimately outlast any reasonable timeout.
	PingTimeout time.Duration `mapstructure:"ping_timeout"`
	// RebootDelay is the settle time between shutdown and re-initialize.
	RebootDelay time.Duration `mapstructure:"reboot_delay"`

	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from the given file, or from the default
// search paths when file is empty, applying TELCTL_ environment overrides
// on top. A missing config file is not an error; the defaults stand.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("teld_url", "http://localhost:9002/teld")
	v.SetDefault("powerd_url", "http://localhost:9008/powerd")
	v.SetDefault("pipelined_url", "http://localhost:9012/pipelined")
	v.SetDefault("broker_url", "tcp://localhost:1883")
	v.SetDefault("status_topic", "observatory/teld/status")
	v.SetDefault("drive_power_switch", "telescope_80v")
	v.SetDefault("cover_power_switch", "telescope_covers")
	v.SetDefault("ping_timeout", 5*time.Second)
	v.SetDefault("reboot_delay", 5*time.Second)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("TELCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("telctl")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/telctl")
		v.AddConfigPath("$HOME/.config/telctl")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
