package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BRIDGE"

// Config is the explicit runtime configuration of the bridge. It is built once
// in main and handed to the components that need it.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Blynk    BlynkConfig    `mapstructure:"blynk"`
	Commands CommandsConfig `mapstructure:"commands"`
	Stream   StreamConfig   `mapstructure:"stream"`
	Journal  JournalConfig  `mapstructure:"journal"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Name string `mapstructure:"name"`
}

type BlynkConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Token        string        `mapstructure:"token"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Pins         PinsConfig    `mapstructure:"pins"`
}

// PinsConfig maps the monitored channels to Blynk virtual pins.
type PinsConfig struct {
	Doorbell   string `mapstructure:"doorbell"`
	SmokeState string `mapstructure:"smoke_state"`
	SmokeValue string `mapstructure:"smoke_value"`
}

type CommandsConfig struct {
	DoorbellResetDelay time.Duration `mapstructure:"doorbell_reset_delay"`
	FlushOnShutdown    bool          `mapstructure:"flush_on_shutdown"`
}

type StreamConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Topic    string `mapstructure:"topic"`
	QoS      byte   `mapstructure:"qos"`
}

type AuthConfig struct {
	// SharedSecretHash is a bcrypt hash; empty disables the check.
	SharedSecretHash string `mapstructure:"shared_secret_hash"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.name", "Blynk API Bridge")

	v.SetDefault("blynk.base_url", "https://blynk.cloud/external/api")
	v.SetDefault("blynk.token", "")
	v.SetDefault("blynk.read_timeout", "5s")
	v.SetDefault("blynk.write_timeout", "5s")
	v.SetDefault("blynk.pins.doorbell", "V1")
	v.SetDefault("blynk.pins.smoke_state", "V0")
	v.SetDefault("blynk.pins.smoke_value", "V2")

	v.SetDefault("commands.doorbell_reset_delay", "3s")
	v.SetDefault("commands.flush_on_shutdown", true)

	v.SetDefault("stream.interval", "1s")

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "bridge.db")

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topic", "blynk-bridge/events")
	v.SetDefault("mqtt.qos", 1)

	v.SetDefault("auth.shared_secret_hash", "")

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads config.yml from the given directories (configs/ and . when none
// are given), applies BRIDGE_* environment overrides and validates the result.
// A missing config file is not an error: defaults and environment still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the bridge cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Blynk.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid blynk.base_url %q", c.Blynk.BaseURL)
	}
	if c.Blynk.ReadTimeout <= 0 || c.Blynk.WriteTimeout <= 0 {
		return errors.New("blynk timeouts must be positive")
	}
	p := c.Blynk.Pins
	if p.Doorbell == "" || p.SmokeState == "" || p.SmokeValue == "" {
		return errors.New("blynk.pins: doorbell, smoke_state and smoke_value are required")
	}
	if c.Commands.DoorbellResetDelay < 0 {
		return errors.New("commands.doorbell_reset_delay must not be negative")
	}
	if c.Stream.Interval <= 0 {
		return errors.New("stream.interval must be positive")
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path is required when the journal is enabled")
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return errors.New("mqtt.broker is required when mqtt is enabled")
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	return nil
}
