// The application's root configuration: logging, the emulated physical
// device, the persisted property seed, and the optional settings database.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/profiles"
)

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Config is the root configuration structure for the entire application.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Device DeviceConfig `mapstructure:"device"`

	// Props seeds the in-memory property store: feature flags and
	// persist.sys.pihooks_* override values.
	Props map[string]string `mapstructure:"props"`

	// SettingsDB optionally points at an on-disk settings database that
	// backs the property store instead of the in-memory seed.
	SettingsDB string `mapstructure:"settings_db"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" json:"level" yaml:"level"`
	Format      string `mapstructure:"format" json:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" json:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" json:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
}

// DeviceConfig describes the real physical device the simulated processes
// run on. It seeds the exposed identity and feeds device classification.
type DeviceConfig struct {
	Model            string `mapstructure:"model"`
	Soc              string `mapstructure:"soc"`
	Brand            string `mapstructure:"brand"`
	Device           string `mapstructure:"device"`
	Manufacturer     string `mapstructure:"manufacturer"`
	Product          string `mapstructure:"product"`
	Hardware         string `mapstructure:"hardware"`
	Board            string `mapstructure:"board"`
	BuildID          string `mapstructure:"build_id"`
	Display          string `mapstructure:"display"`
	Fingerprint      string `mapstructure:"fingerprint"`
	Type             string `mapstructure:"type"`
	Tags             string `mapstructure:"tags"`
	SecurityPatch    string `mapstructure:"security_patch"`
	DeviceInitialSDK int32  `mapstructure:"device_initial_sdk"`
	Release          string `mapstructure:"release"`
	BuildTimeMs      int64  `mapstructure:"build_time_ms"`
	Tablet           bool   `mapstructure:"tablet"`
}

// BuildInfo converts the configured device into the seed for the exposed
// identity store. A missing codename or build ID is derived from the
// fingerprint.
func (d DeviceConfig) BuildInfo() schemas.BuildInfo {
	device := d.Device
	if device == "" {
		device = profiles.DeviceName(d.Fingerprint)
	}
	id := d.BuildID
	if id == "" {
		id = profiles.BuildID(d.Fingerprint)
	}
	return schemas.BuildInfo{
		Brand:            d.Brand,
		Device:           device,
		Manufacturer:     d.Manufacturer,
		Product:          d.Product,
		Model:            d.Model,
		Hardware:         d.Hardware,
		Board:            d.Board,
		Fingerprint:      d.Fingerprint,
		ID:               id,
		Display:          d.Display,
		Type:             d.Type,
		Tags:             d.Tags,
		SecurityPatch:    d.SecurityPatch,
		DeviceInitialSDK: d.DeviceInitialSDK,
		Release:          d.Release,
		Time:             time.UnixMilli(d.BuildTimeMs),
	}
}

// Validate checks the configuration for fields the rest of the application
// cannot work without.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be \"json\" or \"console\", got %q", c.Logger.Format)
	}
	if c.Device.Model == "" {
		return fmt.Errorf("device.model is a required configuration field")
	}
	if c.Device.Fingerprint == "" {
		return fmt.Errorf("device.fingerprint is a required configuration field")
	}
	if c.Device.BuildTimeMs <= 0 {
		return fmt.Errorf("device.build_time_ms must be a positive timestamp in milliseconds")
	}
	return nil
}

// Load initializes the configuration singleton from Viper.
func Load(v *viper.Viper) error {
	once.Do(func() {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			loadErr = fmt.Errorf("error unmarshaling config: %w", err)
			return
		}
		instance = &cfg
	})
	return loadErr
}

// Set stores the configuration globally. Used by the root command after
// validation and by tests.
func Set(cfg *Config) {
	instance = cfg
}

// Get returns the loaded configuration instance.
func Get() *Config {
	if instance == nil {
		panic("Configuration not initialized. Call config.Load() in the root command.")
	}
	return instance
}
