package config

import "github.com/spf13/viper"

// SetDefaults registers the default values so the application runs with a
// minimal or absent config file. The default device is a Pixel 6: a
// Google-SoC device that is not current enough to skip flagship spoofing.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "pixelprops")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	v.SetDefault("device.model", "Pixel 6")
	v.SetDefault("device.soc", "Google")
	v.SetDefault("device.brand", "google")
	v.SetDefault("device.device", "oriole")
	v.SetDefault("device.manufacturer", "Google")
	v.SetDefault("device.product", "oriole")
	v.SetDefault("device.hardware", "oriole")
	v.SetDefault("device.board", "oriole")
	v.SetDefault("device.build_id", "AP2A.240905.003")
	v.SetDefault("device.display", "AP2A.240905.003")
	v.SetDefault("device.fingerprint", "google/oriole/oriole:14/AP2A.240905.003/12231197:user/release-keys")
	v.SetDefault("device.type", "user")
	v.SetDefault("device.tags", "release-keys")
	v.SetDefault("device.security_patch", "2024-09-05")
	v.SetDefault("device.device_initial_sdk", 31)
	v.SetDefault("device.release", "14")
	v.SetDefault("device.build_time_ms", 1725500000000)
	v.SetDefault("device.tablet", false)

	v.SetDefault("props", map[string]string{})
	v.SetDefault("settings_db", "")
}
