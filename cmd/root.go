// File: cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/octavarium-xyz/frameworks-base/internal/config"
	"github.com/octavarium-xyz/frameworks-base/internal/observability"
)

// Version is stamped by the build; "dev" identifies local builds.
var Version = "dev"

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pixelprops",
	Short: "Pixelprops emulates the device identity policy of a custom Android build.",
	Long: `Pixelprops hosts the spoofing policy engine that decides, per process,
which device identity an Android package observes: flagship profiles for
Google apps, certified build values for the services core, and a disguise
profile for the music app allow-list. The simulate command runs the policy
for one package/process pair against an emulated runtime and prints the
identity it would expose.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. Initialize configuration loading (Viper).
		if err := initializeConfig(); err != nil {
			// Initialize a basic logger if config loading fails early.
			basicLogger, _ := zap.NewDevelopment()
			basicLogger.Error("Failed to initialize configuration", zap.Error(err))
			return fmt.Errorf("failed to initialize configuration: %w", err)
		}

		// 2. Unmarshal the configuration into the singleton.
		if err := config.Load(viper.GetViper()); err != nil {
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "pixelprops"})
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg := config.Get()

		// 3. Validate the configuration.
		if err := cfg.Validate(); err != nil {
			observability.InitializeLogger(cfg.Logger)
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// 4. Initialize the logger.
		observability.InitializeLogger(cfg.Logger)
		logger := observability.GetLogger()
		logger.Info("Starting pixelprops", zap.String("version", Version))

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// It accepts a context passed from main.go for graceful shutdown.
func Execute(ctx context.Context) error {
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newProfilesCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			// Avoid logging context.Canceled errors as failures, as they are
			// expected during graceful shutdown.
			if ctx.Err() == nil {
				logger.Error("Command execution failed", zap.Error(err))
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig() error {
	// Set default values so the policy can run with a minimal config.
	config.SetDefaults(viper.GetViper())

	// 1. Set up config file search paths.
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// 2. Environment variable configuration.
	viper.SetEnvPrefix("PIXELPROPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicitly bind the settings database path so the short form is
	// picked up alongside the structured name.
	_ = viper.BindEnv("settings_db", "PIXELPROPS_SETTINGS_DB")

	// 3. Read the configuration file.
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if the config file is not found, but report other
		// errors like parsing issues.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
