// File: cmd/simulate.go
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/classify"
	"github.com/octavarium-xyz/frameworks-base/internal/config"
	"github.com/octavarium-xyz/frameworks-base/internal/emulation"
	"github.com/octavarium-xyz/frameworks-base/internal/observability"
)

// launcherActivity is the neutral foreground task the emulation starts on
// unless the account screen is requested.
const launcherActivity = "com.android.launcher"

var (
	headFmt = color.New(color.FgBlue, color.Bold).SprintFunc()
	okFmt   = color.New(color.FgGreen).SprintFunc()
	warnFmt = color.New(color.FgYellow).SprintFunc()
	errFmt  = color.New(color.FgRed, color.Bold).SprintFunc()
	dimFmt  = color.New(color.Faint).SprintFunc()
)

func newSimulateCmd() *cobra.Command {
	var (
		packageName   string
		processName   string
		model         string
		soc           string
		fingerprint   string
		settingsDB    string
		tablet        bool
		accountScreen bool
		attest        bool
	)

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the spoofing policy for one package and print the exposed identity",
		Long: `Runs process initialization for the given package/process pair against an
emulated runtime assembled from the configured device, then prints the build
identity the process would observe. Attributes that differ from the real
build are marked as spoofed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if processName == "" {
				processName = packageName
			}

			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg := config.Get()
			if settingsDB != "" {
				// Copy so the shared config instance stays untouched.
				override := *cfg
				override.SettingsDB = settingsDB
				cfg = &override
			}

			env := emulation.StaticEnv{
				Package:     packageName,
				Process:     processName,
				Model:       cfg.Device.Model,
				Soc:         cfg.Device.Soc,
				Fingerprint: cfg.Device.Fingerprint,
				Built:       time.UnixMilli(cfg.Device.BuildTimeMs),
				IsTablet:    cfg.Device.Tablet,
			}
			if model != "" {
				env.Model = model
			}
			if soc != "" {
				env.Soc = soc
			}
			if fingerprint != "" {
				env.Fingerprint = fingerprint
			}
			if cmd.Flags().Changed("tablet") {
				env.IsTablet = tablet
			}

			topActivity := launcherActivity
			if accountScreen {
				topActivity = schemas.GmsAddAccountActivity
			}

			runID := uuid.NewString()
			logger.Info("Simulation run starting.",
				zap.String("run_id", runID),
				zap.String("package", packageName),
				zap.String("process", processName))

			components, err := newComponents(cfg, env, topActivity)
			if err != nil {
				logger.Error("Failed to assemble the emulated runtime", zap.Error(err))
				return err
			}
			defer components.Shutdown()

			components.Engine.InitProcess(ctx)

			printRun(cfg, components, env)

			if accountScreen {
				runAccountScreenWalkthrough(components)
			}
			if attest {
				printAttestationVerdict(ctx, components)
			}
			return nil
		},
	}

	simulateCmd.Flags().StringVarP(&packageName, "package", "p", "", "package name of the emulated process (required)")
	simulateCmd.Flags().StringVar(&processName, "process", "", "process name (defaults to the package name)")
	simulateCmd.Flags().StringVar(&model, "model", "", "override the real device model")
	simulateCmd.Flags().StringVar(&soc, "soc", "", "override the SoC manufacturer")
	simulateCmd.Flags().StringVar(&fingerprint, "fingerprint", "", "override the real build fingerprint")
	simulateCmd.Flags().StringVar(&settingsDB, "settings-db", "", "back the property store with this settings database")
	simulateCmd.Flags().BoolVar(&tablet, "tablet", false, "emulate a tablet form factor")
	simulateCmd.Flags().BoolVar(&accountScreen, "account-screen", false, "start with the account add screen foregrounded")
	simulateCmd.Flags().BoolVar(&attest, "attest", false, "vet a key attestation request after initialization")
	_ = simulateCmd.MarkFlagRequired("package")

	return simulateCmd
}

// printRun renders the resolved decision and the exposed build identity next
// to the real one, marking every attribute the policy overrode. The decision
// is re-derived through the pure classifier from the same facts the engine
// observed.
func printRun(cfg *config.Config, components *Components, env emulation.StaticEnv) {
	deviceClass := classify.ResolveDeviceClass(env.Model, env.Soc)
	decision := classify.Classify(classify.Facts{
		PackageName:    env.Package,
		ProcessName:    env.Process,
		Tablet:         env.IsTablet,
		DeviceClass:    deviceClass,
		GmsCertProcess: env.Package == schemas.PackageGms && env.Process == schemas.ProcessGmsUnstable,
		SpoofProps:     components.Flags.GetBool(schemas.FlagSpoofProps, true),
		MusicDisguise:  components.Flags.GetBool(schemas.FlagMusicDisguise, false),
	})

	fmt.Printf("%s %s %s\n", headFmt("Process"), env.Package, dimFmt("("+env.Process+")"))
	fmt.Printf("%s %s %s\n", headFmt("Device"), env.Model, dimFmt("class "+deviceClass.String()))

	verdict := decision.Category.String()
	if decision.Profile != "" {
		verdict += " " + dimFmt("profile "+string(decision.Profile))
	}
	if decision.TimeOnly {
		verdict += " " + dimFmt("time-only")
	}
	fmt.Printf("%s %s\n", headFmt("Decision"), verdict)

	real := make(map[schemas.AttributeKey]string)
	for _, prop := range cfg.Device.BuildInfo().Props() {
		real[prop.Key] = prop.Value.String()
	}

	fmt.Printf("\n%s\n", headFmt("Exposed build identity"))
	for _, prop := range components.Identity.Snapshot() {
		value := prop.Value.String()
		if value == real[prop.Key] {
			fmt.Printf("  %-22s %s\n", prop.Key, value)
			continue
		}
		fmt.Printf("  %-22s %s %s\n", prop.Key, okFmt(value), dimFmt("(was "+real[prop.Key]+")"))
	}
}

// runAccountScreenWalkthrough dismisses the emulated account screen and
// reports whether the guard requested a process restart.
func runAccountScreenWalkthrough(components *Components) {
	fmt.Printf("\n%s\n", headFmt("Account screen walkthrough"))
	fmt.Printf("  %s\n", warnFmt("certification deferred while the account screen is foregrounded"))

	components.Monitor.SetTop(launcherActivity)
	fmt.Printf("  account screen dismissed, waiting for the guard\n")

	deadline := time.Now().Add(2 * time.Second)
	for !components.Restart.Killed() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if components.Restart.Killed() {
		fmt.Printf("  %s\n", okFmt("process restart requested, certification will apply on the next launch"))
	} else {
		fmt.Printf("  %s\n", errFmt("no restart observed before the deadline"))
	}
}

// printAttestationVerdict runs one attestation request through the guard.
func printAttestationVerdict(ctx context.Context, components *Components) {
	fmt.Printf("\n%s\n", headFmt("Key attestation"))
	if err := components.Engine.GuardAttestation(ctx); err != nil {
		fmt.Printf("  %s %v\n", errFmt("BLOCKED"), err)
		return
	}
	fmt.Printf("  %s request passes through to the keystore\n", okFmt("ALLOWED"))
}
