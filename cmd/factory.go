// File: cmd/factory.go
package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/config"
	"github.com/octavarium-xyz/frameworks-base/internal/emulation"
	"github.com/octavarium-xyz/frameworks-base/internal/engine"
	"github.com/octavarium-xyz/frameworks-base/internal/identity"
	"github.com/octavarium-xyz/frameworks-base/internal/observability"
	"github.com/octavarium-xyz/frameworks-base/internal/propstore"
)

// Components holds the initialized services for one simulation run.
// This struct centralizes the lifecycle management of the emulated runtime.
type Components struct {
	Engine   *engine.Engine
	Identity *identity.Store
	Monitor  *emulation.ScriptedMonitor
	Restart  *emulation.KillRecorder
	Flags    schemas.PropertyStore

	// settings is retained for Close when the flag store is database backed.
	settings *propstore.SettingsDB
}

// Shutdown gracefully closes all components, ensuring resources are released
// in the correct order.
func (c *Components) Shutdown() {
	logger := observability.GetLogger()

	// 1. Close the task monitor first so any armed watcher disarms.
	if c.Monitor != nil {
		c.Monitor.Close()
		logger.Debug("Task monitor closed.")
	}

	// 2. Close the settings database, if one was opened.
	if c.settings != nil {
		if err := c.settings.Close(); err != nil {
			logger.Warn("Error closing settings database.", zap.Error(err))
		} else {
			logger.Debug("Settings database closed.")
		}
	}
}

// newComponents handles the dependency injection and initialization of the
// emulated runtime: flag store, identity store, task stack and the policy
// engine wired across them. topActivity seeds the emulated foreground task.
func newComponents(cfg *config.Config, env emulation.StaticEnv, topActivity string) (*Components, error) {
	logger := observability.GetLogger()

	components := &Components{}

	// Ensure cleanup happens if initialization fails midway.
	var initializationErr error
	defer func() {
		if initializationErr != nil {
			logger.Warn("Initialization failed, shutting down partially created components.", zap.Error(initializationErr))
			components.Shutdown()
		}
	}()

	// 1. Flag store: database backed when configured, in-memory otherwise.
	if cfg.SettingsDB != "" {
		db, err := propstore.OpenSettingsDB(logger, cfg.SettingsDB)
		if err != nil {
			initializationErr = fmt.Errorf("failed to open settings database: %w", err)
			return nil, initializationErr
		}
		components.settings = db
		components.Flags = db
		logger.Debug("Settings database opened.", zap.String("path", cfg.SettingsDB))
	} else {
		mem := propstore.NewMemory()
		mem.Seed(cfg.Props)
		components.Flags = mem
		logger.Debug("In-memory flag store seeded.", zap.Int("props", len(cfg.Props)))
	}

	// 2. Exposed identity store, seeded with the real build values.
	components.Identity = identity.NewStore(logger, cfg.Device.BuildInfo())
	logger.Debug("Identity store seeded.", zap.String("model", cfg.Device.Model))

	// 3. Emulated task stack and process controller.
	components.Monitor = emulation.NewScriptedMonitor(topActivity)
	components.Restart = &emulation.KillRecorder{}
	logger.Debug("Task monitor initialized.", zap.String("top_activity", topActivity))

	// 4. Policy engine. Attestation requests in the simulation always
	// originate from the platform attestation path.
	eng, err := engine.New(logger, components.Identity, engine.Collaborators{
		Env:   env,
		Flags: components.Flags,
		Tasks: components.Monitor,
		Proc:  components.Restart,
		Stack: emulation.FixedStack{InPath: true},
	})
	if err != nil {
		initializationErr = fmt.Errorf("failed to initialize policy engine: %w", err)
		return nil, initializationErr
	}
	components.Engine = eng
	logger.Debug("Policy engine initialized.")

	return components, nil
}
