// Package engine hosts the policy orchestrator. It decides, once per
// process start, which device identity the process exposes, and vets
// attestation requests made afterwards. All classification runs
// synchronously in the initialization path; only the guard's account
// screen watcher is asynchronous.
package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/classify"
	"github.com/octavarium-xyz/frameworks-base/internal/guard"
	"github.com/octavarium-xyz/frameworks-base/internal/identity"
	"github.com/octavarium-xyz/frameworks-base/internal/keeplist"
	"github.com/octavarium-xyz/frameworks-base/internal/profiles"
)

// Collaborators bundles the runtime adapters the engine drives. Env and
// Flags are required. Tasks may be nil when no activity monitor exists;
// Proc and Stack fall back to the real process controller and call-stack
// inspector.
type Collaborators struct {
	Env   schemas.RuntimeEnv
	Flags schemas.PropertyStore
	Tasks schemas.TaskMonitor
	Proc  schemas.ProcessController
	Stack schemas.StackInspector
}

// Engine owns the per-process identity state and the certification guard.
type Engine struct {
	logger *zap.Logger
	env    schemas.RuntimeEnv
	flags  schemas.PropertyStore

	ident *identity.Store
	proc  *identity.Process
	guard *guard.Guard

	// now is swapped out in tests that pin the timestamp override.
	now func() time.Time
}

// New wires an Engine around the exposed identity store and the runtime
// collaborators.
func New(logger *zap.Logger, ident *identity.Store, collab Collaborators) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ident == nil {
		return nil, fmt.Errorf("identity store is required")
	}
	if collab.Env == nil {
		return nil, fmt.Errorf("runtime environment is required")
	}
	if collab.Flags == nil {
		return nil, fmt.Errorf("property store is required")
	}

	proc := &identity.Process{}
	return &Engine{
		logger: logger.With(zap.String("component", "policy_engine")),
		env:    collab.Env,
		flags:  collab.Flags,
		ident:  ident,
		proc:   proc,
		guard:  guard.New(logger, collab.Flags, collab.Tasks, collab.Proc, collab.Stack, proc),
		now:    time.Now,
	}, nil
}

// InitProcess resolves and applies the identity overrides for the calling
// process. It is safe to invoke more than once; re-applying the same
// resolved profile leaves the exposed identity unchanged. Failures are
// logged, never returned: the process keeps starting with whatever
// identity was established.
func (e *Engine) InitProcess(ctx context.Context) {
	pkg := e.env.PackageName()
	proc := e.env.ProcessName()

	gms := pkg == schemas.PackageGms && proc == schemas.ProcessGmsUnstable
	excluded := classify.IsExcludedCamera(pkg)
	e.proc.Record(proc, gms, excluded)

	logger := e.logger.With(
		zap.String("package", pkg),
		zap.String("process", proc),
	)

	// Every process starts from the clean release identity.
	if generic, ok := profiles.Lookup(schemas.ProfileGeneric); ok {
		e.ident.Apply(generic.Props)
	}

	if pkg == "" || proc == "" {
		logger.Debug("Missing package or process name, keeping the generic identity only.")
		return
	}
	if excluded {
		logger.Debug("Camera package excluded from identity overrides.")
		return
	}

	decision := classify.Classify(classify.Facts{
		PackageName:    pkg,
		ProcessName:    proc,
		Tablet:         e.env.Tablet(),
		DeviceClass:    classify.ResolveDeviceClass(e.env.DeviceModel(), e.env.SocManufacturer()),
		GmsCertProcess: gms,
		SpoofProps:     e.flags.GetBool(schemas.FlagSpoofProps, true),
		MusicDisguise:  e.flags.GetBool(schemas.FlagMusicDisguise, false),
	})
	logger.Info("Resolved spoofing decision.",
		zap.String("category", decision.Category.String()),
		zap.String("profile", string(decision.Profile)),
		zap.Bool("time_only", decision.TimeOnly))

	switch decision.Category {
	case schemas.CategoryGmsCore:
		e.spoofGmsBuild(ctx, logger)
	case schemas.CategoryFlagship, schemas.CategoryMusic:
		e.applyCategoryProfile(pkg, decision, logger)
	}

	e.applyPostOverrides(pkg, proc, logger)
}

// GuardAttestation vets one hardware attestation request from this
// process. A spoofed process inside the attestation path gets
// guard.ErrAttestationBlocked; the caller must fail the request rather
// than fabricate a result.
func (e *Engine) GuardAttestation(ctx context.Context) error {
	return e.guard.CheckAttestation(ctx)
}

// spoofGmsBuild copies the certified build attributes from the override
// store into the exposed identity, bypassing the keep-list. The guard's
// pre-flight runs first: mid sign-in the spoof is deferred to the next
// process start.
func (e *Engine) spoofGmsBuild(ctx context.Context, logger *zap.Logger) {
	if !e.guard.ShouldCertify(ctx) {
		logger.Info("Certification deferred for this launch.")
		return
	}
	if !e.flags.GetBool(schemas.FlagSpoofGms, true) {
		logger.Debug("GMS build spoofing disabled.")
		return
	}

	applied := 0
	for _, key := range schemas.GmsSpoofKeys {
		storeKey := schemas.GmsOverridePrefix + string(key)
		raw, ok := e.flags.GetString(storeKey)
		if !ok {
			logger.Warn("Override value missing, attribute left untouched.",
				zap.String("key", storeKey))
			continue
		}
		if err := e.ident.Set(key, schemas.StringValue(raw)); err != nil {
			logger.Warn("Override value rejected.",
				zap.String("key", storeKey), zap.Error(err))
			continue
		}
		applied++
	}
	logger.Info("Certified build attributes applied.", zap.Int("applied", applied))
}

// applyCategoryProfile handles the flagship and music categories: an
// optional timestamp refresh plus the resolved profile, run through the
// keep-list before it reaches the identity store.
func (e *Engine) applyCategoryProfile(pkg string, decision schemas.Decision, logger *zap.Logger) {
	if decision.TimeOnly {
		if err := e.ident.Set(schemas.KeyTime, schemas.LongValue(e.now().UnixMilli())); err != nil {
			logger.Warn("Refreshing build timestamp failed.", zap.Error(err))
		}
	}
	if decision.Profile == "" {
		return
	}

	profile, ok := profiles.Lookup(decision.Profile)
	if !ok {
		logger.Error("Decision names a profile missing from the catalog.",
			zap.String("profile", string(decision.Profile)))
		return
	}
	applied := e.ident.Apply(keeplist.Filter(pkg, profile.Props))
	logger.Info("Device profile applied.",
		zap.String("profile", string(profile.ID)),
		zap.Int("applied", applied))
}

// applyPostOverrides restores individual real values for packages that
// break when a specific attribute stays spoofed. First match wins.
func (e *Engine) applyPostOverrides(pkg, proc string, logger *zap.Logger) {
	switch {
	case pkg == schemas.PackageSettingsIntelligence:
		stamp := strconv.FormatInt(e.env.BuildTime().UnixMilli(), 10)
		if err := e.ident.Set(schemas.KeyFingerprint, schemas.StringValue(stamp)); err != nil {
			logger.Warn("Build timestamp fingerprint override failed.", zap.Error(err))
		}
	case pkg == schemas.PackageARCore:
		if err := e.ident.Set(schemas.KeyFingerprint, schemas.StringValue(e.env.DeviceFingerprint())); err != nil {
			logger.Warn("Real fingerprint override failed.", zap.Error(err))
		}
	case strings.Contains(pkg, schemas.PackageGms) && strings.Contains(proc, "ui"):
		if err := e.ident.Set(schemas.KeyModel, schemas.StringValue(e.env.DeviceModel())); err != nil {
			logger.Warn("Real model override failed.", zap.Error(err))
		}
	}
}
