// Package guard enforces the certification policy. It vets hardware
// attestation requests issued by spoofed processes and decides whether the
// GMS certification process may receive a spoofed build at all.
package guard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/identity"
)

// ErrAttestationBlocked rejects a key attestation request issued while the
// process wears a spoofed identity. Callers must surface the failure, never
// substitute fabricated attestation data.
var ErrAttestationBlocked = errors.New("key attestation blocked for spoofed process")

// Guard owns the attestation checks and the one-shot account screen
// watcher. A single Guard serves the whole process.
type Guard struct {
	logger *zap.Logger
	flags  schemas.PropertyStore
	tasks  schemas.TaskMonitor
	proc   schemas.ProcessController
	stack  schemas.StackInspector
	ident  *identity.Process

	mu       sync.Mutex
	watching bool
	killOnce sync.Once
}

// New assembles a Guard. tasks may be nil when no activity monitor exists;
// the guard then stays permissive. A nil proc or stack falls back to the
// real self-terminating controller and call-stack inspector.
func New(logger *zap.Logger, flags schemas.PropertyStore, tasks schemas.TaskMonitor, proc schemas.ProcessController, stack schemas.StackInspector, ident *identity.Process) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if proc == nil {
		proc = SelfController{}
	}
	if stack == nil {
		stack = CallStackInspector{}
	}
	return &Guard{
		logger: logger.Named("guard"),
		flags:  flags,
		tasks:  tasks,
		proc:   proc,
		stack:  stack,
		ident:  ident,
	}
}

// CheckAttestation vets one attestation request from this process. A nil
// return lets the request through.
func (g *Guard) CheckAttestation(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !g.flags.GetBool(schemas.FlagSpoofGms, true) {
		return nil
	}
	if !g.stack.InAttestationPath() {
		return nil
	}
	if g.ident.Excluded() {
		return nil
	}
	g.logger.Warn("Blocking key attestation request.",
		zap.String("process", g.ident.Name()))
	return ErrAttestationBlocked
}

// ShouldCertify decides whether the certification process may receive the
// spoofed build right now. A false return defers spoofing: either this is
// not the certification process, or the user is mid sign-in and the
// account screen watcher has been armed instead.
func (g *Guard) ShouldCertify(ctx context.Context) bool {
	if !strings.Contains(strings.ToLower(g.ident.Name()), "unstable") {
		return false
	}
	if !g.accountScreenOnTop(ctx) {
		return true
	}
	if err := g.watchAccountScreen(ctx); err != nil {
		g.logger.Warn("Account screen watch unavailable, certifying anyway.", zap.Error(err))
		return true
	}
	return false
}

// accountScreenOnTop reports whether the GMS add-account activity is the
// foreground task. Any failure to find out counts as "not on top".
func (g *Guard) accountScreenOnTop(ctx context.Context) bool {
	if g.tasks == nil {
		return false
	}
	top, err := g.tasks.TopActivity(ctx)
	if err != nil {
		g.logger.Debug("Top activity query failed.", zap.Error(err))
		return false
	}
	return top == schemas.GmsAddAccountActivity
}
