package emulation

import "sync/atomic"

// KillRecorder is a ProcessController that records the kill instead of
// terminating anything. The guard's watcher fires it when the emulated
// process would have been restarted.
type KillRecorder struct {
	fired atomic.Bool
}

// Kill marks the process as restarted. Repeated calls are no-ops.
func (r *KillRecorder) Kill() {
	r.fired.Store(true)
}

// Killed reports whether a restart was requested.
func (r *KillRecorder) Killed() bool {
	return r.fired.Load()
}

// FixedStack is a StackInspector with a fixed answer, used to emulate a
// caller inside or outside the platform attestation path.
type FixedStack struct {
	InPath bool
}

func (s FixedStack) InAttestationPath() bool { return s.InPath }
