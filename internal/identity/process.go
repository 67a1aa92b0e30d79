package identity

import "sync/atomic"

// Process captures the classification facts of the running process. The
// init path writes them once; the certification guard and its watcher
// goroutine read them afterwards, so every field is atomic.
type Process struct {
	gms      atomic.Bool
	excluded atomic.Bool
	name     atomic.Pointer[string]
}

// Record stores the process facts established during initialization.
func (p *Process) Record(name string, gms, excluded bool) {
	p.name.Store(&name)
	p.gms.Store(gms)
	p.excluded.Store(excluded)
}

// Name returns the recorded process name, or "" before Record.
func (p *Process) Name() string {
	if s := p.name.Load(); s != nil {
		return *s
	}
	return ""
}

// Gms reports whether this is the GMS certification process.
func (p *Process) Gms() bool { return p.gms.Load() }

// Excluded reports whether the process belongs to an excluded camera
// package and must never observe a spoofed identity.
func (p *Process) Excluded() bool { return p.excluded.Load() }
