package guard

import (
	"runtime"
	"strings"
)

// CallStackInspector walks the live call stack looking for frames that
// belong to the attestation subsystem. It is the default StackInspector
// outside tests.
type CallStackInspector struct{}

// InAttestationPath reports whether any caller frame names the DroidGuard
// attestation layer.
func (CallStackInspector) InAttestationPath() bool {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(strings.ToLower(frame.Function), "droidguard") {
			return true
		}
		if !more {
			return false
		}
	}
}
