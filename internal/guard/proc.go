package guard

import "os"

// SelfController terminates the current process. It is the default
// ProcessController outside tests.
type SelfController struct{}

// Kill ends the running process without unwinding.
func (SelfController) Kill() {
	if p, err := os.FindProcess(os.Getpid()); err == nil {
		_ = p.Kill()
	}
}
