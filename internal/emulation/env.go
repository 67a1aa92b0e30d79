// Package emulation provides in-process stand-ins for the runtime facts
// the policy engine normally learns from the platform: the identity of the
// calling process, the real hardware, and the foreground activity stack.
package emulation

import "time"

// StaticEnv is a RuntimeEnv with fixed answers, assembled from
// configuration and CLI flags.
type StaticEnv struct {
	Package     string
	Process     string
	Model       string
	Soc         string
	Fingerprint string
	Built       time.Time
	IsTablet    bool
}

func (e StaticEnv) PackageName() string       { return e.Package }
func (e StaticEnv) ProcessName() string       { return e.Process }
func (e StaticEnv) DeviceModel() string       { return e.Model }
func (e StaticEnv) SocManufacturer() string   { return e.Soc }
func (e StaticEnv) DeviceFingerprint() string { return e.Fingerprint }
func (e StaticEnv) BuildTime() time.Time      { return e.Built }
func (e StaticEnv) Tablet() bool              { return e.IsTablet }
