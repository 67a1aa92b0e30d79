package schemas

import (
	"context"
	"time"
)

// -- Collaborator Interfaces --
// The policy engine treats everything outside its own state as a black box
// reachable through these interfaces. Production embedders supply the real
// platform services; the CLI and the tests supply emulated ones.

// PropertyStore is the persisted boolean/string configuration store the
// policy consults by key: feature flags and the per-key certification
// override values.
type PropertyStore interface {
	// GetString returns the stored value for key and whether it exists.
	GetString(key string) (string, bool)
	// GetBool parses the stored value as a boolean, returning def when the
	// key is absent or unparseable.
	GetBool(key string, def bool) bool
}

// RuntimeEnv supplies the facts about the calling process and the physical
// device that drive classification and the post-overrides.
type RuntimeEnv interface {
	PackageName() string
	ProcessName() string
	// DeviceModel is the real marketing model name of the hardware.
	DeviceModel() string
	// SocManufacturer is the silicon vendor string.
	SocManufacturer() string
	// DeviceFingerprint is the real, unspoofed build fingerprint.
	DeviceFingerprint() string
	// BuildTime is the real system build timestamp.
	BuildTime() time.Time
	// Tablet reports the precomputed tablet form-factor signal.
	Tablet() bool
}

// TaskMonitor exposes the foreground task stack: the identifier of the
// top-of-stack activity and a subscription for stack-change notifications.
type TaskMonitor interface {
	TopActivity(ctx context.Context) (string, error)
	// SubscribeStackChanges registers for task stack change events.
	// Registration returns immediately; events arrive on the returned
	// channel until cancel is called or the monitor shuts down (which
	// closes the channel).
	SubscribeStackChanges() (events <-chan struct{}, cancel func(), err error)
}

// ProcessController terminates the current process. Killing a process that
// is already exiting is a no-op, not an error.
type ProcessController interface {
	Kill()
}

// StackInspector reports whether the current call chain originates from the
// platform attestation subsystem.
type StackInspector interface {
	InAttestationPath() bool
}

// -- Real Build Snapshot --

// BuildInfo captures the real device's exposed build values. It seeds the
// identity store before any override is applied.
type BuildInfo struct {
	Brand            string
	Device           string
	Manufacturer     string
	Product          string
	Model            string
	Hardware         string
	Board            string
	Fingerprint      string
	ID               string
	Display          string
	Type             string
	Tags             string
	SecurityPatch    string
	DeviceInitialSDK int32
	Release          string
	Time             time.Time
}

// Props renders the snapshot as an ordered property list, one entry per
// attribute key.
func (b BuildInfo) Props() []Prop {
	return []Prop{
		{KeyBrand, StringValue(b.Brand)},
		{KeyDevice, StringValue(b.Device)},
		{KeyManufacturer, StringValue(b.Manufacturer)},
		{KeyProduct, StringValue(b.Product)},
		{KeyModel, StringValue(b.Model)},
		{KeyHardware, StringValue(b.Hardware)},
		{KeyBoard, StringValue(b.Board)},
		{KeyFingerprint, StringValue(b.Fingerprint)},
		{KeyBuildID, StringValue(b.ID)},
		{KeyDisplay, StringValue(b.Display)},
		{KeyType, StringValue(b.Type)},
		{KeyTags, StringValue(b.Tags)},
		{KeySecurityPatch, StringValue(b.SecurityPatch)},
		{KeyDeviceInitialSDK, IntValue(b.DeviceInitialSDK)},
		{KeyRelease, StringValue(b.Release)},
		{KeyTime, LongValue(b.Time.UnixMilli())},
	}
}
