package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
	"github.com/octavarium-xyz/frameworks-base/internal/emulation"
	"github.com/octavarium-xyz/frameworks-base/internal/guard"
	"github.com/octavarium-xyz/frameworks-base/internal/identity"
	"github.com/octavarium-xyz/frameworks-base/internal/mocks"
	"github.com/octavarium-xyz/frameworks-base/internal/propstore"
)

const realFingerprint = "google/oriole/oriole:15/BP1A.250305.019/13003188:user/release-keys"

// realBuild seeds the identity store with a development build so the
// generic profile's overrides are observable.
func realBuild() schemas.BuildInfo {
	return schemas.BuildInfo{
		Brand:            "google",
		Device:           "oriole",
		Manufacturer:     "Google",
		Product:          "oriole",
		Model:            "Pixel 6",
		Hardware:         "oriole",
		Board:            "oriole",
		Fingerprint:      realFingerprint,
		ID:               "BP1A.250305.019",
		Display:          "BP1A.250305.019",
		Type:             "userdebug",
		Tags:             "test-keys",
		SecurityPatch:    "2025-03-05",
		DeviceInitialSDK: 31,
		Release:          "15",
		Time:             time.UnixMilli(1741150000000),
	}
}

func realEnv(pkg, proc string) emulation.StaticEnv {
	return emulation.StaticEnv{
		Package:     pkg,
		Process:     proc,
		Model:       "Pixel 6",
		Soc:         "Google",
		Fingerprint: realFingerprint,
		Built:       time.UnixMilli(1741150000000),
	}
}

func newTestEngine(t *testing.T, env emulation.StaticEnv, flags *propstore.Memory, tasks schemas.TaskMonitor) (*Engine, *identity.Store) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	ident := identity.NewStore(logger, realBuild())
	eng, err := New(logger, ident, Collaborators{Env: env, Flags: flags, Tasks: tasks})
	require.NoError(t, err)
	return eng, ident
}

func exposed(t *testing.T, ident *identity.Store, key schemas.AttributeKey) string {
	t.Helper()
	v, ok := ident.Get(key)
	require.True(t, ok)
	return v.String()
}

func TestNewValidation(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ident := identity.NewStore(logger, realBuild())
	env := realEnv("com.example.app", "com.example.app")
	flags := propstore.NewMemory()

	_, err := New(logger, nil, Collaborators{Env: env, Flags: flags})
	assert.Error(t, err)

	_, err = New(logger, ident, Collaborators{Flags: flags})
	assert.Error(t, err)

	_, err = New(logger, ident, Collaborators{Env: env})
	assert.Error(t, err)

	_, err = New(nil, ident, Collaborators{Env: env, Flags: flags})
	assert.NoError(t, err, "a nil logger falls back to the no-op logger")
}

func TestInitProcessUnlistedPackageGetsGenericOnly(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv("com.example.app", "com.example.app"), propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "user", exposed(t, ident, schemas.KeyType))
	assert.Equal(t, "release-keys", exposed(t, ident, schemas.KeyTags))
	assert.Equal(t, "google", exposed(t, ident, schemas.KeyBrand))
	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, realFingerprint, exposed(t, ident, schemas.KeyFingerprint))
}

func TestInitProcessEmptyProcessNameStopsAfterGeneric(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv("com.android.chrome", ""), propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "user", exposed(t, ident, schemas.KeyType))
	assert.Equal(t, "release-keys", exposed(t, ident, schemas.KeyTags))
	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel),
		"no profile beyond the generic one for an empty process name")
}

func TestInitProcessExcludedCameraStaysReal(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv("com.google.android.GoogleCamera", "com.google.android.GoogleCamera"), propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())
	afterFirst := ident.Snapshot()

	// A second initialization must not add anything either.
	eng.InitProcess(context.Background())

	assert.Equal(t, afterFirst, ident.Snapshot())
	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, realFingerprint, exposed(t, ident, schemas.KeyFingerprint))
	assert.Equal(t, "user", exposed(t, ident, schemas.KeyType), "the generic profile still applies")
}

func TestInitProcessFlagshipPhone(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv("com.android.chrome", "com.android.chrome"), propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 9 Pro XL", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, "komodo", exposed(t, ident, schemas.KeyDevice))
	assert.Equal(t, "komodo", exposed(t, ident, schemas.KeyBoard))
	assert.Equal(t, "google/komodo/komodo:15/AP4A.250105.002/12701944:user/release-keys",
		exposed(t, ident, schemas.KeyFingerprint))
}

func TestInitProcessFlagshipTablet(t *testing.T) {
	env := realEnv("com.google.android.apps.weather", "com.google.android.apps.weather")
	env.IsTablet = true
	eng, ident := newTestEngine(t, env, propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel Tablet", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, "tangorpro", exposed(t, ident, schemas.KeyDevice))
}

func TestInitProcessFlagshipSuppressedOnMainline(t *testing.T) {
	env := realEnv("com.android.chrome", "com.android.chrome")
	env.Model = "Pixel 9"
	eng, ident := newTestEngine(t, env, propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel),
		"the seeded model is untouched on mainline hardware")
}

func TestInitProcessFlagshipSuppressedByMasterSwitch(t *testing.T) {
	flags := propstore.NewMemory()
	flags.Put(schemas.FlagSpoofProps, "false")
	eng, ident := newTestEngine(t, realEnv("com.android.chrome", "com.android.chrome"), flags, nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel))
}

func TestInitProcessLegacyGmsWorker(t *testing.T) {
	env := realEnv(schemas.PackageGms, "com.google.android.gms.gapps")
	env.Model = "Pixel 5"
	eng, ident := newTestEngine(t, env, propstore.NewMemory(), nil)
	eng.now = func() time.Time { return time.UnixMilli(1750000000000) }

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 5a", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, "barbet", exposed(t, ident, schemas.KeyDevice))
	assert.Equal(t, "google/barbet/barbet:14/AP2A.240805.005.S4/12281092:user/release-keys",
		exposed(t, ident, schemas.KeyFingerprint))
	assert.Equal(t, "oriole", exposed(t, ident, schemas.KeyBoard),
		"the legacy profile carries no BOARD")

	ts, ok := ident.Get(schemas.KeyTime)
	require.True(t, ok)
	assert.Equal(t, int64(1750000000000), ts.Int64())
}

func TestInitProcessGmsWorkerOnTensorGetsTimeOnly(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv(schemas.PackageGms, "com.google.android.gms.gapps"), propstore.NewMemory(), nil)
	eng.now = func() time.Time { return time.UnixMilli(1750000000000) }

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel))
	ts, ok := ident.Get(schemas.KeyTime)
	require.True(t, ok)
	assert.Equal(t, int64(1750000000000), ts.Int64())
}

func certifiedOverrides() map[string]string {
	return map[string]string{
		"persist.sys.pihooks_BRAND":                  "google",
		"persist.sys.pihooks_DEVICE":                 "komodo",
		"persist.sys.pihooks_DEVICE_INITIAL_SDK_INT": "21",
		"persist.sys.pihooks_FINGERPRINT":            "google/komodo/komodo:15/AP4A.250105.002/12701944:user/release-keys",
		"persist.sys.pihooks_ID":                     "AP4A.250105.002",
		"persist.sys.pihooks_MANUFACTURER":           "Google",
		"persist.sys.pihooks_MODEL":                  "Pixel 9 Pro XL",
		"persist.sys.pihooks_PRODUCT":                "komodo",
		"persist.sys.pihooks_RELEASE":                "15",
		"persist.sys.pihooks_SECURITY_PATCH":         "2025-01-05",
		"persist.sys.pihooks_TAGS":                   "release-keys",
		"persist.sys.pihooks_TYPE":                   "user",
	}
}

func TestInitProcessGmsCertification(t *testing.T) {
	monitor := emulation.NewScriptedMonitor("com.android.launcher")
	defer monitor.Close()

	flags := propstore.NewMemory()
	flags.Seed(certifiedOverrides())

	eng, ident := newTestEngine(t, realEnv(schemas.PackageGms, schemas.ProcessGmsUnstable), flags, monitor)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 9 Pro XL", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, "komodo", exposed(t, ident, schemas.KeyDevice))
	assert.Equal(t, "2025-01-05", exposed(t, ident, schemas.KeySecurityPatch))
	assert.Equal(t, "google/komodo/komodo:15/AP4A.250105.002/12701944:user/release-keys",
		exposed(t, ident, schemas.KeyFingerprint))

	sdk, ok := ident.Get(schemas.KeyDeviceInitialSDK)
	require.True(t, ok)
	assert.Equal(t, schemas.KindInt, sdk.Kind(), "the override store value lands in the typed slot")
	assert.Equal(t, int64(21), sdk.Int64())
}

func TestInitProcessGmsCertificationDeferredOnAccountScreen(t *testing.T) {
	monitor := emulation.NewScriptedMonitor(schemas.GmsAddAccountActivity)
	defer monitor.Close()

	flags := propstore.NewMemory()
	flags.Seed(certifiedOverrides())

	eng, ident := newTestEngine(t, realEnv(schemas.PackageGms, schemas.ProcessGmsUnstable), flags, monitor)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel),
		"no certified attributes while the account screen is up")
	assert.Equal(t, realFingerprint, exposed(t, ident, schemas.KeyFingerprint))
}

func TestInitProcessGmsSpoofSkipsAbsentKeys(t *testing.T) {
	monitor := emulation.NewScriptedMonitor("com.android.launcher")
	defer monitor.Close()

	flags := propstore.NewMemory()
	flags.Seed(map[string]string{
		"persist.sys.pihooks_MODEL": "Pixel 9 Pro XL",
		"persist.sys.pihooks_BRAND": "google",
	})

	eng, ident := newTestEngine(t, realEnv(schemas.PackageGms, schemas.ProcessGmsUnstable), flags, monitor)

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 9 Pro XL", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, realFingerprint, exposed(t, ident, schemas.KeyFingerprint),
		"absent override keys leave the slot untouched")
}

func TestInitProcessARCoreSeesRealFingerprint(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv(schemas.PackageARCore, schemas.PackageARCore), propstore.NewMemory(), nil)

	// Simulate a stale spoof left in the exposed identity.
	require.NoError(t, ident.Set(schemas.KeyFingerprint, schemas.StringValue("google/komodo/komodo:15/AP4A.250105.002/12701944:user/release-keys")))

	eng.InitProcess(context.Background())

	assert.Equal(t, realFingerprint, exposed(t, ident, schemas.KeyFingerprint))
}

func TestInitProcessSettingsIntelligenceFingerprint(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv(schemas.PackageSettingsIntelligence, schemas.PackageSettingsIntelligence), propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "1741150000000", exposed(t, ident, schemas.KeyFingerprint),
		"the fingerprint becomes the real build timestamp in milliseconds")
}

func TestInitProcessGmsUIProcessShowsRealModel(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv(schemas.PackageGms, "com.google.android.gms.ui"), propstore.NewMemory(), nil)

	require.NoError(t, ident.Set(schemas.KeyModel, schemas.StringValue("Pixel 9 Pro XL")))

	eng.InitProcess(context.Background())

	assert.Equal(t, "Pixel 6", exposed(t, ident, schemas.KeyModel))
}

func TestInitProcessMusicDisguise(t *testing.T) {
	flags := propstore.NewMemory()
	flags.Put(schemas.FlagMusicDisguise, "true")

	eng, ident := newTestEngine(t, realEnv("com.netease.cloudmusic", "com.netease.cloudmusic"), flags, nil)

	eng.InitProcess(context.Background())

	assert.Equal(t, "meizu", exposed(t, ident, schemas.KeyBrand))
	assert.Equal(t, "meizu 16th Plus", exposed(t, ident, schemas.KeyModel))
	assert.Equal(t, "Flyme", exposed(t, ident, schemas.KeyDisplay))
	assert.Equal(t, realFingerprint, exposed(t, ident, schemas.KeyFingerprint),
		"the music profile leaves the fingerprint alone")
}

func TestInitProcessIsIdempotent(t *testing.T) {
	eng, ident := newTestEngine(t, realEnv("com.android.chrome", "com.android.chrome"), propstore.NewMemory(), nil)

	eng.InitProcess(context.Background())
	first := ident.Snapshot()
	eng.InitProcess(context.Background())

	assert.Equal(t, first, ident.Snapshot())
}

func TestGuardAttestation(t *testing.T) {
	t.Run("spoofed process in attestation path is blocked", func(t *testing.T) {
		stack := new(mocks.MockStackInspector)
		stack.On("InAttestationPath").Return(true)

		logger := zaptest.NewLogger(t)
		ident := identity.NewStore(logger, realBuild())
		eng, err := New(logger, ident, Collaborators{
			Env:   realEnv("com.android.chrome", "com.android.chrome"),
			Flags: propstore.NewMemory(),
			Stack: stack,
		})
		require.NoError(t, err)

		eng.InitProcess(context.Background())
		assert.ErrorIs(t, eng.GuardAttestation(context.Background()), guard.ErrAttestationBlocked)
	})

	t.Run("excluded camera process is allowed through", func(t *testing.T) {
		stack := new(mocks.MockStackInspector)
		stack.On("InAttestationPath").Return(true)

		logger := zaptest.NewLogger(t)
		ident := identity.NewStore(logger, realBuild())
		eng, err := New(logger, ident, Collaborators{
			Env:   realEnv("com.google.android.GoogleCamera", "com.google.android.GoogleCamera"),
			Flags: propstore.NewMemory(),
			Stack: stack,
		})
		require.NoError(t, err)

		eng.InitProcess(context.Background())
		assert.NoError(t, eng.GuardAttestation(context.Background()))
	})
}
