package propstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSettingsDBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	db, err := OpenSettingsDB(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put("persist.sys.pixelprops.gms", "true"))
	require.NoError(t, db.Put("persist.sys.pihooks_MODEL", "Pixel 9 Pro XL"))

	v, ok := db.GetString("persist.sys.pihooks_MODEL")
	assert.True(t, ok)
	assert.Equal(t, "Pixel 9 Pro XL", v)

	assert.True(t, db.GetBool("persist.sys.pixelprops.gms", false))
	assert.False(t, db.GetBool("persist.sys.disguise_props_for_music_app", false))

	_, ok = db.GetString("persist.sys.pihooks_BRAND")
	assert.False(t, ok)
}

func TestSettingsDBUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	db, err := OpenSettingsDB(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put("persist.sys.pphooks.enable", "true"))
	require.NoError(t, db.Put("persist.sys.pphooks.enable", "false"))

	v, ok := db.GetString("persist.sys.pphooks.enable")
	require.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestSettingsDBPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")

	db, err := OpenSettingsDB(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	require.NoError(t, db.Put("persist.sys.pihooks_ID", "AP4A.250105.002"))
	require.NoError(t, db.Close())

	reopened, err := OpenSettingsDB(zaptest.NewLogger(t), path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.GetString("persist.sys.pihooks_ID")
	assert.True(t, ok)
	assert.Equal(t, "AP4A.250105.002", v)
}

func TestOpenSettingsDBBadPath(t *testing.T) {
	_, err := OpenSettingsDB(zaptest.NewLogger(t), filepath.Join(t.TempDir(), "missing", "settings.db"))
	assert.Error(t, err)
}
