package propstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemorySeedAndGet(t *testing.T) {
	store := NewMemory()
	store.Seed(map[string]string{
		"persist.sys.pphooks.enable": "true",
		"persist.sys.pihooks_MODEL":  "Pixel 9 Pro XL",
	})
	store.Put("persist.sys.pihooks_BRAND", "google")

	v, ok := store.GetString("persist.sys.pihooks_MODEL")
	assert.True(t, ok)
	assert.Equal(t, "Pixel 9 Pro XL", v)

	v, ok = store.GetString("persist.sys.pihooks_BRAND")
	assert.True(t, ok)
	assert.Equal(t, "google", v)

	_, ok = store.GetString("persist.sys.pihooks_DEVICE")
	assert.False(t, ok)
}

func TestMemoryGetBool(t *testing.T) {
	store := NewMemory()
	store.Seed(map[string]string{
		"enabled":  "true",
		"disabled": "0",
		"garbage":  "maybe",
	})

	assert.True(t, store.GetBool("enabled", false))
	assert.False(t, store.GetBool("disabled", true))
	assert.True(t, store.GetBool("garbage", true), "unparseable values fall back to the default")
	assert.False(t, store.GetBool("missing", false))
	assert.True(t, store.GetBool("missing", true))
}
