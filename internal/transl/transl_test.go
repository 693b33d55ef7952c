package transl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanon(t *testing.T) {
	for spelling, want := range map[string]string{
		"name":    "name",
		"اسم":     "name",
		"rs":      "rust",
		"راست":    "rust",
		"v":       "version",
		"اصدار":   "version",
		"f":       "features",
		"مخدم_شع": "web_server",
		"منفذ":    "port",
	} {
		got, ok := Canon(spelling)
		assert.True(t, ok, spelling)
		assert.Equal(t, want, got, spelling)
	}

	_, ok := Canon("nonsense")
	assert.False(t, ok)
}

func TestIs(t *testing.T) {
	assert.True(t, Is("web_server", "web_server"))
	assert.True(t, Is("مخدم_شع", "web_server"))
	assert.False(t, Is("settings", "web_server"))
	assert.False(t, Is("unknown", "web_server"))
}
