package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "http://example.com"},
		{"example.com:8080", "http://example.com:8080"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/", "https://example.com"},
		{"  example.com \n", "http://example.com"},
		{"", ""},
		{"://", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAddress(tt.in), "input %q", tt.in)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	config := &Config{
		ServerAddress: "http://example.com:8080",
		AccessToken:   "secret-token",
		SavePath:      "/saves/hotseat",
		DeviceID:      newDeviceID(),
	}
	require.NoError(t, saveConfig(path, config))

	loaded, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
	assert.True(t, loaded.complete())
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.False(t, config.complete())
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, writeFileAtomic(path, []byte("not = [valid")))
	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestNewDeviceID(t *testing.T) {
	a, b := newDeviceID(), newDeviceID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSaveFileName(t *testing.T) {
	assert.Equal(t, "First.Civ5Save", saveFileName(&Game{Name: "First"}))
}
