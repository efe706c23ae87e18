package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Config is everything the client needs to talk to the server and find the
// hotseat save directory. It is loaded once at startup and passed around
// explicitly; nothing reads it from ambient state.
type Config struct {
	ServerAddress string `toml:"server_address"`
	AccessToken   string `toml:"access_token"`
	SavePath      string `toml:"save_path"`
	DeviceID      string `toml:"device_id"`
}

func (c *Config) complete() bool {
	return c.ServerAddress != "" && c.AccessToken != "" && c.SavePath != ""
}

func appDataDir() string {
	var dir string
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		dir = filepath.Join(appData, "civ5client")
	} else {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".civ5client")
	}
	os.MkdirAll(dir, 0755)
	return dir
}

func configPath() string {
	return filepath.Join(appDataDir(), "config.toml")
}

// loadConfig reads the config file. A missing file is not an error; the
// init flow fills in whatever is absent.
func loadConfig(path string) (*Config, error) {
	var config Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &config, nil
}

func saveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// parseAddress turns a possibly schemeless address into a usable base URL.
func parseAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	u, err := url.Parse(address)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func newDeviceID() string {
	return uuid.NewString()
}

// defaultSavePath returns the hotseat save directory the game engine reads
// from, per OS.
func defaultSavePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "linux":
		return filepath.Join(home, ".local", "share", "Aspyr", "Sid Meier's Civilization 5", "Saves", "hotseat"), nil
	case "darwin":
		return filepath.Join(home, "Documents", "Aspyr", "Sid Meier's Civilization 5", "Saves", "hotseat"), nil
	case "windows":
		return filepath.Join(home, "Documents", "My Games", "Sid Meier's Civilization 5", "Saves", "hotseat"), nil
	}
	return "", fmt.Errorf("no known save directory for %s", runtime.GOOS)
}
