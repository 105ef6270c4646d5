package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/kenoss/command-chain/chain"
)

// Settings is the TOML-backed editor configuration.
type Settings struct {
	// Marker is the cursor marker token recognized in text elements.
	Marker string `toml:"marker"`

	// ChainsFile is the path of the JSON chain definitions file.
	ChainsFile string `toml:"chains_file"`

	// PointRecovery controls anchor-based cursor recovery. Turning it off
	// disables it for the whole process.
	PointRecovery bool `toml:"point_recovery"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Marker:        chain.DefaultMarker,
		ChainsFile:    "chains.json",
		PointRecovery: true,
	}
}

// LoadSettings reads settings from a TOML file. A missing file yields the
// defaults; a malformed file is an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if s.Marker == "" {
		s.Marker = chain.DefaultMarker
	}
	return s, nil
}
