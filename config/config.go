package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-piano/debug"
)

// PracticeConfig stores the last-used exercise settings
type PracticeConfig struct {
	Mode              string `json:"mode,omitempty"`     // scales, chords-single, chords-progression, chords-by-type, arpeggios
	Key               string `json:"key,omitempty"`      // C, Db, D, ... (flats for black keys)
	Scale             string `json:"scale,omitempty"`    // major, minor, dorian, ...
	RootNote          string `json:"rootNote,omitempty"` // root for chord/arpeggio modes
	ChordQuality      string `json:"chordQuality,omitempty"`
	ArpeggioOctaves   int    `json:"arpeggioOctaves,omitempty"` // 1-3
	ArpeggioDirection string `json:"arpeggioDirection,omitempty"`
}

// MIDIConfig stores device preferences
type MIDIConfig struct {
	PortFilter string `json:"portFilter,omitempty"` // substring match on input port names
	OutputPort string `json:"outputPort,omitempty"` // port for virtual playback
	Channel    int    `json:"channel,omitempty"`    // 0-15
	HoldMillis int    `json:"holdMillis,omitempty"` // virtual note hold before the deferred note-off
}

// UIConfig stores terminal rendering preferences
type UIConfig struct {
	Palette string `json:"palette,omitempty"` // built-in palette name or a .gpl path
}

// Config is the main configuration structure
type Config struct {
	Practice  PracticeConfig `json:"practice,omitempty"`
	MIDI      MIDIConfig     `json:"midi,omitempty"`
	UI        UIConfig       `json:"ui,omitempty"`
	SentryDSN string         `json:"sentryDsn,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Practice: PracticeConfig{
			Mode:              "scales",
			Key:               "C",
			Scale:             "major",
			RootNote:          "C",
			ChordQuality:      "major",
			ArpeggioOctaves:   1,
			ArpeggioDirection: "up",
		},
		MIDI: MIDIConfig{
			Channel:    0,
			HoldMillis: 500,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-piano"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Validate()

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate clamps out-of-range values in place. Bad settings are corrected,
// not propagated into the generators.
func (c *Config) Validate() {
	if c.Practice.ArpeggioOctaves < 1 {
		if c.Practice.ArpeggioOctaves != 0 {
			debug.Log("config", "clamping arpeggioOctaves %d -> 1", c.Practice.ArpeggioOctaves)
		}
		c.Practice.ArpeggioOctaves = 1
	}
	if c.Practice.ArpeggioOctaves > 3 {
		debug.Log("config", "clamping arpeggioOctaves %d -> 3", c.Practice.ArpeggioOctaves)
		c.Practice.ArpeggioOctaves = 3
	}
	if c.MIDI.Channel < 0 {
		debug.Log("config", "clamping channel %d -> 0", c.MIDI.Channel)
		c.MIDI.Channel = 0
	}
	if c.MIDI.Channel > 15 {
		debug.Log("config", "clamping channel %d -> 15", c.MIDI.Channel)
		c.MIDI.Channel = 15
	}
	if c.MIDI.HoldMillis == 0 {
		c.MIDI.HoldMillis = 500
	}
	if c.MIDI.HoldMillis < 50 {
		debug.Log("config", "clamping holdMillis %d -> 50", c.MIDI.HoldMillis)
		c.MIDI.HoldMillis = 50
	}
	if c.MIDI.HoldMillis > 5000 {
		debug.Log("config", "clamping holdMillis %d -> 5000", c.MIDI.HoldMillis)
		c.MIDI.HoldMillis = 5000
	}
}
