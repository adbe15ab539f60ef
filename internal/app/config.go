// Package app wires the core driver to a configuration file, a save-state
// directory, and a graphics backend — everything the core itself is
// forbidden from touching (spec.md §1's "no file I/O, no sockets" rule).
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all host-level configuration. The core never sees this type.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Audio     AudioConfig     `json:"audio"`
	Input     InputConfig     `json:"input"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`
	Paths     PathsConfig     `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
	Resizable  bool `json:"resizable"`
	Scale      int  `json:"scale"` // NES resolution multiplier
}

// VideoConfig contains video rendering configuration.
type VideoConfig struct {
	VSync   bool   `json:"vsync"`
	Filter  string `json:"filter"`  // "nearest", "linear"
	Backend string `json:"backend"` // "ebitengine", "headless"
}

// AudioConfig contains audio configuration.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	Volume     float32 `json:"volume"`
}

// InputConfig contains input configuration.
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
	Player2Keys KeyMapping `json:"player2_keys"`
}

// KeyMapping maps host keys to NES controller buttons.
type KeyMapping struct {
	Up, Down, Left, Right string
	A, B, Start, Select   string
}

// EmulationConfig contains emulation-specific settings.
type EmulationConfig struct {
	TraceDepth     int  `json:"trace_depth"`     // 0 disables the execution trace
	SaveStateSlots int  `json:"save_state_slots"`
	AutoSave       bool `json:"auto_save"`
}

// DebugConfig contains debugging and development options.
type DebugConfig struct {
	ShowFPS       bool `json:"show_fps"`
	EnableLogging bool `json:"enable_logging"`
}

// PathsConfig contains file and directory paths.
type PathsConfig struct {
	ROMs       string `json:"roms"`
	SaveStates string `json:"save_states"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 512, Height: 480, Resizable: true, Scale: 2},
		Video:  VideoConfig{VSync: true, Filter: "nearest", Backend: "ebitengine"},
		Audio:  AudioConfig{Enabled: true, SampleRate: 44100, Volume: 0.8},
		Input: InputConfig{
			Player1Keys: KeyMapping{Up: "W", Down: "S", Left: "A", Right: "D", A: "J", B: "K", Start: "Return", Select: "Space"},
			Player2Keys: KeyMapping{Up: "Up", Down: "Down", Left: "Left", Right: "Right", A: "N", B: "M", Start: "RShift", Select: "RCtrl"},
		},
		Emulation: EmulationConfig{TraceDepth: 0, SaveStateSlots: 10, AutoSave: false},
		Debug:     DebugConfig{},
		Paths:     PathsConfig{ROMs: "./roms", SaveStates: "./states"},
	}
}

// LoadFromFile loads configuration from a JSON file, writing out the
// defaults if the file does not yet exist.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("app: reading config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("app: parsing config file: %w", err)
	}
	c.validate()
	c.loaded = true
	return nil
}

// SaveToFile writes the configuration to a JSON file.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("app: creating config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("app: marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("app: writing config file: %w", err)
	}
	c.configPath = path
	return nil
}

func (c *Config) validate() {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = 512, 480
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = 0.8
	}
	if c.Emulation.SaveStateSlots <= 0 {
		c.Emulation.SaveStateSlots = 10
	}
	if c.Emulation.TraceDepth < 0 {
		c.Emulation.TraceDepth = 0
	}
}

// GetWindowResolution returns the window resolution at the configured scale.
func (c *Config) GetWindowResolution() (int, int) {
	return 256 * c.Window.Scale, 240 * c.Window.Scale
}

// IsLoaded reports whether the configuration was loaded from an existing file.
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/rambo.json"
}
