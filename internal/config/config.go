// Package config provides YAML-based configuration loading for the shooter:
// playback settings, mode titles, file locations, logging and the SSH
// server. Nothing here changes the outcome of a recorded run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Sim     SimConfig             `yaml:"sim"`
	Modes   map[string]ModeConfig `yaml:"modes"`
	Paths   PathsConfig           `yaml:"paths"`
	Logging LoggingConfig         `yaml:"logging"`
	Server  ServerConfig          `yaml:"server"`
}

// SimConfig contains settings for live and replayed runs.
type SimConfig struct {
	TickRate      int    `yaml:"tick_rate"`      // Ticks per second when played live
	CollisionMode string `yaml:"collision_mode"` // "legacy" or "strict", recorded into new replays
}

// ModeConfig describes one game mode in the menu.
type ModeConfig struct {
	Title string `yaml:"title"`
}

// PathsConfig locates persisted files. A leading "~" expands to the home directory.
type PathsConfig struct {
	ReplayDir string `yaml:"replay_dir"`
	SaveFile  string `yaml:"save_file"`
	Database  string `yaml:"database"`
}

// LoggingConfig configures the charm logger.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text, json, logfmt
	Timestamps bool   `yaml:"timestamps"`
	Prefix     string `yaml:"prefix"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address        string        `yaml:"address"`
	HostKeyPath    string        `yaml:"host_key"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxSessions    int           `yaml:"max_sessions"`
	SessionRate    float64       `yaml:"session_rate"` // New sessions per second
	SessionBurst   int           `yaml:"session_burst"`
	MetricsAddress string        `yaml:"metrics_address"` // Empty disables the metrics listener
}

// Mode returns the settings for a mode, falling back to the normal mode.
func (c Config) Mode(id string) (ModeConfig, bool) {
	m, ok := c.Modes[id]
	if !ok {
		return c.Modes["normal"], false
	}
	return m, true
}

// Validate reports settings the simulation cannot run with.
func (c Config) Validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Sim.TickRate)
	}
	switch c.Sim.CollisionMode {
	case "", "legacy", "strict":
	default:
		return fmt.Errorf("config: unknown collision_mode %q", c.Sim.CollisionMode)
	}
	if _, ok := c.Modes["normal"]; !ok {
		return fmt.Errorf("config: missing settings for mode %q", "normal")
	}
	return nil
}

// ExpandPath resolves a leading "~" against the user's home directory.
func ExpandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
