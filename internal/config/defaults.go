package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/shooter.yaml and is used when that file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Sim: SimConfig{
			TickRate:      50,
			CollisionMode: "legacy",
		},
		Modes: map[string]ModeConfig{
			"normal": {Title: "Normal"},
			"hard":   {Title: "Hard"},
			"fast":   {Title: "Fast"},
			"what":   {Title: "W-Hat"},
			"boss":   {Title: "Boss"},
		},
		Paths: PathsConfig{
			ReplayDir: "~/.shooter/replays",
			SaveFile:  "~/.shooter/shooter.sav",
			Database:  "~/.shooter/shooter.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Timestamps: true,
			Prefix:     "shooter",
		},
		Server: ServerConfig{
			Address:      ":23234",
			HostKeyPath:  ".ssh/shooter_ed25519",
			IdleTimeout:  10 * time.Minute,
			MaxSessions:  32,
			SessionRate:  2,
			SessionBurst: 4,
		},
	}
}
