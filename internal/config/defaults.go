package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/hextrap.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			F2F:            90,
			Orientation:    "vertical",
			DefaultVariant: "classic",
		},
		Variants: []VariantConfig{
			{ID: "classic", Title: "Classic 7x12", Cols: 7, Rows: 12},
			{ID: "wide", Title: "Wide 11x12", Cols: 11, Rows: 12},
		},
		Traps: TrapConfig{
			Ratio:     0.25974,
			ReliefCap: 20,
		},
		Timing: TimingConfig{
			TickRate:  60,
			WinDwell:  3 * time.Second,
			LoseDwell: 2 * time.Second,
		},
		Paths: PathsConfig{
			Stats:   "./configs/stats.json",
			History: "~/.hextrap/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
