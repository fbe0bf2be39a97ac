// Package config provides YAML-based configuration loading for hextrap.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/hextrap/internal/hexgrid"
)

// Config is the full hextrap configuration.
type Config struct {
	Board    BoardConfig     `yaml:"board"`
	Variants []VariantConfig `yaml:"variants"`
	Traps    TrapConfig      `yaml:"traps"`
	Timing   TimingConfig    `yaml:"timing"`
	Paths    PathsConfig     `yaml:"paths"`
}

// BoardConfig defines how tiles are laid out.
type BoardConfig struct {
	F2F            float64 `yaml:"f2f"`         // flat-to-flat tile width in world units
	Orientation    string  `yaml:"orientation"` // "vertical"; "horizontal" is not supported yet
	DefaultVariant string  `yaml:"default_variant"`
}

// VariantConfig is one playable board size.
type VariantConfig struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Cols  int    `yaml:"cols"`
	Rows  int    `yaml:"rows"`
}

// Size returns the variant's grid size.
func (v VariantConfig) Size() hexgrid.GridSize {
	return hexgrid.Size(v.Cols, v.Rows)
}

// TrapConfig drives the starting trap count of a level.
type TrapConfig struct {
	Ratio     float64 `yaml:"ratio"`      // share of tiles trapped on level 1
	ReliefCap int     `yaml:"relief_cap"` // at most this many traps removed on later levels
}

// TimingConfig defines frame rate and end-of-level pauses.
type TimingConfig struct {
	TickRate  int           `yaml:"tick_rate"`
	WinDwell  time.Duration `yaml:"win_dwell"`
	LoseDwell time.Duration `yaml:"lose_dwell"`
}

// PathsConfig locates persistent files.
type PathsConfig struct {
	Stats   string `yaml:"stats"`
	History string `yaml:"history"`
}

// Variant returns the variant with the given ID.
func (c Config) Variant(id string) (VariantConfig, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantConfig{}, false
}

// Validate reports every problem in the configuration.
func (c Config) Validate() error {
	var errs []error

	if c.Board.F2F <= 0 {
		errs = append(errs, fmt.Errorf("board.f2f must be positive, got %v", c.Board.F2F))
	}
	o, err := hexgrid.ParseOrientation(c.Board.Orientation)
	if err != nil {
		errs = append(errs, err)
	} else if o != hexgrid.Vertical {
		errs = append(errs, fmt.Errorf("board.orientation %q is not supported", c.Board.Orientation))
	}

	if len(c.Variants) == 0 {
		errs = append(errs, errors.New("at least one variant is required"))
	}
	seen := make(map[string]bool)
	for _, v := range c.Variants {
		if v.ID == "" {
			errs = append(errs, errors.New("variant without id"))
			continue
		}
		if seen[v.ID] {
			errs = append(errs, fmt.Errorf("variant %q defined twice", v.ID))
		}
		seen[v.ID] = true
		if err := v.Size().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("variant %q: %w", v.ID, err))
		} else if v.Cols < 2 || v.Rows < 2 {
			errs = append(errs, fmt.Errorf("variant %q: grid %s is smaller than 2x2", v.ID, v.Size()))
		}
	}
	if c.Board.DefaultVariant != "" && !seen[c.Board.DefaultVariant] {
		errs = append(errs, fmt.Errorf("default variant %q is not defined", c.Board.DefaultVariant))
	}

	if c.Traps.Ratio < 0 || c.Traps.Ratio > 1 {
		errs = append(errs, fmt.Errorf("traps.ratio must be in [0,1], got %v", c.Traps.Ratio))
	}
	if c.Traps.ReliefCap < 0 {
		errs = append(errs, fmt.Errorf("traps.relief_cap must not be negative, got %d", c.Traps.ReliefCap))
	}

	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("timing.tick_rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Timing.WinDwell < 0 || c.Timing.LoseDwell < 0 {
		errs = append(errs, errors.New("timing dwell values must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
