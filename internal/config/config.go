// Package config loads the timetable TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/rileylov/timetable/internal/log"
	"github.com/rileylov/timetable/playhead"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel string   `toml:"log_level"`
	LogFile  string   `toml:"log_file"`
	Timeline Timeline `toml:"timeline"`
	Cell     Cell     `toml:"cell"`
	Playhead Playhead `toml:"playhead"`
}

// Timeline is the container geometry in character cells.
type Timeline struct {
	Beats          int     `toml:"beats"`
	Rows           int     `toml:"rows"`
	BeatWidth      float64 `toml:"beat_width"`
	RowHeight      float64 `toml:"row_height"`
	RowHeaderWidth float64 `toml:"row_header_width"`
	Snap           float64 `toml:"snap"`
	LiveFollow     bool    `toml:"live_follow"`
	LongPressMS    int     `toml:"long_press_ms"`
}

type Cell struct {
	ResizeMargin  float64  `toml:"resize_margin"`
	CustomActions []Action `toml:"custom_actions"`
}

type Action struct {
	Label string `toml:"label"`
	ID    string `toml:"id"`
}

type Playhead struct {
	Visual     string  `toml:"visual"`
	Image      string  `toml:"image"`
	GuideColor string  `toml:"guide_color"`
	GuideWidth float64 `toml:"guide_width"`
}

// Default is used for any key the file leaves out.
func Default() Config {
	return Config{
		LogLevel: "info",
		LogFile:  "timetable.log",
		Timeline: Timeline{
			Beats:          16,
			Rows:           6,
			BeatWidth:      6,
			RowHeight:      3,
			RowHeaderWidth: 8,
			Snap:           0.25,
			LiveFollow:     true,
			LongPressMS:    500,
		},
		Cell: Cell{
			ResizeMargin: 2,
			CustomActions: []Action{
				{Label: "Copy", ID: "copy"},
				{Label: "Duplicate", ID: "duplicate"},
			},
		},
		Playhead: Playhead{
			Visual:     "glyph",
			Image:      "▼",
			GuideColor: "#FFFFFF",
			GuideWidth: 1,
		},
	}
}

// Load decodes path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(string(data))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML text over the defaults. Unknown keys are rejected.
func Decode(data string) (Config, error) {
	cfg := Default()
	// Decoding into a populated slice merges element-wise; start empty.
	cfg.Cell.CustomActions = nil
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("decode: %w", err)
	}
	if !md.IsDefined("cell", "custom_actions") {
		cfg.Cell.CustomActions = Default().Cell.CustomActions
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("unknown key %q: %w", undec[0].String(), ErrInvalid)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Cell.ResizeMargin <= 0 {
		return fmt.Errorf("cell.resize_margin must be positive, got %v: %w", c.Cell.ResizeMargin, ErrInvalid)
	}
	if c.Timeline.Snap <= 0 {
		return fmt.Errorf("timeline.snap must be positive, got %v: %w", c.Timeline.Snap, ErrInvalid)
	}
	if c.Timeline.Beats <= 0 || c.Timeline.Rows <= 0 {
		return fmt.Errorf("timeline needs beats and rows, got %dx%d: %w", c.Timeline.Beats, c.Timeline.Rows, ErrInvalid)
	}
	if _, err := playhead.ParseMode(c.Playhead.Visual); err != nil {
		return fmt.Errorf("playhead.visual: %v: %w", err, ErrInvalid)
	}
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalid)
	}
	for _, a := range c.Cell.CustomActions {
		if a.ID == "" {
			return fmt.Errorf("custom action %q has no id: %w", a.Label, ErrInvalid)
		}
	}
	return nil
}
