// Package config loads the editor settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"beziertui/internal/curve"
	"beziertui/internal/logging"
	"beziertui/internal/scene"
)

type Config struct {
	Curve     Curve     `toml:"curve"`
	Editor    Editor    `toml:"editor"`
	Animation Animation `toml:"animation"`
	Export    Export    `toml:"export"`
	Log       Log       `toml:"log"`
}

// Curve holds the settings applied to every curve.
type Curve struct {
	Algorithm curve.Algorithm `toml:"algorithm"`
	// Resolution is the number of polyline samples per curve.
	Resolution  int     `toml:"resolution"`
	LengthScale float64 `toml:"length_scale"`
	// BinomialLimit is the largest degree evaluated with exact integer
	// binomials by the Bernstein algorithm.
	BinomialLimit int `toml:"binomial_limit"`
}

type Editor struct {
	HitboxRadius float64 `toml:"hitbox_radius"`
	DragDeadzone float64 `toml:"drag_deadzone"`
	// UnitsPerDot is the canvas distance covered by one braille dot.
	UnitsPerDot float64 `toml:"units_per_dot"`
	// StickySelect starts the editor with Shift-free multi-select on.
	StickySelect bool `toml:"sticky_select"`
}

type Animation struct {
	Markers int     `toml:"markers"`
	Speed   float64 `toml:"speed"`
	// TickRate is the animation rate in ticks per second.
	TickRate     int  `toml:"tick_rate"`
	Construction bool `toml:"construction"`
}

type Export struct {
	Path string `toml:"path"`
	// Scale is the number of PNG pixels per canvas unit.
	Scale float64 `toml:"scale"`
}

type Log struct {
	// File is where logs are appended. Empty disables logging.
	File  string `toml:"file"`
	Level string `toml:"level"`
}

func Default() Config {
	opts := scene.DefaultOptions()
	return Config{
		Curve: Curve{
			Algorithm:     opts.Algorithm,
			Resolution:    opts.Resolution,
			LengthScale:   opts.LengthScale,
			BinomialLimit: opts.BinomialLimit,
		},
		Editor: Editor{
			HitboxRadius: opts.HitboxRadius,
			DragDeadzone: opts.DragDeadzone,
			UnitsPerDot:  2,
		},
		Animation: Animation{
			Markers:  5,
			Speed:    0.5,
			TickRate: 30,
		},
		Export: Export{
			Path:  "bezier.png",
			Scale: 1,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value; unknown keys are an error. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes TOML data into cfg, leaving absent keys untouched.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sm *toml.StrictMissingError
		if errors.As(err, &sm) {
			return errors.New(sm.String())
		}
		return err
	}
	return nil
}

// Save writes cfg as TOML to path.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Curve.Resolution >= 0, "curve.resolution must be >= 0, got %d", c.Curve.Resolution)
	check(c.Curve.LengthScale > 0, "curve.length_scale must be > 0, got %g", c.Curve.LengthScale)
	check(c.Curve.BinomialLimit <= 20, "curve.binomial_limit must be <= 20, got %d", c.Curve.BinomialLimit)
	check(c.Editor.HitboxRadius > 0, "editor.hitbox_radius must be > 0, got %g", c.Editor.HitboxRadius)
	check(c.Editor.DragDeadzone >= 0, "editor.drag_deadzone must be >= 0, got %g", c.Editor.DragDeadzone)
	check(c.Editor.UnitsPerDot > 0, "editor.units_per_dot must be > 0, got %g", c.Editor.UnitsPerDot)
	check(c.Animation.Markers >= 0, "animation.markers must be >= 0, got %d", c.Animation.Markers)
	check(c.Animation.TickRate > 0 && c.Animation.TickRate <= 240,
		"animation.tick_rate must be in [1, 240], got %d", c.Animation.TickRate)
	check(c.Export.Path != "", "export.path must not be empty")
	check(c.Export.Scale > 0, "export.scale must be > 0, got %g", c.Export.Scale)
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// SceneOptions returns the scene settings described by c.
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		HitboxRadius:  c.Editor.HitboxRadius,
		DragDeadzone:  c.Editor.DragDeadzone,
		Resolution:    c.Curve.Resolution,
		Algorithm:     c.Curve.Algorithm,
		LengthScale:   c.Curve.LengthScale,
		BinomialLimit: c.Curve.BinomialLimit,
	}
}
