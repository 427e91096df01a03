package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Layout describes the element tree a script is replayed against.
type Layout struct {
	Surface  SurfaceConfig   `mapstructure:"surface"`
	Camera   CameraConfig    `mapstructure:"camera"`
	Elements []ElementConfig `mapstructure:"elements"`
	// TickMS is how far the replay clock moves after each Update.
	TickMS int64 `mapstructure:"tick_ms"`
	// MaxTicks bounds the replay so a stuck script cannot loop forever.
	MaxTicks int `mapstructure:"max_ticks"`
}

type SurfaceConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type CameraConfig struct {
	Enabled bool         `mapstructure:"enabled"`
	X       float64      `mapstructure:"x"`
	Y       float64      `mapstructure:"y"`
	Zoom    float64      `mapstructure:"zoom"`
	Bounds  BoundsConfig `mapstructure:"bounds"`
}

type BoundsConfig struct {
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type ElementConfig struct {
	Name   string  `mapstructure:"name"`
	Parent string  `mapstructure:"parent"`
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	ZIndex int     `mapstructure:"z_index"`
	// Swipe attaches a gesture recognizer: "" for none, "x" or "y" for the axis.
	Swipe      string           `mapstructure:"swipe"`
	Visibility VisibilityConfig `mapstructure:"visibility"`
}

type VisibilityConfig struct {
	Enabled          bool      `mapstructure:"enabled"`
	Threshold        []float64 `mapstructure:"threshold"`
	RootMargin       string    `mapstructure:"root_margin"`
	Root             string    `mapstructure:"root"`
	PersistAfterLoad bool      `mapstructure:"persist_after_load"`
}

var errInvalidLayout = errors.New("invalid layout")

// loadLayout reads a TOML, YAML or JSON layout file. BANGO_* environment
// variables override file values (BANGO_SURFACE_WIDTH, BANGO_TICK_MS, ...).
func loadLayout(path string) (*Layout, error) {
	v := viper.New()
	v.SetDefault("surface.width", 800)
	v.SetDefault("surface.height", 600)
	v.SetDefault("camera.zoom", 1)
	v.SetDefault("tick_ms", 16)
	v.SetDefault("max_ticks", 10000)

	v.SetConfigFile(path)
	v.SetEnvPrefix("BANGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	var l Layout
	if err := v.Unmarshal(&l); err != nil {
		return nil, fmt.Errorf("load layout: unmarshal: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if l.Surface.Width <= 0 || l.Surface.Height <= 0 {
		return fmt.Errorf("%w: surface size %vx%v", errInvalidLayout, l.Surface.Width, l.Surface.Height)
	}
	if l.TickMS < 0 {
		return fmt.Errorf("%w: tick_ms %d is negative", errInvalidLayout, l.TickMS)
	}
	if l.MaxTicks <= 0 {
		return fmt.Errorf("%w: max_ticks must be positive", errInvalidLayout)
	}
	if l.Camera.Zoom <= 0 {
		return fmt.Errorf("%w: camera zoom must be positive", errInvalidLayout)
	}

	seen := make(map[string]bool, len(l.Elements))
	for i, el := range l.Elements {
		if el.Name == "" {
			return fmt.Errorf("%w: element %d has no name", errInvalidLayout, i)
		}
		if seen[el.Name] {
			return fmt.Errorf("%w: duplicate element %q", errInvalidLayout, el.Name)
		}
		// Parents and visibility roots must be declared earlier.
		if el.Parent != "" && !seen[el.Parent] {
			return fmt.Errorf("%w: element %q: unknown parent %q", errInvalidLayout, el.Name, el.Parent)
		}
		if el.Visibility.Root != "" && !seen[el.Visibility.Root] {
			return fmt.Errorf("%w: element %q: unknown visibility root %q", errInvalidLayout, el.Name, el.Visibility.Root)
		}
		switch el.Swipe {
		case "", "x", "y":
		default:
			return fmt.Errorf("%w: element %q: swipe axis %q", errInvalidLayout, el.Name, el.Swipe)
		}
		seen[el.Name] = true
	}
	return nil
}
