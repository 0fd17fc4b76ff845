package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"honnef.co/go/vg/shape"
)

type config struct {
	// Margin around the drawing's extent, in drawing units.
	Margin float64 `toml:"margin"`
	// Background is painted behind the drawing. Empty or "none" leaves the
	// page transparent.
	Background string `toml:"background"`
	// Precision is the maximum number of decimals written for coordinates.
	// Zero writes them exactly.
	Precision int         `toml:"precision"`
	Style     styleConfig `toml:"style"`
}

type styleConfig struct {
	LineColor string  `toml:"line_color"`
	LineWidth float64 `toml:"line_width"`
	LineStyle string  `toml:"line_style"`
	FillColor string  `toml:"fill_color"`
}

func defaultConfig() config {
	return config{
		Margin:    10,
		Precision: 3,
	}
}

func loadConfig(name string) (config, error) {
	cfg := defaultConfig()
	f, err := os.Open(name)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", name, err)
	}
	if cfg.Margin < 0 {
		return cfg, fmt.Errorf("%s: negative margin %g", name, cfg.Margin)
	}
	return cfg, nil
}

var lineStyles = map[string]shape.LineStyle{
	"":         shape.LineSolid,
	"solid":    shape.LineSolid,
	"dash":     shape.LineDash,
	"dot":      shape.LineDot,
	"dash-dot": shape.LineDashDot,
	"none":     shape.LineNone,
}

// context returns the style given to shapes without one of their own.
func (sc styleConfig) context() (shape.Context, error) {
	ctx := shape.DefaultContext()
	if sc.LineColor != "" {
		c, err := shape.ParseColor(sc.LineColor)
		if err != nil {
			return ctx, err
		}
		ctx.LineColor = c
	}
	if sc.LineWidth < 0 {
		return ctx, fmt.Errorf("negative line width %g", sc.LineWidth)
	} else if sc.LineWidth > 0 {
		ctx.LineWidth = sc.LineWidth
	}
	ls, ok := lineStyles[sc.LineStyle]
	if !ok {
		return ctx, fmt.Errorf("unknown line style %q", sc.LineStyle)
	}
	ctx.LineStyle = ls
	if sc.FillColor != "" {
		c, err := shape.ParseColor(sc.FillColor)
		if err != nil {
			return ctx, err
		}
		ctx.FillColor = c
	}
	return ctx, nil
}
