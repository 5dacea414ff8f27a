package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"map-editor/internal/editor/engine"
)

// ============================================================
// Editor profile
// ============================================================

// Profile описывает YAML-файл с константами редактора. Незаданные поля берутся
// из engine.DefaultOptions.
type Profile struct {
	Grid struct {
		BaseSize float64 `yaml:"base_size"`
	} `yaml:"grid"`
	Zoom struct {
		WheelRatio float64 `yaml:"wheel_ratio"`
		MinScale   float64 `yaml:"min_scale"`
		MaxScale   float64 `yaml:"max_scale"`
	} `yaml:"zoom"`
	SnapDistance float64  `yaml:"snap_distance"`
	HistoryLimit *int     `yaml:"history_limit"`
	InitialFloor *float64 `yaml:"initial_floor"`
}

// Load читает профиль. Пустой путь означает профиль по умолчанию.
func Load(path string) (engine.Options, error) {
	if path == "" {
		return engine.DefaultOptions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Options{}, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (engine.Options, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return engine.Options{}, fmt.Errorf("parse profile: %w", err)
	}
	return p.Options()
}

// Options накладывает профиль на значения по умолчанию.
func (p Profile) Options() (engine.Options, error) {
	opts := engine.DefaultOptions()

	if p.Grid.BaseSize < 0 || p.SnapDistance < 0 {
		return opts, fmt.Errorf("profile: sizes must not be negative")
	}
	if p.Zoom.MinScale > 0 && p.Zoom.MaxScale > 0 && p.Zoom.MinScale > p.Zoom.MaxScale {
		return opts, fmt.Errorf("profile: min_scale %v exceeds max_scale %v", p.Zoom.MinScale, p.Zoom.MaxScale)
	}

	if p.Grid.BaseSize > 0 {
		opts.BaseGridSize = p.Grid.BaseSize
	}
	if p.Zoom.WheelRatio > 0 {
		opts.WheelRatio = p.Zoom.WheelRatio
	}
	if p.Zoom.MinScale > 0 {
		opts.MinScale = p.Zoom.MinScale
	}
	if p.Zoom.MaxScale > 0 {
		opts.MaxScale = p.Zoom.MaxScale
	}
	if p.SnapDistance > 0 {
		opts.SnapDistance = p.SnapDistance
	}
	if p.HistoryLimit != nil {
		if *p.HistoryLimit < 0 {
			return opts, fmt.Errorf("profile: history_limit must not be negative")
		}
		opts.HistoryLimit = *p.HistoryLimit
	}
	if p.InitialFloor != nil {
		opts.InitialFloor = *p.InitialFloor
	}
	return opts, nil
}
