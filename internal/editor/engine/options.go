package engine

import (
	"map-editor/internal/editor/geometry"
	"map-editor/internal/editor/history"
)

// ============================================================
// Options
// ============================================================

// Options содержит константы редактора. Расстояния притяжения в метрах мира.
type Options struct {
	BaseGridSize float64
	WheelRatio   float64
	MinScale     float64
	MaxScale     float64
	SnapDistance float64
	HistoryLimit int
	InitialFloor float64
}

func DefaultOptions() Options {
	return Options{
		BaseGridSize: 40,
		WheelRatio:   geometry.DefaultWheelRatio,
		MinScale:     geometry.DefaultMinScale,
		MaxScale:     geometry.DefaultMaxScale,
		SnapDistance: 0.5,
		HistoryLimit: history.DefaultLimit,
		InitialFloor: 1,
	}
}

// normalized подставляет значения по умолчанию вместо непригодных.
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.BaseGridSize <= 0 {
		o.BaseGridSize = def.BaseGridSize
	}
	if o.WheelRatio <= 1 {
		o.WheelRatio = def.WheelRatio
	}
	if o.MinScale <= 0 {
		o.MinScale = def.MinScale
	}
	if o.MaxScale < o.MinScale {
		o.MaxScale = def.MaxScale
	}
	if o.SnapDistance <= 0 {
		o.SnapDistance = def.SnapDistance
	}
	return o
}
