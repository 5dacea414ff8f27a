package geometry

import (
	"math"

	"map-editor/internal/editor/models"
)

// ============================================================
// View transform
// ============================================================

const (
	// PrecisionEpsilon задаёт радиус притяжения координаты к ближайшему целому.
	PrecisionEpsilon = 1e-3

	DefaultWheelRatio = 1.1
	DefaultMinScale   = 0.25
	DefaultMaxScale   = 3.0
)

// Geometry хранит состояние вида: сдвиг, масштаб и размер клетки сетки в пикселях.
// ScaledGridSize всегда равен BaseGridSize*Scale и пересчитывается только в New и Zoom.
type Geometry struct {
	Offset         models.Point `json:"offset"`
	Scale          float64      `json:"scale"`
	ScaledGridSize float64      `json:"scaledGridSize"`
	BaseGridSize   float64      `json:"baseGridSize"`
}

// New создаёт вид с масштабом 1 и нулевым сдвигом.
func New(baseGridSize float64) Geometry {
	return Geometry{
		Scale:          1,
		ScaledGridSize: baseGridSize,
		BaseGridSize:   baseGridSize,
	}
}

// WorldToScreen переводит мировые координаты в экранные.
func WorldToScreen(p models.Point, g Geometry) models.Point {
	return models.Point{
		X: p.X*g.ScaledGridSize + g.Offset.X,
		Y: -p.Y*g.ScaledGridSize + g.Offset.Y,
	}
}

// ScreenToWorld переводит экранные координаты в мировые и убирает
// накопленную ошибку плавающей точки.
func ScreenToWorld(p models.Point, g Geometry) models.Point {
	return models.Point{
		X: FixPrecision((p.X - g.Offset.X) / g.ScaledGridSize),
		Y: FixPrecision(-(p.Y - g.Offset.Y) / g.ScaledGridSize),
	}
}

// FixPrecision притягивает значение к целому, если оно ближе PrecisionEpsilon.
func FixPrecision(v float64) float64 {
	nearest := math.Round(v)
	if math.Abs(v-nearest) < PrecisionEpsilon {
		return nearest
	}
	return v
}

// SnapToGrid округляет экранную точку до ближайшего узла сетки.
func SnapToGrid(p models.Point, g Geometry) models.Point {
	return models.Point{
		X: math.Round((p.X-g.Offset.X)/g.ScaledGridSize)*g.ScaledGridSize + g.Offset.X,
		Y: math.Round((p.Y-g.Offset.Y)/g.ScaledGridSize)*g.ScaledGridSize + g.Offset.Y,
	}
}

// Zoom меняет масштаб на ratio за один шаг колеса: deltaY > 0 отдаляет.
func Zoom(g Geometry, deltaY, ratio, minScale, maxScale float64) Geometry {
	scale := g.Scale * ratio
	if deltaY > 0 {
		scale = g.Scale / ratio
	}
	scale = math.Max(minScale, math.Min(maxScale, scale))

	g.Scale = scale
	g.ScaledGridSize = g.BaseGridSize * scale
	return g
}

// Pan сдвигает вид на delta пикселей.
func Pan(g Geometry, delta models.Point) Geometry {
	g.Offset = models.Point{X: g.Offset.X + delta.X, Y: g.Offset.Y + delta.Y}
	return g
}
