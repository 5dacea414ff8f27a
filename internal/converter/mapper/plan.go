package mapper

import (
	"fmt"
	"io"
	"math"

	"map-editor/internal/converter/graph"
	cmodels "map-editor/internal/converter/models"
	"map-editor/internal/converter/parser"
	"map-editor/internal/editor/geometry"
	"map-editor/internal/editor/models"
)

// ============================================================
// Plan Converter
// ============================================================

// DefaultPixelsPerMeter задаёт масштаб плана, если клиент его не передал.
const DefaultPixelsPerMeter = 50.0

type Converter struct {
	pixelsPerMeter float64
	builder        *graph.Builder
}

func New(pixelsPerMeter float64) *Converter {
	if pixelsPerMeter <= 0 || math.IsNaN(pixelsPerMeter) || math.IsInf(pixelsPerMeter, 0) {
		pixelsPerMeter = DefaultPixelsPerMeter
	}
	return &Converter{
		pixelsPerMeter: pixelsPerMeter,
		builder:        graph.NewBuilder(),
	}
}

// Convert разбирает SVG-план этажа в стены и двери в метрах. Ось Y
// переворачивается: в SVG она направлена вниз, в мире вверх.
func (c *Converter) Convert(r io.Reader) (*cmodels.Plan, error) {
	elements, err := parser.ParseSVG(r)
	if err != nil {
		return nil, fmt.Errorf("parse SVG: %w", err)
	}

	var walls, doors []cmodels.SVGElement
	for _, elem := range elements {
		switch elem.Kind {
		case cmodels.KindWall:
			walls = append(walls, elem)
		case cmodels.KindDoor, cmodels.KindOuterDoor:
			doors = append(doors, elem)
		}
	}

	centerLines, err := c.builder.Build(walls)
	if err != nil {
		return nil, fmt.Errorf("build walls: %w", err)
	}

	plan := &cmodels.Plan{
		Walls: make([]models.Wall, 0, len(centerLines)),
		Doors: make([]models.Door, 0, len(doors)),
	}
	for _, w := range centerLines {
		p1 := c.toWorld(w.Start())
		p2 := c.toWorld(w.End())
		plan.Walls = append(plan.Walls, models.Wall{X1: p1.X, Y1: p1.Y, X2: p2.X, Y2: p2.Y})
	}
	for _, door := range doors {
		center, ok := elementCenter(door)
		if !ok {
			continue
		}
		p := c.toWorld(center)
		plan.Doors = append(plan.Doors, models.Door{X: p.X, Y: p.Y, IsOuter: door.Kind == cmodels.KindOuterDoor})
	}
	return plan, nil
}

func (c *Converter) toWorld(p models.Point) models.Point {
	return models.Point{
		X: geometry.FixPrecision(p.X / c.pixelsPerMeter),
		Y: geometry.FixPrecision(-p.Y / c.pixelsPerMeter),
	}
}

// elementCenter возвращает центр прямоугольника или среднее точек контура.
func elementCenter(elem cmodels.SVGElement) (models.Point, bool) {
	switch geom := elem.Geometry.(type) {
	case cmodels.RectGeometry:
		return models.Point{X: geom.X + geom.Width/2, Y: geom.Y + geom.Height/2}, true
	case cmodels.PathGeometry:
		points, err := parser.ParsePath(geom.D)
		if err != nil {
			return models.Point{}, false
		}
		if n := len(points); n > 1 && points[0] == points[n-1] {
			points = points[:n-1]
		}
		var sum models.Point
		for _, p := range points {
			sum.X += p.X
			sum.Y += p.Y
		}
		return models.Point{X: sum.X / float64(len(points)), Y: sum.Y / float64(len(points))}, true
	}
	return models.Point{}, false
}
