package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"map-editor/internal/converter/models"
)

// ============================================================
// XML Structures
// ============================================================

type SVG struct {
	XMLName xml.Name `xml:"svg"`
	Group
}

// Group соответствует контейнеру <g>; план может раскладывать стены по слоям.
type Group struct {
	ID     string  `xml:"id,attr"`
	Rects  []Rect  `xml:"rect"`
	Paths  []Path  `xml:"path"`
	Groups []Group `xml:"g"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type Path struct {
	ID string `xml:"id,attr"`
	D  string `xml:"d,attr"`
}

// ============================================================
// Parser
// ============================================================

// ParseSVG достаёт из плана стены и двери. Остальные элементы пропускаются.
func ParseSVG(r io.Reader) ([]models.SVGElement, error) {
	var svg SVG
	if err := xml.NewDecoder(r).Decode(&svg); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	var elements []models.SVGElement
	collect(svg.Group, "", &elements)
	return elements, nil
}

// collect обходит группы; элемент без своего класса наследует класс группы.
func collect(g Group, inherited models.ElementKind, out *[]models.SVGElement) {
	if kind := classifyElementByID(g.ID); kind != "" {
		inherited = kind
	}

	for _, rect := range g.Rects {
		kind := classifyElementByID(rect.ID)
		if kind == "" {
			kind = inherited
		}
		if kind == "" {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:   rect.ID,
			Kind: kind,
			Geometry: models.RectGeometry{
				X:      rect.X,
				Y:      rect.Y,
				Width:  rect.Width,
				Height: rect.Height,
			},
		})
	}

	for _, path := range g.Paths {
		kind := classifyElementByID(path.ID)
		if kind == "" {
			kind = inherited
		}
		if kind == "" {
			continue
		}
		*out = append(*out, models.SVGElement{
			ID:       path.ID,
			Kind:     kind,
			Geometry: models.PathGeometry{D: path.D},
		})
	}

	for _, child := range g.Groups {
		collect(child, inherited, out)
	}
}

func classifyElementByID(id string) models.ElementKind {
	switch {
	case strings.HasPrefix(id, "Wall_"), strings.HasPrefix(id, "Hui_Wall_"):
		return models.KindWall
	case strings.HasPrefix(id, "OuterDoor_"), strings.HasPrefix(id, "Entrance_"):
		return models.KindOuterDoor
	case strings.HasPrefix(id, "Door_"):
		return models.KindDoor
	}
	return ""
}
