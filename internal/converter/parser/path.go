package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"map-editor/internal/editor/models"
)

// ============================================================
// Path Parser
// ============================================================

var commandRe = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath разбирает прямолинейные команды SVG path (M L H V Z, абсолютные
// и относительные) в список точек. Лишние пары после M/L трактуются как L.
func ParsePath(d string) ([]models.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var (
		points []models.Point
		cur    models.Point
		start  models.Point
	)

	for _, match := range commandRe.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		args := parseCoords(match[2])
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			for i := 0; i+1 < len(args); i += 2 {
				if relative {
					cur = models.Point{X: cur.X + args[i], Y: cur.Y + args[i+1]}
				} else {
					cur = models.Point{X: args[i], Y: args[i+1]}
				}
				if i == 0 && strings.ToUpper(cmd) == "M" {
					start = cur
				}
				points = append(points, cur)
			}
		case "H":
			for _, x := range args {
				if relative {
					cur.X += x
				} else {
					cur.X = x
				}
				points = append(points, cur)
			}
		case "V":
			for _, y := range args {
				if relative {
					cur.Y += y
				} else {
					cur.Y = y
				}
				points = append(points, cur)
			}
		case "Z":
			if len(points) > 0 {
				cur = start
				points = append(points, start)
			}
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("path %q has no points", d)
	}
	return points, nil
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var coords []float64
	for _, part := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
