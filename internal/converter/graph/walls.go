package graph

import (
	"math"
	"sort"

	cmodels "map-editor/internal/converter/models"
	"map-editor/internal/converter/parser"
	"map-editor/internal/editor/models"
)

// ============================================================
// Wall center-line builder
// ============================================================

const connectTolerance = 15.0 // допуск поиска пересечения, px
const mergeTolerance = 8.0    // радиус склейки концов после разрезания, px
const axisSnapTolerance = 4.0 // отклонение от оси, при котором координата выравнивается, px

type segment struct {
	id     string
	p1, p2 models.Point
}

type segmentInfo struct {
	segment     segment
	horizontal  bool
	start       float64
	end         float64
	constant    float64
	splitPoints []float64
}

// Builder сводит прямоугольники и контуры стен к осевым отрезкам, у которых
// каждое примыкание приходится на общий конец.
type Builder struct {
	segments []segment
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build возвращает осевые линии стен в координатах SVG.
func (b *Builder) Build(walls []cmodels.SVGElement) ([]models.Wall, error) {
	b.segments = b.segments[:0]
	for _, wall := range walls {
		if err := b.addWall(wall); err != nil {
			return nil, err
		}
	}

	split := splitSegments(b.segments)
	snapAxisAligned(split)
	mergeCloseEnds(split)
	return toWalls(split), nil
}

func (b *Builder) addWall(wall cmodels.SVGElement) error {
	switch geom := wall.Geometry.(type) {
	case cmodels.RectGeometry:
		b.addRect(wall.ID, geom.X, geom.Y, geom.X+geom.Width, geom.Y+geom.Height)
	case cmodels.PathGeometry:
		points, err := parser.ParsePath(geom.D)
		if err != nil {
			return err
		}
		if len(points) < 2 {
			return nil
		}
		minX, minY, maxX, maxY := boundingBox(points)
		if minX == maxX && minY == maxY {
			return nil
		}
		b.addRect(wall.ID, minX, minY, maxX, maxY)
	}
	return nil
}

// addRect берёт середину короткой стороны: ось стены идёт вдоль длинной.
func (b *Builder) addRect(id string, minX, minY, maxX, maxY float64) {
	width, height := maxX-minX, maxY-minY
	var p1, p2 models.Point
	if width >= height {
		midY := minY + height/2
		p1, p2 = models.Point{X: minX, Y: midY}, models.Point{X: maxX, Y: midY}
	} else {
		midX := minX + width/2
		p1, p2 = models.Point{X: midX, Y: minY}, models.Point{X: midX, Y: maxY}
	}
	b.segments = append(b.segments, segment{id: id, p1: p1, p2: p2})
}

func boundingBox(points []models.Point) (minX, minY, maxX, maxY float64) {
	minX, maxX = points[0].X, points[0].X
	minY, maxY = points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return
}

// ============================================================
// Splitting
// ============================================================

// splitSegments режет горизонтальные и вертикальные отрезки в точках
// их взаимных пересечений и примыканий.
func splitSegments(segments []segment) []segment {
	if len(segments) == 0 {
		return nil
	}

	infos := make([]*segmentInfo, 0, len(segments))
	for _, seg := range segments {
		horizontal := math.Abs(seg.p1.Y-seg.p2.Y) <= math.Abs(seg.p1.X-seg.p2.X)
		start, end, constant := seg.p1.X, seg.p2.X, seg.p1.Y
		if !horizontal {
			start, end, constant = seg.p1.Y, seg.p2.Y, seg.p1.X
		}
		if start > end {
			start, end = end, start
		}
		infos = append(infos, &segmentInfo{
			segment:     seg,
			horizontal:  horizontal,
			start:       start,
			end:         end,
			constant:    constant,
			splitPoints: []float64{start, end},
		})
	}

	for i := 0; i < len(infos); i++ {
		for j := i + 1; j < len(infos); j++ {
			a, b := infos[i], infos[j]
			if a.horizontal == b.horizontal {
				continue
			}
			if a.horizontal {
				addIntersection(a, b)
			} else {
				addIntersection(b, a)
			}
		}
	}

	var result []segment
	for _, info := range infos {
		points := append([]float64{}, info.splitPoints...)
		sort.Float64s(points)
		points = uniquePoints(points)

		for idx := 0; idx+1 < len(points); idx++ {
			start, end := points[idx], points[idx+1]
			var p1, p2 models.Point
			if info.horizontal {
				p1, p2 = models.Point{X: start, Y: info.constant}, models.Point{X: end, Y: info.constant}
			} else {
				p1, p2 = models.Point{X: info.constant, Y: start}, models.Point{X: info.constant, Y: end}
			}
			result = append(result, segment{id: info.segment.id, p1: p1, p2: p2})
		}
	}
	return result
}

// addIntersection продлевает стены до точки встречи в пределах connectTolerance.
func addIntersection(h, v *segmentInfo) {
	vx, hy := v.constant, h.constant
	if vx < h.start-connectTolerance || vx > h.end+connectTolerance {
		return
	}
	if hy < v.start-connectTolerance || hy > v.end+connectTolerance {
		return
	}

	h.splitPoints = append(h.splitPoints, vx)
	v.splitPoints = append(v.splitPoints, hy)
	h.start, h.end = math.Min(h.start, vx), math.Max(h.end, vx)
	v.start, v.end = math.Min(v.start, hy), math.Max(v.end, hy)
}

func uniquePoints(points []float64) []float64 {
	if len(points) == 0 {
		return points
	}
	out := points[:1]
	for i := 1; i < len(points); i++ {
		if !almostEqual(points[i], points[i-1]) {
			out = append(out, points[i])
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// ============================================================
// Cleanup
// ============================================================

// snapAxisAligned выпрямляет почти горизонтальные и почти вертикальные отрезки.
func snapAxisAligned(segments []segment) {
	for i := range segments {
		s := &segments[i]
		switch {
		case math.Abs(s.p1.Y-s.p2.Y) <= axisSnapTolerance:
			y := (s.p1.Y + s.p2.Y) / 2
			s.p1.Y, s.p2.Y = y, y
		case math.Abs(s.p1.X-s.p2.X) <= axisSnapTolerance:
			x := (s.p1.X + s.p2.X) / 2
			s.p1.X, s.p2.X = x, x
		}
	}
}

// mergeCloseEnds стягивает концы, лежащие ближе mergeTolerance, к первому
// встреченному представителю.
func mergeCloseEnds(segments []segment) {
	var reps []models.Point
	repOf := func(p models.Point) models.Point {
		for _, r := range reps {
			if math.Hypot(p.X-r.X, p.Y-r.Y) <= mergeTolerance {
				return r
			}
		}
		reps = append(reps, p)
		return p
	}
	for i := range segments {
		segments[i].p1 = repOf(segments[i].p1)
		segments[i].p2 = repOf(segments[i].p2)
	}
}

// toWalls отбрасывает выродившиеся отрезки и дубликаты.
func toWalls(segments []segment) []models.Wall {
	seen := make(map[models.Wall]bool, len(segments))
	walls := make([]models.Wall, 0, len(segments))
	for _, s := range segments {
		w := models.Wall{X1: s.p1.X, Y1: s.p1.Y, X2: s.p2.X, Y2: s.p2.Y}
		if w.IsDegenerate() {
			continue
		}
		reversed := models.Wall{X1: w.X2, Y1: w.Y2, X2: w.X1, Y2: w.Y1}
		if seen[w] || seen[reversed] {
			continue
		}
		seen[w] = true
		walls = append(walls, w)
	}
	return walls
}
