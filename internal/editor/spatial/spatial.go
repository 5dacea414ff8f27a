package spatial

import (
	"math"

	"map-editor/internal/editor/models"
)

// ============================================================
// Segment intersection
// ============================================================

// orientation возвращает 0 для коллинеарных точек, 1 по часовой, 2 против.
func orientation(p, q, r models.Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if val == 0 {
		return 0
	}
	if val > 0 {
		return 1
	}
	return 2
}

// onSegment проверяет, что коллинеарная точка q лежит в рамке отрезка pr.
func onSegment(p, q, r models.Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// WallsIntersect сообщает, пересекаются ли две стены.
//
// Коллинеарные стены пересекаются только при наложении ненулевой длины.
// Неколлинеарные пересекаются при любой общей точке, кроме случая, когда эта
// точка является общим концом обеих стен (угол). Т-образное примыкание считается
// пересечением.
func WallsIntersect(a, b models.Wall) bool {
	p1, p2 := a.Start(), a.End()
	q1, q2 := b.Start(), b.End()

	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 == 0 && o2 == 0 && o3 == 0 && o4 == 0 {
		return collinearOverlap(a, b)
	}

	touching := (o1 != o2 && o3 != o4) ||
		(o1 == 0 && onSegment(p1, q1, p2)) ||
		(o2 == 0 && onSegment(p1, q2, p2)) ||
		(o3 == 0 && onSegment(q1, p1, q2)) ||
		(o4 == 0 && onSegment(q1, p2, q2))
	if !touching {
		return false
	}

	// Две неколлинеарные прямые имеют не больше одной общей точки,
	// поэтому общий конец и есть единственная точка касания.
	return !sharesEndpoint(a, b)
}

func sharesEndpoint(a, b models.Wall) bool {
	for _, p := range []models.Point{a.Start(), a.End()} {
		if p == b.Start() || p == b.End() {
			return true
		}
	}
	return false
}

// collinearOverlap считает длину общего участка двух коллинеарных отрезков
// по оси с наибольшим разбросом координат.
func collinearOverlap(a, b models.Wall) bool {
	spanX := math.Max(math.Abs(a.X2-a.X1), math.Abs(b.X2-b.X1))
	spanY := math.Max(math.Abs(a.Y2-a.Y1), math.Abs(b.Y2-b.Y1))

	aStart, aEnd, bStart, bEnd := a.X1, a.X2, b.X1, b.X2
	if spanY > spanX {
		aStart, aEnd, bStart, bEnd = a.Y1, a.Y2, b.Y1, b.Y2
	}
	if aStart > aEnd {
		aStart, aEnd = aEnd, aStart
	}
	if bStart > bEnd {
		bStart, bEnd = bEnd, bStart
	}

	// вырожденный отрезок даёт наложение нулевой длины
	return math.Min(aEnd, bEnd)-math.Max(aStart, bStart) > 0
}

// ============================================================
// Closest wall point
// ============================================================

// projectOnWall находит ближайшую к p точку отрезка стены.
//
//	A---D-------------B
//	    C
func projectOnWall(w models.Wall, p models.Point) models.Point {
	abX := w.X2 - w.X1
	abY := w.Y2 - w.Y1
	lengthSq := abX*abX + abY*abY
	if lengthSq == 0 {
		return w.Start()
	}

	acX := p.X - w.X1
	acY := p.Y - w.Y1
	t := (abX*acX + abY*acY) / lengthSq

	switch {
	case t < 0:
		return w.Start()
	case t > 1:
		return w.End()
	}
	return models.Point{X: w.X1 + abX*t, Y: w.Y1 + abY*t}
}

// Distance возвращает евклидово расстояние между точками.
func Distance(a, b models.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// ClosestPoint возвращает ближайшую к p точку на стенах, если она ближе threshold.
// При равных расстояниях побеждает стена, встреченная первой.
func ClosestPoint(walls []models.Wall, p models.Point, threshold float64) (models.Point, bool) {
	var closest models.Point
	found := false
	minDistance := math.Inf(1)

	for _, w := range walls {
		projected := projectOnWall(w, p)
		d := Distance(projected, p)
		if d < minDistance && d < threshold {
			minDistance = d
			closest = projected
			found = true
		}
	}

	return closest, found
}
