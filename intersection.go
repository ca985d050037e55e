package roadnet

import (
	"math"

	"github.com/golang/geo/r2"
)

// segment is parametric line position + lambda*direction, lambda in [0, 1]
type segment struct {
	position  r2.Point
	direction r2.Point
}

func newSegment(a, b GridPosition) segment {
	p := r2.Point{X: float64(a.X), Y: float64(a.Y)}
	q := r2.Point{X: float64(b.X), Y: float64(b.Y)}
	return segment{position: p, direction: q.Sub(p)}
}

func (s segment) at(lambda float64) r2.Point {
	return s.position.Add(s.direction.Mul(lambda))
}

// intersection is result of intersecting two segments.
// For crossing segments from == to, for collinear overlapping ones [from, to] is the shared part
type intersection struct {
	from GridPosition
	to   GridPosition
}

func (i intersection) isPoint() bool {
	return i.from == i.to
}

// intersect checks if two segments intersect.
// Non-parallel segments are solved as 2x2 linear system for both lambdas;
// parallel ones intersect only when collinear with overlapping parameter ranges
func intersect(s1, s2 segment) (intersection, bool) {
	offset := s2.position.Sub(s1.position)
	det := s1.direction.Cross(s2.direction)
	if det != 0 {
		lambda1 := offset.Cross(s2.direction) / det
		lambda2 := offset.Cross(s1.direction) / det
		if !inUnit(lambda1) || !inUnit(lambda2) {
			return intersection{}, false
		}
		pt := toGrid(s1.at(lambda1))
		return intersection{from: pt, to: pt}, true
	}
	if offset.Cross(s1.direction) != 0 {
		// Parallel but not on the same line
		return intersection{}, false
	}
	length := s1.direction.Dot(s1.direction)
	if length == 0 {
		return intersection{}, false
	}
	t0 := offset.Dot(s1.direction) / length
	t1 := s2.position.Add(s2.direction).Sub(s1.position).Dot(s1.direction) / length
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	lo := math.Max(0, t0)
	hi := math.Min(1, t1)
	if lo > hi {
		return intersection{}, false
	}
	return intersection{from: toGrid(s1.at(lo)), to: toGrid(s1.at(hi))}, true
}

func inUnit(lambda float64) bool {
	return lambda >= 0 && lambda <= 1
}

func toGrid(p r2.Point) GridPosition {
	return GridPosition{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}
