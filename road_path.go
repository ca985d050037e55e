package roadnet

import (
	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RoadPath is ordered sequence of 3D points describing lane centre line
type RoadPath struct {
	points []r3.Vector
}

// NewRoadPath returns path made of given points
func NewRoadPath(points ...r3.Vector) RoadPath {
	path := RoadPath{points: make([]r3.Vector, len(points))}
	copy(path.points, points)
	return path
}

// Points returns copy of path points
func (path *RoadPath) Points() []r3.Vector {
	points := make([]r3.Vector, len(path.points))
	copy(points, path.points)
	return points
}

// Len returns number of points
func (path *RoadPath) Len() int {
	return len(path.points)
}

// Empty returns true if path has no points
func (path *RoadPath) Empty() bool {
	return len(path.points) == 0
}

// At returns i-th point
func (path *RoadPath) At(i int) r3.Vector {
	return path.points[i]
}

// First returns first point. Path must not be empty
func (path *RoadPath) First() r3.Vector {
	return path.points[0]
}

// Last returns last point. Path must not be empty
func (path *RoadPath) Last() r3.Vector {
	return path.points[len(path.points)-1]
}

// Append adds points to the end of the path
func (path *RoadPath) Append(points ...r3.Vector) {
	path.points = append(path.points, points...)
}

// Join appends all points of other path. A point equal to the current last one is not duplicated
func (path *RoadPath) Join(other RoadPath) {
	points := other.points
	if len(points) > 0 && len(path.points) > 0 && path.Last().ApproxEqual(points[0]) {
		points = points[1:]
	}
	path.points = append(path.points, points...)
}

// RemoveFront drops first n points (all of them if n exceeds path length)
func (path *RoadPath) RemoveFront(n int) {
	if n <= 0 {
		return
	}
	if n >= len(path.points) {
		path.points = path.points[:0]
		return
	}
	path.points = append(path.points[:0], path.points[n:]...)
}

// Reversed returns new path with points in reverse order
func (path *RoadPath) Reversed() RoadPath {
	reversed := RoadPath{points: make([]r3.Vector, len(path.points))}
	for i, pt := range path.points {
		reversed.points[len(path.points)-i-1] = pt
	}
	return reversed
}

// LineString returns projection of the path onto ground plane (world X, world Z)
func (path *RoadPath) LineString() orb.LineString {
	line := make(orb.LineString, len(path.points))
	for i, pt := range path.points {
		line[i] = orb.Point{pt.X, pt.Z}
	}
	return line
}

// Length returns planar length of the path (height is ignored)
func (path *RoadPath) Length() float64 {
	return planar.Length(path.LineString())
}

// CarPath is a path being driven by a vehicle together with road nodes still to be visited.
// The path is extended node by node (see World.ExtendCarPath) as the vehicle approaches its end
type CarPath struct {
	RoadPath
	pending     []GridPosition
	current     GridPosition
	arrivedFrom Direction
}

// NewCarPath returns empty car path starting at given road node
func NewCarPath(start GridPosition) *CarPath {
	return &CarPath{
		pending:     make([]GridPosition, 0),
		current:     start,
		arrivedFrom: DIRECTION_UNDEFINED,
	}
}

// PushNode queues node to traverse after all already pending ones
func (cp *CarPath) PushNode(positions ...GridPosition) {
	cp.pending = append(cp.pending, positions...)
}

// Pending returns copy of queued nodes
func (cp *CarPath) Pending() []GridPosition {
	pending := make([]GridPosition, len(cp.pending))
	copy(pending, cp.pending)
	return pending
}

// Current returns last node the path has been extended to
func (cp *CarPath) Current() GridPosition {
	return cp.current
}

// ArrivedFrom returns side of the current node tile the path enters through
func (cp *CarPath) ArrivedFrom() Direction {
	return cp.arrivedFrom
}

// NeedsExtension returns true if less than minPoints points are left and there are pending nodes
func (cp *CarPath) NeedsExtension(minPoints int) bool {
	return len(cp.pending) > 0 && cp.Len() < minPoints
}

func (cp *CarPath) popNode() (GridPosition, bool) {
	if len(cp.pending) == 0 {
		return GridPosition{}, false
	}
	next := cp.pending[0]
	cp.pending = cp.pending[1:]
	return next, true
}
