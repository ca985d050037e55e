package roadnet

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestRoadPathJoin(t *testing.T) {
	path := NewRoadPath(r3.Vector{X: 0}, r3.Vector{X: 1})
	path.Join(NewRoadPath(r3.Vector{X: 1}, r3.Vector{X: 2}, r3.Vector{X: 3}))
	if path.Len() != 4 {
		t.Errorf("Joined path must have %d points, but got %d", 4, path.Len())
	}
	path.Join(RoadPath{})
	if path.Len() != 4 {
		t.Errorf("Joining empty path must not change length, but got %d", path.Len())
	}
	if math.Abs(path.Length()-3) > eps {
		t.Errorf("Path length must be %f, but got %f", 3.0, path.Length())
	}

	reversed := path.Reversed()
	if reversed.First() != path.Last() || reversed.Last() != path.First() {
		t.Errorf("Reversed path must swap endpoints")
	}

	path.RemoveFront(1)
	if path.First().X != 1 {
		t.Errorf("First point after removal must be %v, but got %v", 1.0, path.First().X)
	}
	path.RemoveFront(10)
	if !path.Empty() {
		t.Errorf("Path must be empty after removing more points than it has")
	}
}

func TestRoadPathPointsCopy(t *testing.T) {
	path := NewRoadPath(r3.Vector{X: 1, Y: 2, Z: 3})
	points := path.Points()
	points[0].X = 100
	if path.First().X != 1 {
		t.Errorf("Points must return a copy")
	}
	line := path.LineString()
	if line[0][0] != 1 || line[0][1] != 3 {
		t.Errorf("Plan view point must be (1, 3), but got %v", line[0])
	}
}

func TestCarPathPending(t *testing.T) {
	cp := NewCarPath(Pos(0, 0))
	if cp.ArrivedFrom() != DIRECTION_UNDEFINED {
		t.Errorf("New car path must not have arrival side, but got %s", cp.ArrivedFrom())
	}
	if cp.NeedsExtension(5) {
		t.Errorf("Car path without pending nodes must not need extension")
	}
	cp.PushNode(Pos(0, 5), Pos(5, 5))
	if !cp.NeedsExtension(5) {
		t.Errorf("Empty car path with pending nodes must need extension")
	}
	next, ok := cp.popNode()
	if !ok || next != Pos(0, 5) {
		t.Errorf("Popped node must be %s, but got %s", Pos(0, 5), next)
	}
	if len(cp.Pending()) != 1 {
		t.Errorf("Number of pending nodes must be %d, but got %d", 1, len(cp.Pending()))
	}
}
