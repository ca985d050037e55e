package roadnet

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

// plusGrid returns grid with two roads crossing at (3,3)
func plusGrid(t *testing.T) *RoadGrid {
	grid := NewRoadGrid(8)
	if err := grid.SetRoad(Pos(1, 3), Pos(5, 3), ROAD_CATEGORY_DEFAULT); err != nil {
		t.Fatal(err)
	}
	if err := grid.SetRoad(Pos(3, 1), Pos(3, 5), ROAD_CATEGORY_DEFAULT); err != nil {
		t.Fatal(err)
	}
	grid.UpdateRoadTypes()
	return grid
}

func TestSetRoadOutOfBounds(t *testing.T) {
	grid := NewRoadGrid(8)
	err := grid.SetRoad(Pos(0, 0), Pos(8, 0), ROAD_CATEGORY_DEFAULT)
	if errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("Error must be %v, but got %v", ErrOutOfBounds, err)
	}
	if grid.Roads() != 0 {
		t.Errorf("Rejected road must not touch the grid, but got %d road cells", grid.Roads())
	}
	err = grid.SetRoad(Pos(-1, 2), Pos(3, 2), ROAD_CATEGORY_DEFAULT)
	if errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("Error must be %v, but got %v", ErrOutOfBounds, err)
	}
	_, err = grid.Tile(Pos(2, 8))
	if errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("Error must be %v, but got %v", ErrOutOfBounds, err)
	}
	_, err = grid.IsConnected(Pos(8, 8), DIRECTION_NORTH)
	if errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("Error must be %v, but got %v", ErrOutOfBounds, err)
	}
}

func TestSetRoadUndefined(t *testing.T) {
	grid := NewRoadGrid(4)
	if err := grid.SetRoad(Pos(2, 0), Pos(2, 3), ROAD_CATEGORY_DEFAULT); err != nil {
		t.Fatal(err)
	}
	tile, _ := grid.Tile(Pos(2, 1))
	if tile.TileType != TILE_UNDEFINED {
		t.Errorf("Tile type before classification must be %s, but got %s", TILE_UNDEFINED, tile.TileType)
	}
	if grid.Roads() != 4 {
		t.Errorf("Number of road cells must be %d, but got %d", 4, grid.Roads())
	}
}

func TestUpdateRoadTypes(t *testing.T) {
	grid := plusGrid(t)
	correct := []struct {
		pos      GridPosition
		tileType TileType
		rotation int
	}{
		{Pos(3, 3), TILE_CROSSING, 0},
		{Pos(1, 3), TILE_END, 1},
		{Pos(5, 3), TILE_END, 3},
		{Pos(3, 5), TILE_END, 2},
		{Pos(3, 1), TILE_END, 0},
		{Pos(2, 3), TILE_STRAIGHT, 1},
		{Pos(3, 2), TILE_STRAIGHT, 0},
		{Pos(0, 0), TILE_EMPTY, 0},
	}
	for _, c := range correct {
		tile, err := grid.Tile(c.pos)
		if err != nil {
			t.Error(err)
			continue
		}
		if tile.TileType != c.tileType || tile.Rotation != c.rotation {
			t.Errorf("Tile at %s must be %s/%d, but got %s/%d", c.pos, c.tileType, c.rotation, tile.TileType, tile.Rotation)
		}
	}
	if !grid.MeshOutdated() {
		t.Errorf("Mesh must be outdated after classification")
	}
	grid.MarkMeshConsumed()
	if grid.MeshOutdated() {
		t.Errorf("Mesh must not be outdated after it has been consumed")
	}
	changed := grid.UpdateRoadTypes()
	if len(changed) != 0 {
		t.Errorf("Second classification must not change anything, but got %v", changed)
	}
}

func TestGetNodes(t *testing.T) {
	grid := plusGrid(t)
	correct := []GridPosition{Pos(3, 1), Pos(1, 3), Pos(3, 3), Pos(5, 3), Pos(3, 5)}
	nodes := grid.GetNodes()
	if !reflect.DeepEqual(nodes, correct) {
		t.Errorf("Nodes must be %v, but got %v", correct, nodes)
	}
}

func TestIsConnected(t *testing.T) {
	grid := plusGrid(t)
	correct := []struct {
		pos       GridPosition
		dir       Direction
		connected bool
	}{
		{Pos(2, 3), DIRECTION_EAST, true},
		{Pos(2, 3), DIRECTION_WEST, true},
		{Pos(2, 3), DIRECTION_NORTH, false},
		{Pos(2, 3), DIRECTION_UNDEFINED, true},
		{Pos(0, 0), DIRECTION_UNDEFINED, false},
		{Pos(0, 3), DIRECTION_EAST, false},
		{Pos(1, 3), DIRECTION_WEST, false},
	}
	for _, c := range correct {
		connected, err := grid.IsConnected(c.pos, c.dir)
		if err != nil {
			t.Error(err)
			continue
		}
		if connected != c.connected {
			t.Errorf("Connection of %s to %s must be %t, but got %t", c.pos, c.dir, c.connected, connected)
		}
	}
}

func TestBorders(t *testing.T) {
	grid := NewRoadGrid(4)
	if err := grid.SetRoad(Pos(0, 1), Pos(0, 1), ROAD_CATEGORY_DEFAULT); err != nil {
		t.Fatal(err)
	}
	grid.UpdateRoadTypes()
	tile, _ := grid.Tile(Pos(0, 1))
	if tile.TileType != TILE_NOT_CONNECTED {
		t.Errorf("Lonely tile must be %s, but got %s", TILE_NOT_CONNECTED, tile.TileType)
	}

	if err := grid.SetBorder(DIRECTION_WEST, 1, true); err != nil {
		t.Fatal(err)
	}
	grid.UpdateRoadTypes()
	tile, _ = grid.Tile(Pos(0, 1))
	if tile.TileType != TILE_END || tile.Rotation != 3 {
		t.Errorf("Tile connected through west border must be %s/%d, but got %s/%d", TILE_END, 3, tile.TileType, tile.Rotation)
	}
	connected, _ := grid.IsConnected(Pos(0, 1), DIRECTION_WEST)
	if !connected {
		t.Errorf("Tile must be connected through west border")
	}
	set, _ := grid.Border(DIRECTION_WEST, 1)
	if !set {
		t.Errorf("West border flag must be set")
	}
	set, _ = grid.Border(DIRECTION_EAST, 1)
	if set {
		t.Errorf("East border flag must not be set")
	}

	if err := grid.SetBorder(DIRECTION_NORTH, 4, true); errors.Cause(err) != ErrOutOfBounds {
		t.Errorf("Error must be %v, but got %v", ErrOutOfBounds, err)
	}
	if err := grid.SetBorder(DIRECTION_UNDEFINED, 0, true); errors.Cause(err) != ErrInvalidRequest {
		t.Errorf("Error must be %v, but got %v", ErrInvalidRequest, err)
	}
}

func TestRemoveRoad(t *testing.T) {
	grid := NewRoadGrid(5)
	if err := grid.SetRoad(Pos(0, 2), Pos(4, 2), ROAD_CATEGORY_DEFAULT); err != nil {
		t.Fatal(err)
	}
	grid.UpdateRoadTypes()
	if err := grid.RemoveRoad(Pos(2, 2), Pos(2, 2)); err != nil {
		t.Fatal(err)
	}
	grid.UpdateRoadTypes()
	left, _ := grid.Tile(Pos(1, 2))
	if left.TileType != TILE_END || left.Rotation != 3 {
		t.Errorf("Left part must end with %s/%d, but got %s/%d", TILE_END, 3, left.TileType, left.Rotation)
	}
	right, _ := grid.Tile(Pos(3, 2))
	if right.TileType != TILE_END || right.Rotation != 1 {
		t.Errorf("Right part must start with %s/%d, but got %s/%d", TILE_END, 1, right.TileType, right.Rotation)
	}
	removed, _ := grid.Tile(Pos(2, 2))
	if removed.IsRoad() {
		t.Errorf("Removed tile must be empty, but got %s", removed.TileType)
	}
}

func TestClassificationDeterminism(t *testing.T) {
	const size = 16
	rnd := rand.New(rand.NewSource(42))
	strokes := make([][2]GridPosition, 40)
	for i := range strokes {
		a := Pos(rnd.Intn(size), rnd.Intn(size))
		b := a
		if rnd.Intn(2) == 0 {
			b.X = rnd.Intn(size)
		} else {
			b.Y = rnd.Intn(size)
		}
		strokes[i] = [2]GridPosition{a, b}
	}
	apply := func(grid *RoadGrid) {
		for _, s := range strokes {
			if err := grid.SetRoad(s[0], s[1], ROAD_CATEGORY_DEFAULT); err != nil {
				t.Fatal(err)
			}
		}
		grid.UpdateRoadTypes()
	}

	grid := NewRoadGrid(size)
	apply(grid)
	snapshot := make([]RoadTile, len(grid.tiles))
	copy(snapshot, grid.tiles)
	for _, tile := range snapshot {
		if tile.TileType == TILE_UNDEFINED {
			t.Fatalf("No tile must stay %s after classification", TILE_UNDEFINED)
		}
	}

	grid.Clear()
	if grid.Roads() != 0 {
		t.Errorf("Cleared grid must have no roads, but got %d", grid.Roads())
	}
	apply(grid)
	if !reflect.DeepEqual(snapshot, grid.tiles) {
		t.Errorf("Classification of the same roads must be the same after Clear")
	}

	// Connections must agree with neighbours on both sides of every shared edge
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := Pos(x, y)
			tile := grid.at(pos)
			if !tile.IsRoad() {
				continue
			}
			mask := grid.connectivity(pos)
			if tile.Connections() != mask {
				t.Errorf("Connections of %s must be %04b, but got %04b", pos, mask, tile.Connections())
			}
		}
	}
}
