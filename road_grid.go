package roadnet

import (
	"github.com/boljen/go-bitmap"
	"github.com/pkg/errors"
)

// RoadGrid is a fixed size*size array of road tiles owned by a single chunk.
// Positions given to RoadGrid methods are local to the chunk: [0, size) on both axes
type RoadGrid struct {
	size  int
	tiles []RoadTile

	// borders[dir] holds a bit per cell along the chunk side in given direction.
	// Set bit means the outermost cell is connected to the neighbouring chunk.
	// Index along north/south sides is X, along east/west sides is Y
	borders [4]bitmap.Bitmap

	meshOutdated bool
}

// NewRoadGrid returns empty grid of size*size cells
func NewRoadGrid(size int) *RoadGrid {
	if size <= 0 {
		panic("NewRoadGrid(): grid size must be positive")
	}
	grid := RoadGrid{
		size:  size,
		tiles: make([]RoadTile, size*size),
	}
	for i := range grid.borders {
		grid.borders[i] = bitmap.New(size)
	}
	for i := range grid.tiles {
		grid.tiles[i] = emptyTile()
	}
	return &grid
}

// Size returns number of cells along one side
func (grid *RoadGrid) Size() int {
	return grid.size
}

// InBounds returns true if local position lies within the grid
func (grid *RoadGrid) InBounds(pos GridPosition) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < grid.size && pos.Y < grid.size
}

func (grid *RoadGrid) checkBounds(positions ...GridPosition) error {
	for _, pos := range positions {
		if !grid.InBounds(pos) {
			return errors.Wrapf(ErrOutOfBounds, "position %s in grid of size %d", pos, grid.size)
		}
	}
	return nil
}

func (grid *RoadGrid) at(pos GridPosition) *RoadTile {
	return &grid.tiles[pos.Y*grid.size+pos.X]
}

// Tile returns classification of the cell
func (grid *RoadGrid) Tile(pos GridPosition) (RoadTile, error) {
	if err := grid.checkBounds(pos); err != nil {
		return RoadTile{}, err
	}
	return *grid.at(pos), nil
}

// SetRoad marks every cell of rectangle spanned by a and b as road.
// Cells become TILE_UNDEFINED until UpdateRoadTypes is called.
// Both corners are validated before the grid is touched
func (grid *RoadGrid) SetRoad(a, b GridPosition, category RoadCategory) error {
	if err := grid.checkBounds(a, b); err != nil {
		return errors.Wrap(err, "Can't set road")
	}
	if !category.Valid() {
		return errors.Wrapf(ErrInvalidRequest, "unknown road category %d", category)
	}
	lo, hi := rectBounds(a, b)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			*grid.at(GridPosition{X: x, Y: y}) = RoadTile{TileType: TILE_UNDEFINED, RoadCategory: category}
		}
	}
	return nil
}

// RemoveRoad empties every cell of rectangle spanned by a and b
func (grid *RoadGrid) RemoveRoad(a, b GridPosition) error {
	if err := grid.checkBounds(a, b); err != nil {
		return errors.Wrap(err, "Can't remove road")
	}
	lo, hi := rectBounds(a, b)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			*grid.at(GridPosition{X: x, Y: y}) = emptyTile()
		}
	}
	grid.meshOutdated = true
	return nil
}

// borderIndex returns index of the cell along the chunk side in given direction
func borderIndex(pos GridPosition, dir Direction) int {
	if dir == DIRECTION_NORTH || dir == DIRECTION_SOUTH {
		return pos.X
	}
	return pos.Y
}

// SetBorder sets connectivity of the outermost cell in direction dir with the neighbouring chunk
func (grid *RoadGrid) SetBorder(dir Direction, index int, connected bool) error {
	if !dir.Valid() {
		return errors.Wrap(ErrInvalidRequest, "border direction must be defined")
	}
	if index < 0 || index >= grid.size {
		return errors.Wrapf(ErrOutOfBounds, "border index %d in grid of size %d", index, grid.size)
	}
	grid.borders[dir].Set(index, connected)
	return nil
}

// Border returns connectivity of the outermost cell in direction dir with the neighbouring chunk
func (grid *RoadGrid) Border(dir Direction, index int) (bool, error) {
	if !dir.Valid() {
		return false, errors.Wrap(ErrInvalidRequest, "border direction must be defined")
	}
	if index < 0 || index >= grid.size {
		return false, errors.Wrapf(ErrOutOfBounds, "border index %d in grid of size %d", index, grid.size)
	}
	return grid.borders[dir].Get(index), nil
}

// IsConnected returns whether the cell is connected to its neighbour in direction dir.
// DIRECTION_UNDEFINED asks whether the cell is connected in any direction.
// Neighbours outside of the grid are answered from border flags
func (grid *RoadGrid) IsConnected(pos GridPosition, dir Direction) (bool, error) {
	if err := grid.checkBounds(pos); err != nil {
		return false, err
	}
	if !dir.Valid() {
		return grid.connectivity(pos) != 0, nil
	}
	return grid.connected(pos, dir), nil
}

func (grid *RoadGrid) connected(pos GridPosition, dir Direction) bool {
	if !grid.at(pos).IsRoad() {
		return false
	}
	neighbour := pos.Add(dir)
	if !grid.InBounds(neighbour) {
		return grid.borders[dir].Get(borderIndex(pos, dir))
	}
	return grid.at(neighbour).IsRoad()
}

// connectivity returns bitmask (bit per Direction) of connected neighbours
func (grid *RoadGrid) connectivity(pos GridPosition) uint8 {
	var mask uint8
	for _, dir := range Directions {
		if grid.connected(pos, dir) {
			mask |= 1 << dir
		}
	}
	return mask
}

// UpdateRoadTypes reclassifies every road cell from its four-neighbour connectivity
// and marks mesh as outdated. Returns positions whose classification changed
func (grid *RoadGrid) UpdateRoadTypes() []GridPosition {
	changed := []GridPosition{}
	for y := 0; y < grid.size; y++ {
		for x := 0; x < grid.size; x++ {
			pos := GridPosition{X: x, Y: y}
			tile := grid.at(pos)
			if !tile.IsRoad() {
				continue
			}
			tileType, rotation := classify(grid.connectivity(pos))
			if tile.TileType != tileType || tile.Rotation != rotation {
				tile.TileType = tileType
				tile.Rotation = rotation
				changed = append(changed, pos)
			}
		}
	}
	grid.meshOutdated = true
	return changed
}

// GetNodes returns positions of cells classified as road nodes
func (grid *RoadGrid) GetNodes() []GridPosition {
	nodes := []GridPosition{}
	for y := 0; y < grid.size; y++ {
		for x := 0; x < grid.size; x++ {
			pos := GridPosition{X: x, Y: y}
			if grid.at(pos).IsNode() {
				nodes = append(nodes, pos)
			}
		}
	}
	return nodes
}

// Roads returns number of road cells
func (grid *RoadGrid) Roads() int {
	count := 0
	for i := range grid.tiles {
		if grid.tiles[i].IsRoad() {
			count++
		}
	}
	return count
}

// Clear removes every road and border connection
func (grid *RoadGrid) Clear() {
	for i := range grid.tiles {
		grid.tiles[i] = emptyTile()
	}
	for i := range grid.borders {
		grid.borders[i] = bitmap.New(grid.size)
	}
	grid.meshOutdated = true
}

// MeshOutdated returns true if classification changed since mesh was last consumed
func (grid *RoadGrid) MeshOutdated() bool {
	return grid.meshOutdated
}

// MarkMeshConsumed is called by mesh generator once it has rebuilt the chunk geometry
func (grid *RoadGrid) MarkMeshConsumed() {
	grid.meshOutdated = false
}
