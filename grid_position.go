package roadnet

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// GridPosition is integer position of a cell in world grid coordinates
type GridPosition struct {
	X int
	Y int
}

// Pos is shorthand for GridPosition{x, y}
func Pos(x, y int) GridPosition {
	return GridPosition{X: x, Y: y}
}

// String returns pretty printed value for GridPosition
func (p GridPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Less compares positions lexicographically (X first, then Y)
func (p GridPosition) Less(q GridPosition) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Add returns neighbour of position in given direction
func (p GridPosition) Add(dir Direction) GridPosition {
	v := dir.Vector()
	return GridPosition{X: p.X + int(v.X), Y: p.Y + int(v.Y)}
}

// Offset returns position shifted by n cells in given direction
func (p GridPosition) Offset(dir Direction, n int) GridPosition {
	v := dir.Vector()
	return GridPosition{X: p.X + n*int(v.X), Y: p.Y + n*int(v.Y)}
}

// ToWorld returns centre of the cell in world space.
// Grid X maps to world X, grid Y maps to world Z and height goes to world Y
func (p GridPosition) ToWorld(tileSize, height float64) r3.Vector {
	return r3.Vector{
		X: (float64(p.X) + 0.5) * tileSize,
		Y: height,
		Z: (float64(p.Y) + 0.5) * tileSize,
	}
}

// Point returns cell centre as planar point (in cells)
func (p GridPosition) Point() orb.Point {
	return orb.Point{float64(p.X), float64(p.Y)}
}

// ChunkPosition identifies chunk in the world
type ChunkPosition struct {
	X int
	Y int
}

// String returns pretty printed value for ChunkPosition
func (c ChunkPosition) String() string {
	return fmt.Sprintf("chunk(%d,%d)", c.X, c.Y)
}

// Neighbour returns adjacent chunk in given direction
func (c ChunkPosition) Neighbour(dir Direction) ChunkPosition {
	v := dir.Vector()
	return ChunkPosition{X: c.X + int(v.X), Y: c.Y + int(v.Y)}
}

// Origin returns world position of the chunk's (0,0) cell
func (c ChunkPosition) Origin(chunkSize int) GridPosition {
	return GridPosition{X: c.X * chunkSize, Y: c.Y * chunkSize}
}

// ChunkOf returns chunk containing the position
func (p GridPosition) ChunkOf(chunkSize int) ChunkPosition {
	return ChunkPosition{X: floorDiv(p.X, chunkSize), Y: floorDiv(p.Y, chunkSize)}
}

// Local returns position relative to the chunk containing it
func (p GridPosition) Local(chunkSize int) GridPosition {
	return GridPosition{X: p.X - floorDiv(p.X, chunkSize)*chunkSize, Y: p.Y - floorDiv(p.Y, chunkSize)*chunkSize}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// rectBounds returns min and max corners of rectangle spanned by a and b
func rectBounds(a, b GridPosition) (GridPosition, GridPosition) {
	return GridPosition{X: min(a.X, b.X), Y: min(a.Y, b.Y)}, GridPosition{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
}
