package roadnet

import (
	"github.com/golang/geo/r2"
)

// Direction is one of four sides of a tile. Directions are ordered clockwise,
// so rotating by one step means rotating by 90 degrees clockwise.
type Direction uint8

const (
	DIRECTION_NORTH = Direction(iota)
	DIRECTION_EAST
	DIRECTION_SOUTH
	DIRECTION_WEST
	DIRECTION_UNDEFINED
)

// Directions lists geometric directions in scan order
var Directions = [4]Direction{DIRECTION_NORTH, DIRECTION_EAST, DIRECTION_SOUTH, DIRECTION_WEST}

var directionVectors = [4]r2.Point{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
}

func (iotaIdx Direction) String() string {
	return [...]string{"north", "east", "south", "west", "undefined"}[iotaIdx]
}

// Valid returns true for geometric directions (everything but DIRECTION_UNDEFINED)
func (iotaIdx Direction) Valid() bool {
	return iotaIdx < DIRECTION_UNDEFINED
}

// Inverse returns opposite direction. DIRECTION_UNDEFINED has no inverse and is returned as is
func (iotaIdx Direction) Inverse() Direction {
	if !iotaIdx.Valid() {
		return DIRECTION_UNDEFINED
	}
	return (iotaIdx + 2) % 4
}

// RotateCW rotates direction by 90*n degrees clockwise
func (iotaIdx Direction) RotateCW(n int) Direction {
	if !iotaIdx.Valid() {
		return DIRECTION_UNDEFINED
	}
	return Direction((int(iotaIdx) + mod4(n)) % 4)
}

// Vector returns unit offset for the direction. Grid Y grows to the north.
//
// Note: panics for DIRECTION_UNDEFINED
//
func (iotaIdx Direction) Vector() r2.Point {
	return directionVectors[iotaIdx]
}

// DirectionBetween returns direction of travel from a to b.
// DIRECTION_UNDEFINED is returned when positions are equal or are not axis-aligned
func DirectionBetween(a, b GridPosition) Direction {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 0 && dy > 0:
		return DIRECTION_NORTH
	case dx == 0 && dy < 0:
		return DIRECTION_SOUTH
	case dy == 0 && dx > 0:
		return DIRECTION_EAST
	case dy == 0 && dx < 0:
		return DIRECTION_WEST
	}
	return DIRECTION_UNDEFINED
}

// rotateCW rotates vector by 90*n degrees clockwise
func rotateCW(v r2.Point, n int) r2.Point {
	for i := 0; i < mod4(n); i++ {
		v = r2.Point{X: v.Y, Y: -v.X}
	}
	return v
}

func mod4(n int) int {
	return ((n % 4) + 4) % 4
}
