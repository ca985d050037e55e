package roadnet

import (
	"fmt"
	"math/bits"
)

// classify derives tile type and rotation from connectivity mask (bit per Direction).
//
// Note: panics on a mask which is not a 4-bit value
//
func classify(mask uint8) (TileType, int) {
	if mask > 0x0F {
		panic(fmt.Sprintf("classify(): connectivity mask %#x has more than four sides", mask))
	}
	connected := func(dir Direction) bool {
		return mask&(1<<dir) != 0
	}
	switch bits.OnesCount8(mask) {
	case 0:
		return TILE_NOT_CONNECTED, 0
	case 1:
		for _, dir := range Directions {
			if connected(dir) {
				return TILE_END, int(dir)
			}
		}
	case 2:
		if connected(DIRECTION_NORTH) && connected(DIRECTION_SOUTH) {
			return TILE_STRAIGHT, 0
		}
		if connected(DIRECTION_EAST) && connected(DIRECTION_WEST) {
			return TILE_STRAIGHT, 1
		}
		first := 0
		for _, dir := range Directions {
			if connected(dir) {
				first = int(dir)
				break
			}
		}
		// North+West scans to north first, but the curve's canonical start is west
		if first == 0 {
			if connected(DIRECTION_WEST) {
				return TILE_CURVE_FULL, 3
			}
			return TILE_CURVE_FULL, 0
		}
		return TILE_CURVE_FULL, first
	case 3:
		for _, dir := range Directions {
			if !connected(dir) {
				return TILE_T_CROSSING, mod4(int(dir) - 3)
			}
		}
	case 4:
		return TILE_CROSSING, 0
	}
	panic(fmt.Sprintf("classify(): connectivity mask %#x is not covered", mask))
}
