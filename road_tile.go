package roadnet

type TileType uint16

const (
	TILE_NOT_CONNECTED = TileType(iota + 1)
	TILE_END
	TILE_STRAIGHT
	TILE_CURVE
	TILE_CURVE_FULL
	TILE_T_CROSSING
	TILE_CROSSING
	TILE_RAMP
	TILE_UNDEFINED
	TILE_EMPTY
)

func (iotaIdx TileType) String() string {
	return [...]string{"not_connected", "end", "straight", "curve", "curve_full", "t_crossing", "crossing", "ramp", "undefined", "empty"}[iotaIdx-1]
}

// canonicalConnections is set of connected sides (bit per Direction) for rotation 0
var canonicalConnections = map[TileType]uint8{
	TILE_NOT_CONNECTED: 0,
	TILE_END:           1 << DIRECTION_NORTH,
	TILE_STRAIGHT:      1<<DIRECTION_NORTH | 1<<DIRECTION_SOUTH,
	TILE_CURVE:         1<<DIRECTION_NORTH | 1<<DIRECTION_EAST,
	TILE_CURVE_FULL:    1<<DIRECTION_NORTH | 1<<DIRECTION_EAST,
	TILE_T_CROSSING:    1<<DIRECTION_NORTH | 1<<DIRECTION_EAST | 1<<DIRECTION_SOUTH,
	TILE_CROSSING:      0x0F,
	TILE_RAMP:          1<<DIRECTION_NORTH | 1<<DIRECTION_SOUTH,
}

// RoadCategory identifies road catalog entry (looks and lane geometry)
type RoadCategory uint16

const (
	ROAD_CATEGORY_DEFAULT = RoadCategory(iota + 1)
)

func (iotaIdx RoadCategory) String() string {
	return [...]string{"default"}[iotaIdx-1]
}

// Valid returns true for known categories
func (iotaIdx RoadCategory) Valid() bool {
	return iotaIdx == ROAD_CATEGORY_DEFAULT
}

// RoadTile is classification of a single grid cell.
// TileType and Rotation are derived from neighbour connectivity by RoadGrid.UpdateRoadTypes
type RoadTile struct {
	TileType     TileType
	Rotation     int // 90*Rotation degrees clockwise from canonical orientation, [0, 3]
	RoadCategory RoadCategory
}

func emptyTile() RoadTile {
	return RoadTile{TileType: TILE_EMPTY}
}

// IsRoad returns true if the cell holds a road
func (t RoadTile) IsRoad() bool {
	return t.TileType != TILE_EMPTY
}

// IsNode returns true if tile is a road node: anything which is not a plain continuation of a road
func (t RoadTile) IsNode() bool {
	switch t.TileType {
	case TILE_STRAIGHT, TILE_RAMP, TILE_UNDEFINED, TILE_EMPTY:
		return false
	}
	return true
}

// Connections returns bitmask (bit per Direction) of connected sides with rotation applied
func (t RoadTile) Connections() uint8 {
	canonical := canonicalConnections[t.TileType]
	var mask uint8
	for _, dir := range Directions {
		if canonical&(1<<dir) != 0 {
			mask |= 1 << dir.RotateCW(t.Rotation)
		}
	}
	return mask
}

// ConnectedTo returns true if classification connects the tile to given side
func (t RoadTile) ConnectedTo(dir Direction) bool {
	if !dir.Valid() {
		return t.Connections() != 0
	}
	return t.Connections()&(1<<dir) != 0
}
