package roadnet

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	defaultTileSize          = 10.0
	defaultRoadwayWidth      = 4.0
	defaultRoadwayHeight     = 0.1
	defaultSidewalkHeight    = 0.25
	defaultVerticesPerCircle = 8
)

// RoadSpecs holds lane geometry parameters of a road catalog entry
type RoadSpecs struct {
	TileSize          float64 // Edge length of one grid cell in world units
	RoadwayWidth      float64 // Width of one carriageway; lane centre lies at half of it from the road axis
	RoadwayHeight     float64 // Height of drivable surface
	SidewalkHeight    float64 // Height of sidewalk, consumed by mesh generators
	VerticesPerCircle int     // Samples per quarter turn of generated arcs
}

// DefaultRoadSpecs returns specs of the default road catalog entry
func DefaultRoadSpecs() RoadSpecs {
	return RoadSpecs{
		TileSize:          defaultTileSize,
		RoadwayWidth:      defaultRoadwayWidth,
		RoadwayHeight:     defaultRoadwayHeight,
		SidewalkHeight:    defaultSidewalkHeight,
		VerticesPerCircle: defaultVerticesPerCircle,
	}
}

// String returns pretty printed specs
func (specs RoadSpecs) String() string {
	return fmt.Sprintf("tile: %.2f | roadway: %.2fx%.2f | sidewalk: %.2f | arc vertices: %d", specs.TileSize, specs.RoadwayWidth, specs.RoadwayHeight, specs.SidewalkHeight, specs.VerticesPerCircle)
}

// Validate checks that lanes fit into a tile
func (specs RoadSpecs) Validate() error {
	if specs.TileSize <= 0 {
		return errors.Wrapf(ErrInvalidSpecs, "tile size must be positive, got %f", specs.TileSize)
	}
	if specs.RoadwayWidth <= 0 || specs.RoadwayWidth >= specs.TileSize {
		return errors.Wrapf(ErrInvalidSpecs, "roadway width must be in (0, %f), got %f", specs.TileSize, specs.RoadwayWidth)
	}
	if specs.VerticesPerCircle < 1 {
		return errors.Wrapf(ErrInvalidSpecs, "vertices per circle must be positive, got %d", specs.VerticesPerCircle)
	}
	if specs.SidewalkHeight < specs.RoadwayHeight {
		return errors.Wrapf(ErrInvalidSpecs, "sidewalk (%f) must not be lower than roadway (%f)", specs.SidewalkHeight, specs.RoadwayHeight)
	}
	return nil
}

// laneOffset returns distance from road axis to lane centre
func (specs RoadSpecs) laneOffset() float64 {
	return specs.RoadwayWidth / 2
}
