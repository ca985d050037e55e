package roadnet

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// NodePaths holds lane paths of a tile keyed by (side the vehicle arrives from, side it leaves by).
// Pairs which are not connected by the tile are empty
type NodePaths [4][4]RoadPath

// Get returns path for given pair of sides
func (paths *NodePaths) Get(from, to Direction) RoadPath {
	if !from.Valid() || !to.Valid() {
		return RoadPath{}
	}
	return paths[from][to]
}

// GenerateEdgePath returns lane path for travelling along the edge from Position1 to Position2.
// The lane runs at the right side of the road axis and passes through the centre of every cell
// strictly between the endpoints: endpoint cells are node tiles and have their own paths
func GenerateEdgePath(edge Edge, specs RoadSpecs) (RoadPath, error) {
	dir := DirectionBetween(edge.Position1, edge.Position2)
	if !dir.Valid() {
		return RoadPath{}, errors.Wrapf(ErrDiagonalEdge, "Can't generate path for edge %s-%s", edge.Position1, edge.Position2)
	}
	length := edge.Length()
	if length < 2 {
		return RoadPath{}, nil
	}
	offset := rotateCW(dir.Vector(), 1).Mul(specs.laneOffset())
	path := RoadPath{points: make([]r3.Vector, 0, length-1)}
	for k := 1; k < length; k++ {
		centre := edge.Position1.Offset(dir, k).ToWorld(specs.TileSize, specs.RoadwayHeight)
		path.points = append(path.points, r3.Vector{X: centre.X + offset.X, Y: centre.Y, Z: centre.Z + offset.Y})
	}
	return path, nil
}

// Reversed returns the same segment travelled the other way round.
// Resulting edge is not normalized and should not be stored in RoadGraph
func (e Edge) Reversed() Edge {
	return Edge{Position1: e.Position2, Position2: e.Position1, Forward: e.Backward, Backward: e.Forward}
}

// GenerateNodePaths returns lane paths through the tile at given node position.
// Points are built for canonical orientation, rotated by tile rotation and moved to the tile centre
func GenerateNodePaths(node GridPosition, specs RoadSpecs, tile RoadTile) NodePaths {
	var paths NodePaths
	conn, ok := canonicalConnections[tile.TileType]
	if !ok || conn == 0 {
		return paths
	}
	centre := node.ToWorld(specs.TileSize, specs.RoadwayHeight)
	toWorld := func(local []r2.Point) RoadPath {
		path := RoadPath{points: make([]r3.Vector, len(local))}
		for i, pt := range local {
			rotated := rotateCW(pt, tile.Rotation)
			path.points[i] = r3.Vector{X: centre.X + rotated.X, Y: centre.Y, Z: centre.Z + rotated.Y}
		}
		return path
	}
	gen := canonicalGenerator{
		half:    specs.TileSize / 2,
		offset:  specs.laneOffset(),
		samples: specs.VerticesPerCircle,
	}
	for _, from := range Directions {
		if conn&(1<<from) == 0 {
			continue
		}
		for _, to := range Directions {
			if conn&(1<<to) == 0 {
				continue
			}
			var local []r2.Point
			switch {
			case from == to:
				if tile.TileType != TILE_END {
					continue
				}
				local = gen.uTurn(from)
			case to == from.Inverse():
				local = gen.straight(from, to)
			default:
				local = gen.turn(from, to)
			}
			paths[from.RotateCW(tile.Rotation)][to.RotateCW(tile.Rotation)] = toWorld(local)
		}
	}
	return paths
}

// canonicalGenerator samples lane points in tile local frame: origin at tile centre, Y to the north
type canonicalGenerator struct {
	half    float64
	offset  float64
	samples int
}

// entry returns point where lane arriving through side from crosses the tile boundary
func (gen canonicalGenerator) entry(from Direction) r2.Point {
	heading := from.Vector().Mul(-1)
	return from.Vector().Mul(gen.half).Add(rotateCW(heading, 1).Mul(gen.offset))
}

// exit returns point where lane leaving through side to crosses the tile boundary
func (gen canonicalGenerator) exit(to Direction) r2.Point {
	return to.Vector().Mul(gen.half).Add(rotateCW(to.Vector(), 1).Mul(gen.offset))
}

func (gen canonicalGenerator) straight(from, to Direction) []r2.Point {
	return gen.run(gen.entry(from), gen.exit(to), true)
}

// uTurn drives to the tile centre line, crosses to the opposite lane and drives back
func (gen canonicalGenerator) uTurn(side Direction) []r2.Point {
	start := gen.entry(side)
	end := gen.exit(side)
	depth := side.Vector().Mul(gen.half)
	points := gen.run(start, start.Sub(depth), true)
	points = append(points, gen.run(start.Sub(depth), end.Sub(depth), false)...)
	points = append(points, gen.run(end.Sub(depth), end, false)...)
	return points
}

// turn is quarter circle around the tile corner shared by both sides
func (gen canonicalGenerator) turn(from, to Direction) []r2.Point {
	start := gen.entry(from)
	end := gen.exit(to)
	corner := from.Vector().Add(to.Vector()).Mul(gen.half)
	radius := start.Sub(corner).Norm()
	a0 := math.Atan2(start.Y-corner.Y, start.X-corner.X)
	a1 := math.Atan2(end.Y-corner.Y, end.X-corner.X)
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta <= -math.Pi {
		delta += 2 * math.Pi
	}
	n := gen.samples
	points := make([]r2.Point, 0, n+1)
	points = append(points, start)
	for k := 1; k < n; k++ {
		angle := a0 + delta*float64(k)/float64(n)
		points = append(points, corner.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(radius)))
	}
	return append(points, end)
}

// run samples straight line from a to b. The first point is skipped when withStart is false
func (gen canonicalGenerator) run(a, b r2.Point, withStart bool) []r2.Point {
	n := gen.samples
	points := make([]r2.Point, 0, n+1)
	if withStart {
		points = append(points, a)
	}
	for k := 1; k < n; k++ {
		points = append(points, a.Add(b.Sub(a).Mul(float64(k)/float64(n))))
	}
	return append(points, b)
}
