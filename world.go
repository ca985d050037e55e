package roadnet

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DEFAULT_CHUNK_SIZE = 32
)

type BuildAction uint16

const (
	ACTION_BUILD = BuildAction(iota + 1)
	ACTION_DEMOLISH
)

func (iotaIdx BuildAction) String() string {
	return [...]string{"build", "demolish"}[iotaIdx-1]
}

// Valid returns true for known actions
func (iotaIdx BuildAction) Valid() bool {
	return iotaIdx == ACTION_BUILD || iotaIdx == ACTION_DEMOLISH
}

// BuildRequest is a road stroke committed by the player.
// Consecutive positions must be axis-aligned; a single position is a one-cell stroke
type BuildRequest struct {
	Positions    []GridPosition
	RoadCategory RoadCategory
	Action       BuildAction
	OneWay       bool // traffic only flows in order of Positions
}

// World owns every chunk road grid and the world road graph.
// It is not safe for concurrent use: all mutations happen inside Update
type World struct {
	chunkSize int
	specs     RoadSpecs
	verbose   bool
	workers   int

	chunks    map[ChunkPosition]*RoadGrid
	graph     *RoadGraph
	queue     []BuildRequest
	nodePaths map[GridPosition]NodePaths
}

// NewWorld returns empty world
func NewWorld(options ...func(*World)) (*World, error) {
	world := &World{
		chunkSize: DEFAULT_CHUNK_SIZE,
		specs:     DefaultRoadSpecs(),
		verbose:   false,
		workers:   runtime.NumCPU(),
		chunks:    make(map[ChunkPosition]*RoadGrid),
		graph:     NewRoadGraph(),
		queue:     make([]BuildRequest, 0),
		nodePaths: make(map[GridPosition]NodePaths),
	}
	for _, option := range options {
		option(world)
	}
	if world.chunkSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidRequest, "chunk size must be positive, got %d", world.chunkSize)
	}
	if err := world.specs.Validate(); err != nil {
		return nil, errors.Wrap(err, "Can't create world")
	}
	if world.workers < 1 {
		world.workers = 1
	}
	return world, nil
}

func WithChunkSize(chunkSize int) func(*World) {
	return func(world *World) {
		world.chunkSize = chunkSize
	}
}

func WithRoadSpecs(specs RoadSpecs) func(*World) {
	return func(world *World) {
		world.specs = specs
	}
}

func WithVerbose(verbose bool) func(*World) {
	return func(world *World) {
		world.verbose = verbose
	}
}

func WithWorkers(workers int) func(*World) {
	return func(world *World) {
		world.workers = workers
	}
}

// ChunkSize returns number of cells along chunk side
func (world *World) ChunkSize() int {
	return world.chunkSize
}

// Specs returns lane geometry parameters
func (world *World) Specs() RoadSpecs {
	return world.specs
}

// Graph returns world road graph
func (world *World) Graph() *RoadGraph {
	return world.graph
}

// Chunk returns road grid of the chunk if it has been created
func (world *World) Chunk(pos ChunkPosition) (*RoadGrid, bool) {
	grid, ok := world.chunks[pos]
	return grid, ok
}

// Chunks returns positions of created chunks
func (world *World) Chunks() []ChunkPosition {
	chunks := make([]ChunkPosition, 0, len(world.chunks))
	for pos := range world.chunks {
		chunks = append(chunks, pos)
	}
	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].X != chunks[j].X {
			return chunks[i].X < chunks[j].X
		}
		return chunks[i].Y < chunks[j].Y
	})
	return chunks
}

// Tile returns classification of the cell at world position. Cells of missing chunks are empty
func (world *World) Tile(pos GridPosition) (RoadTile, error) {
	grid, ok := world.chunks[pos.ChunkOf(world.chunkSize)]
	if !ok {
		return emptyTile(), nil
	}
	return grid.Tile(pos.Local(world.chunkSize))
}

// Pending returns number of queued build requests
func (world *World) Pending() int {
	return len(world.queue)
}

// Enqueue validates build request and queues it for the next Update.
// Malformed requests are rejected and nothing is queued
func (world *World) Enqueue(req BuildRequest) error {
	if len(req.Positions) == 0 {
		return errors.Wrap(ErrInvalidRequest, "no positions")
	}
	if !req.Action.Valid() {
		return errors.Wrapf(ErrInvalidRequest, "unknown action %d", req.Action)
	}
	if req.Action == ACTION_BUILD && !req.RoadCategory.Valid() {
		return errors.Wrapf(ErrInvalidRequest, "unknown road category %d", req.RoadCategory)
	}
	for i := 1; i < len(req.Positions); i++ {
		a, b := req.Positions[i-1], req.Positions[i]
		if a.X != b.X && a.Y != b.Y {
			return errors.Wrapf(ErrInvalidRequest, "segment %s-%s is diagonal", a, b)
		}
	}
	positions := make([]GridPosition, len(req.Positions))
	copy(positions, req.Positions)
	req.Positions = positions
	world.queue = append(world.queue, req)
	return nil
}

// Update drains the build queue: applies every request to chunk grids and the road graph,
// synchronises chunk borders, reclassifies touched chunks and seeds graph nodes from them.
// Returns once everything is consistent, so dependent systems never observe partial state
func (world *World) Update() error {
	if len(world.queue) == 0 {
		return nil
	}
	if world.verbose {
		fmt.Printf("Applying %d build request(s)...", len(world.queue))
	}
	st := time.Now()

	dirty := make(map[ChunkPosition]struct{})
	for _, req := range world.queue {
		segments := [][2]GridPosition{{req.Positions[0], req.Positions[0]}}
		if len(req.Positions) > 1 {
			segments = segments[:0]
			for i := 1; i < len(req.Positions); i++ {
				segments = append(segments, [2]GridPosition{req.Positions[i-1], req.Positions[i]})
			}
		}
		for _, seg := range segments {
			err := world.applyGrid(seg[0], seg[1], req, dirty)
			if err != nil {
				world.queue = world.queue[:0]
				return errors.Wrapf(err, "Can't apply %s request", req.Action)
			}
			if req.Action == ACTION_DEMOLISH {
				world.graph.RemoveRect(seg[0], seg[1])
				continue
			}
			err = world.graph.AddEdge(seg[0], seg[1], !req.OneWay)
			if err != nil {
				world.queue = world.queue[:0]
				return errors.Wrapf(err, "Can't apply %s request to road graph", req.Action)
			}
		}
	}
	world.queue = world.queue[:0]

	// Border flags of neighbours depend on touched chunks too
	touched := make([]ChunkPosition, 0, len(dirty))
	for pos := range dirty {
		touched = append(touched, pos)
	}
	for _, pos := range touched {
		for _, dir := range Directions {
			if _, ok := world.chunks[pos.Neighbour(dir)]; ok {
				dirty[pos.Neighbour(dir)] = struct{}{}
			}
		}
	}
	touched = touched[:0]
	for pos := range dirty {
		touched = append(touched, pos)
	}
	for _, pos := range touched {
		world.syncBorders(pos)
	}

	changed := make([][]GridPosition, len(touched))
	var group errgroup.Group
	group.SetLimit(world.workers)
	for i, pos := range touched {
		i, grid := i, world.chunks[pos]
		group.Go(func() error {
			changed[i] = grid.UpdateRoadTypes()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return errors.Wrap(err, "Can't classify road tiles")
	}

	for i, pos := range touched {
		origin := pos.Origin(world.chunkSize)
		for _, local := range changed[i] {
			delete(world.nodePaths, GridPosition{X: origin.X + local.X, Y: origin.Y + local.Y})
		}
		for _, local := range world.chunks[pos].GetNodes() {
			world.graph.AddNode(GridPosition{X: origin.X + local.X, Y: origin.Y + local.Y})
		}
	}
	// Emptied cells are not reported as changed by classification
	for pos := range world.nodePaths {
		if tile, err := world.Tile(pos); err == nil && !tile.IsRoad() {
			delete(world.nodePaths, pos)
		}
	}

	if world.verbose {
		fmt.Printf("Done in %v (chunks: %d, nodes: %d, edges: %d)\n", time.Since(st), len(touched), world.graph.NodesNum(), world.graph.EdgesNum())
	}
	return nil
}

// applyGrid sets or removes road cells of rectangle a-b in every chunk it covers
func (world *World) applyGrid(a, b GridPosition, req BuildRequest, dirty map[ChunkPosition]struct{}) error {
	lo, hi := rectBounds(a, b)
	chunkLo, chunkHi := lo.ChunkOf(world.chunkSize), hi.ChunkOf(world.chunkSize)
	for cy := chunkLo.Y; cy <= chunkHi.Y; cy++ {
		for cx := chunkLo.X; cx <= chunkHi.X; cx++ {
			pos := ChunkPosition{X: cx, Y: cy}
			origin := pos.Origin(world.chunkSize)
			from := GridPosition{X: max(lo.X, origin.X) - origin.X, Y: max(lo.Y, origin.Y) - origin.Y}
			to := GridPosition{X: min(hi.X, origin.X+world.chunkSize-1) - origin.X, Y: min(hi.Y, origin.Y+world.chunkSize-1) - origin.Y}
			grid, ok := world.chunks[pos]
			switch req.Action {
			case ACTION_BUILD:
				if !ok {
					grid = NewRoadGrid(world.chunkSize)
					world.chunks[pos] = grid
				}
				if err := grid.SetRoad(from, to, req.RoadCategory); err != nil {
					return errors.Wrapf(err, "chunk %s", pos)
				}
			case ACTION_DEMOLISH:
				if !ok {
					continue
				}
				if err := grid.RemoveRoad(from, to); err != nil {
					return errors.Wrapf(err, "chunk %s", pos)
				}
			}
			dirty[pos] = struct{}{}
		}
	}
	return nil
}

// sideCell returns local position of index-th cell along chunk side in given direction
func sideCell(size int, dir Direction, index int) GridPosition {
	switch dir {
	case DIRECTION_NORTH:
		return GridPosition{X: index, Y: size - 1}
	case DIRECTION_SOUTH:
		return GridPosition{X: index, Y: 0}
	case DIRECTION_EAST:
		return GridPosition{X: size - 1, Y: index}
	}
	return GridPosition{X: 0, Y: index}
}

// syncBorders recomputes border flags of the chunk from its existing neighbours.
// Flags towards chunks which have not been created are left as they are
func (world *World) syncBorders(pos ChunkPosition) {
	grid, ok := world.chunks[pos]
	if !ok {
		return
	}
	for _, dir := range Directions {
		neighbour, ok := world.chunks[pos.Neighbour(dir)]
		if !ok {
			continue
		}
		for i := 0; i < world.chunkSize; i++ {
			own := grid.at(sideCell(world.chunkSize, dir, i)).IsRoad()
			facing := neighbour.at(sideCell(world.chunkSize, dir.Inverse(), i)).IsRoad()
			grid.borders[dir].Set(i, own && facing)
		}
	}
}

// NodePaths returns lane paths through the tile at world position
func (world *World) NodePaths(pos GridPosition) (NodePaths, error) {
	if paths, ok := world.nodePaths[pos]; ok {
		return paths, nil
	}
	tile, err := world.Tile(pos)
	if err != nil {
		return NodePaths{}, errors.Wrap(err, "Can't generate node paths")
	}
	paths := GenerateNodePaths(pos, world.specs, tile)
	if tile.IsRoad() {
		world.nodePaths[pos] = paths
	}
	return paths, nil
}

// ExtendCarPath appends route to the next pending node: the turn through the current node tile
// (when the car has arrived through one of its sides) followed by the lane along the edge.
// On error the car path is left untouched
func (world *World) ExtendCarPath(cp *CarPath) error {
	if len(cp.pending) == 0 {
		return ErrRouteFinished
	}
	current, target := cp.current, cp.pending[0]
	edge, err := world.graph.GetEdge(current, target)
	if err != nil {
		return errors.Wrapf(err, "Can't extend car path %s-%s", current, target)
	}
	if !edge.Allows(current, target) {
		return errors.Wrapf(ErrNoTraffic, "edge %s-%s", current, target)
	}
	heading := DirectionBetween(current, target)

	var turn RoadPath
	if cp.arrivedFrom.Valid() {
		paths, err := world.NodePaths(current)
		if err != nil {
			return errors.Wrapf(err, "Can't extend car path at %s", current)
		}
		turn = paths.Get(cp.arrivedFrom, heading)
		if turn.Empty() {
			return errors.Wrapf(ErrNoTraffic, "tile at %s does not connect %s to %s", current, cp.arrivedFrom, heading)
		}
	}
	if edge.Position1 != current {
		edge = edge.Reversed()
	}
	lane, err := GenerateEdgePath(edge, world.specs)
	if err != nil {
		return errors.Wrapf(err, "Can't extend car path %s-%s", current, target)
	}

	cp.Join(turn)
	cp.Join(lane)
	cp.popNode()
	cp.current = target
	cp.arrivedFrom = heading.Inverse()
	return nil
}
