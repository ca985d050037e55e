package roadnet

import (
	"sort"

	"github.com/pkg/errors"
)

// Edge is axis-aligned road segment between two graph nodes.
// Endpoints are normalized so Position1 is lexicographically less than Position2
type Edge struct {
	Position1 GridPosition
	Position2 GridPosition
	Forward   bool // travel from Position1 to Position2 is allowed
	Backward  bool // travel from Position2 to Position1 is allowed
}

type edgeKey struct {
	p1 GridPosition
	p2 GridPosition
}

func newEdgeKey(a, b GridPosition) edgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return edgeKey{p1: a, p2: b}
}

func (e *Edge) key() edgeKey {
	return edgeKey{p1: e.Position1, p2: e.Position2}
}

// Direction returns direction from Position1 to Position2 (always north or east)
func (e Edge) Direction() Direction {
	return DirectionBetween(e.Position1, e.Position2)
}

// Length returns edge length in cells
func (e Edge) Length() int {
	return abs(e.Position2.X-e.Position1.X) + abs(e.Position2.Y-e.Position1.Y)
}

// Bidirectional returns true if travel is allowed both ways
func (e Edge) Bidirectional() bool {
	return e.Forward && e.Backward
}

// Allows returns true if the edge can be travelled from one endpoint to the other
func (e Edge) Allows(from, to GridPosition) bool {
	switch {
	case from == e.Position1 && to == e.Position2:
		return e.Forward
	case from == e.Position2 && to == e.Position1:
		return e.Backward
	}
	return false
}

// Other returns opposite endpoint
func (e Edge) Other(pos GridPosition) GridPosition {
	if pos == e.Position1 {
		return e.Position2
	}
	return e.Position1
}

// containsInterior returns true if pos lies on the edge strictly between its endpoints
func (e Edge) containsInterior(pos GridPosition) bool {
	if pos == e.Position1 || pos == e.Position2 {
		return false
	}
	if e.Position1.X == e.Position2.X {
		return pos.X == e.Position1.X && pos.Y > e.Position1.Y && pos.Y < e.Position2.Y
	}
	return pos.Y == e.Position1.Y && pos.X > e.Position1.X && pos.X < e.Position2.X
}

// Node is graph node with at most one edge per direction
type Node struct {
	Position GridPosition
	edges    [4]*Edge
}

// Degree returns number of edges attached to the node
func (n *Node) Degree() int {
	degree := 0
	for _, e := range n.edges {
		if e != nil {
			degree++
		}
	}
	return degree
}

// RoadGraph is world-scoped sparse graph of road nodes and axis-aligned edges.
// No two stored edges overlap on more than a shared endpoint
type RoadGraph struct {
	nodes map[GridPosition]*Node
	edges map[edgeKey]*Edge
}

// NewRoadGraph returns empty graph
func NewRoadGraph() *RoadGraph {
	return &RoadGraph{
		nodes: make(map[GridPosition]*Node),
		edges: make(map[edgeKey]*Edge),
	}
}

// NodesNum returns number of nodes
func (graph *RoadGraph) NodesNum() int {
	return len(graph.nodes)
}

// EdgesNum returns number of edges
func (graph *RoadGraph) EdgesNum() int {
	return len(graph.edges)
}

// HasNode returns true if node has been inserted
func (graph *RoadGraph) HasNode(pos GridPosition) bool {
	_, ok := graph.nodes[pos]
	return ok
}

// AddNode inserts node. Returns false if the node already existed.
// An edge passing through the new node is split there
func (graph *RoadGraph) AddNode(pos GridPosition) bool {
	if graph.HasNode(pos) {
		return false
	}
	graph.nodes[pos] = &Node{Position: pos}
	for _, e := range graph.sortedEdges() {
		if e.containsInterior(pos) {
			graph.splitEdge(e, []GridPosition{pos})
			break
		}
	}
	return true
}

func (graph *RoadGraph) ensureNode(pos GridPosition) *Node {
	node, ok := graph.nodes[pos]
	if !ok {
		node = &Node{Position: pos}
		graph.nodes[pos] = node
	}
	return node
}

// AddEdge inserts straight segment between a and b.
// Every point where the segment crosses or touches existing edges becomes a node,
// crossed edges are split there and parts overlapping existing edges are merged with them
func (graph *RoadGraph) AddEdge(a, b GridPosition, bidirectional bool) error {
	if a.X != b.X && a.Y != b.Y {
		return errors.Wrapf(ErrDiagonalEdge, "Can't add edge %s-%s", a, b)
	}
	if a == b {
		graph.AddNode(a)
		return nil
	}
	forward, backward := true, bidirectional
	p1, p2 := a, b
	if p2.Less(p1) {
		p1, p2 = p2, p1
		forward, backward = backward, forward
	}
	stroke := Edge{Position1: p1, Position2: p2}
	strokeSegment := newSegment(p1, p2)

	splitPoints := map[GridPosition]struct{}{p1: {}, p2: {}}
	edgeSplits := make(map[edgeKey][]GridPosition)
	existing := graph.sortedEdges()
	for _, e := range existing {
		inter, ok := intersect(strokeSegment, newSegment(e.Position1, e.Position2))
		if !ok {
			continue
		}
		splitPoints[inter.from] = struct{}{}
		splitPoints[inter.to] = struct{}{}
		edgeSplits[e.key()] = append(edgeSplits[e.key()], inter.from, inter.to)
	}
	// Isolated nodes on the stroke split it as well
	for pos := range graph.nodes {
		if stroke.containsInterior(pos) {
			splitPoints[pos] = struct{}{}
		}
	}

	for _, e := range existing {
		if pts, ok := edgeSplits[e.key()]; ok {
			graph.splitEdge(e, pts)
		}
	}

	points := make([]GridPosition, 0, len(splitPoints))
	for pos := range splitPoints {
		points = append(points, pos)
	}
	sortPositions(points)
	for i := 1; i < len(points); i++ {
		graph.mergeEdge(Edge{Position1: points[i-1], Position2: points[i], Forward: forward, Backward: backward})
	}
	return nil
}

// mergeEdge inserts edge or, if the same edge exists, unions traffic flags
func (graph *RoadGraph) mergeEdge(e Edge) {
	if stored, ok := graph.edges[e.key()]; ok {
		stored.Forward = stored.Forward || e.Forward
		stored.Backward = stored.Backward || e.Backward
		return
	}
	graph.insertEdge(&e)
}

func (graph *RoadGraph) insertEdge(e *Edge) {
	dir := e.Direction()
	graph.ensureNode(e.Position1).edges[dir] = e
	graph.ensureNode(e.Position2).edges[dir.Inverse()] = e
	graph.edges[e.key()] = e
}

func (graph *RoadGraph) deleteEdge(e *Edge) {
	dir := e.Direction()
	if node, ok := graph.nodes[e.Position1]; ok && node.edges[dir] == e {
		node.edges[dir] = nil
	}
	if node, ok := graph.nodes[e.Position2]; ok && node.edges[dir.Inverse()] == e {
		node.edges[dir.Inverse()] = nil
	}
	delete(graph.edges, e.key())
}

// splitEdge replaces edge with consecutive parts between its endpoints and given interior points.
// Points outside of the edge interior are ignored
func (graph *RoadGraph) splitEdge(e *Edge, points []GridPosition) {
	cuts := []GridPosition{e.Position1, e.Position2}
	seen := map[GridPosition]struct{}{}
	for _, pt := range points {
		if _, ok := seen[pt]; ok || !e.containsInterior(pt) {
			continue
		}
		seen[pt] = struct{}{}
		cuts = append(cuts, pt)
	}
	if len(cuts) == 2 {
		return
	}
	sortPositions(cuts)
	graph.deleteEdge(e)
	for i := 1; i < len(cuts); i++ {
		graph.insertEdge(&Edge{Position1: cuts[i-1], Position2: cuts[i], Forward: e.Forward, Backward: e.Backward})
	}
}

// RemoveEdge deletes the edge between two nodes. Nodes are kept
func (graph *RoadGraph) RemoveEdge(a, b GridPosition) error {
	e, err := graph.edge(a, b)
	if err != nil {
		return errors.Wrap(err, "Can't remove edge")
	}
	graph.deleteEdge(e)
	return nil
}

// RemoveRect cuts every edge at the cells of rectangle spanned by a and b:
// parts of edges outside of the rectangle are kept (ending at the cell next to it),
// nodes inside of the rectangle are dropped
func (graph *RoadGraph) RemoveRect(a, b GridPosition) {
	lo, hi := rectBounds(a, b)
	inRect := func(pos GridPosition) bool {
		return pos.X >= lo.X && pos.X <= hi.X && pos.Y >= lo.Y && pos.Y <= hi.Y
	}
	for _, e := range graph.sortedEdges() {
		dir := e.Direction()
		// Project edge and rectangle onto the edge axis
		var from, to, cutLo, cutHi int
		var across bool
		if dir == DIRECTION_EAST {
			from, to = e.Position1.X, e.Position2.X
			cutLo, cutHi = max(from, lo.X), min(to, hi.X)
			across = e.Position1.Y >= lo.Y && e.Position1.Y <= hi.Y
		} else {
			from, to = e.Position1.Y, e.Position2.Y
			cutLo, cutHi = max(from, lo.Y), min(to, hi.Y)
			across = e.Position1.X >= lo.X && e.Position1.X <= hi.X
		}
		if !across || cutLo > cutHi {
			continue
		}
		graph.deleteEdge(e)
		if cutLo-1 >= from {
			graph.ensureNode(e.Position1)
			end := e.Position1.Offset(dir, cutLo-1-from)
			if end != e.Position1 {
				graph.insertEdge(&Edge{Position1: e.Position1, Position2: end, Forward: e.Forward, Backward: e.Backward})
			}
		}
		if cutHi+1 <= to {
			graph.ensureNode(e.Position2)
			start := e.Position1.Offset(dir, cutHi+1-from)
			if start != e.Position2 {
				graph.insertEdge(&Edge{Position1: start, Position2: e.Position2, Forward: e.Forward, Backward: e.Backward})
			}
		}
	}
	for pos := range graph.nodes {
		if inRect(pos) {
			delete(graph.nodes, pos)
		}
	}
}

func (graph *RoadGraph) edge(a, b GridPosition) (*Edge, error) {
	if !graph.HasNode(a) {
		return nil, errors.Wrapf(ErrNodeNotFound, "node %s", a)
	}
	if !graph.HasNode(b) {
		return nil, errors.Wrapf(ErrNodeNotFound, "node %s", b)
	}
	e, ok := graph.edges[newEdgeKey(a, b)]
	if !ok {
		return nil, errors.Wrapf(ErrEdgeNotFound, "edge %s-%s", a, b)
	}
	return e, nil
}

// GetEdge returns copy of the edge between two nodes
func (graph *RoadGraph) GetEdge(a, b GridPosition) (Edge, error) {
	e, err := graph.edge(a, b)
	if err != nil {
		return Edge{}, err
	}
	return *e, nil
}

// Connected returns whether an edge allows travel from a to b.
// Both nodes must exist
func (graph *RoadGraph) Connected(a, b GridPosition) (bool, error) {
	e, err := graph.edge(a, b)
	if err != nil {
		if errors.Cause(err) == ErrEdgeNotFound {
			return false, nil
		}
		return false, err
	}
	return e.Allows(a, b), nil
}

// Neighbours returns nodes connected to pos by an edge (in either direction), in north-east-south-west order
func (graph *RoadGraph) Neighbours(pos GridPosition) ([]GridPosition, error) {
	node, ok := graph.nodes[pos]
	if !ok {
		return nil, errors.Wrapf(ErrNodeNotFound, "node %s", pos)
	}
	neighbours := []GridPosition{}
	for _, e := range node.edges {
		if e != nil {
			neighbours = append(neighbours, e.Other(pos))
		}
	}
	return neighbours, nil
}

// GetNodes returns snapshot of node positions in lexicographic order
func (graph *RoadGraph) GetNodes() []GridPosition {
	nodes := make([]GridPosition, 0, len(graph.nodes))
	for pos := range graph.nodes {
		nodes = append(nodes, pos)
	}
	sortPositions(nodes)
	return nodes
}

// GetEdges returns snapshot of edges ordered by endpoints
func (graph *RoadGraph) GetEdges() []Edge {
	sorted := graph.sortedEdges()
	edges := make([]Edge, len(sorted))
	for i, e := range sorted {
		edges[i] = *e
	}
	return edges
}

func (graph *RoadGraph) sortedEdges() []*Edge {
	edges := make([]*Edge, 0, len(graph.edges))
	for _, e := range graph.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Position1 != edges[j].Position1 {
			return edges[i].Position1.Less(edges[j].Position1)
		}
		return edges[i].Position2.Less(edges[j].Position2)
	})
	return edges
}

func sortPositions(positions []GridPosition) {
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
