package roadnet

import (
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned for grid positions outside of a RoadGrid
	ErrOutOfBounds = errors.New("position is out of grid bounds")
	// ErrDiagonalEdge is returned for edges which are neither horizontal nor vertical
	ErrDiagonalEdge = errors.New("edge is not axis-aligned")
	// ErrNodeNotFound is returned when a node has never been inserted into RoadGraph
	ErrNodeNotFound = errors.New("node not found")
	// ErrEdgeNotFound is returned when there is no edge between two nodes
	ErrEdgeNotFound = errors.New("edge not found")
	// ErrInvalidRequest is returned for malformed build requests
	ErrInvalidRequest = errors.New("invalid build request")
	// ErrInvalidSpecs is returned by RoadSpecs.Validate
	ErrInvalidSpecs = errors.New("invalid road specs")
	// ErrRouteFinished is returned when car path has no pending nodes
	ErrRouteFinished = errors.New("no pending nodes in route")
	// ErrNoTraffic is returned when an edge does not allow travel in requested direction
	ErrNoTraffic = errors.New("edge does not allow travel in this direction")
)
