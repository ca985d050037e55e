package roadnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(line orb.LineString) string {
	return wkt.MarshalString(line)
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt orb.Point) string {
	return wkt.MarshalString(pt)
}

// PrepareWKTPath returns WKT representation of lane path projected onto ground plane
func PrepareWKTPath(path RoadPath) string {
	return wkt.MarshalString(path.LineString())
}
