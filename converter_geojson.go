package roadnet

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

func lineCoordinates(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].X(), line[i].Y()}
	}
	return pts2d
}

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(line orb.LineString) string {
	b, err := geojson.NewLineStringGeometry(lineCoordinates(line)).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt orb.Point) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X(), pt.Y()}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// FeatureCollection returns graph snapshot for debug visualisation: a point per node and a line per edge
func (graph *RoadGraph) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, pos := range graph.GetNodes() {
		feature := geojson.NewPointFeature([]float64{float64(pos.X), float64(pos.Y)})
		feature.SetProperty("kind", "node")
		feature.SetProperty("degree", graph.nodes[pos].Degree())
		fc.AddFeature(feature)
	}
	for _, e := range graph.GetEdges() {
		feature := geojson.NewLineStringFeature(lineCoordinates(e.LineString()))
		feature.SetProperty("kind", "edge")
		feature.SetProperty("forward", e.Forward)
		feature.SetProperty("backward", e.Backward)
		fc.AddFeature(feature)
	}
	return fc
}

// GeoJSON returns graph snapshot as GeoJSON FeatureCollection
func (graph *RoadGraph) GeoJSON() ([]byte, error) {
	return graph.FeatureCollection().MarshalJSON()
}

// PathFeature returns lane path projected onto ground plane as GeoJSON feature
func PathFeature(path RoadPath) *geojson.Feature {
	feature := geojson.NewLineStringFeature(lineCoordinates(path.LineString()))
	feature.SetProperty("kind", "lane")
	feature.SetProperty("length", path.Length())
	return feature
}
