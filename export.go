package roadnet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	GEOM_FORMAT_WKT     = "wkt"
	GEOM_FORMAT_GEOJSON = "geojson"
)

func prepareLinestring(line orb.LineString, geomFormat string) string {
	if strings.ToLower(geomFormat) == GEOM_FORMAT_GEOJSON {
		return PrepareGeoJSONLinestring(line)
	}
	return PrepareWKTLinestring(line)
}

func preparePoint(pt orb.Point, geomFormat string) string {
	if strings.ToLower(geomFormat) == GEOM_FORMAT_GEOJSON {
		return PrepareGeoJSONPoint(pt)
	}
	return PrepareWKTPoint(pt)
}

// ExportToCSV writes graph to '<name>_nodes.csv' and '<name>_edges.csv'.
// Geometry is in grid cells, either WKT or GeoJSON
func (graph *RoadGraph) ExportToCSV(fname, geomFormat string) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameEdges := fnameParts[0] + "_edges.csv"

	err := writeFile(fnameNodes, func(w io.Writer) error {
		return graph.writeNodesCSV(w, geomFormat)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}
	err = writeFile(fnameEdges, func(w io.Writer) error {
		return graph.writeEdgesCSV(w, geomFormat)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	return nil
}

func writeFile(fname string, write func(w io.Writer) error) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	return write(file)
}

func (graph *RoadGraph) writeNodesCSV(w io.Writer, geomFormat string) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	writer.Comma = ';'

	err := writer.Write([]string{"x", "y", "degree", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, pos := range graph.GetNodes() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", pos.X),
			fmt.Sprintf("%d", pos.Y),
			fmt.Sprintf("%d", graph.nodes[pos].Degree()),
			preparePoint(pos.Point(), geomFormat),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}

func (graph *RoadGraph) writeEdgesCSV(w io.Writer, geomFormat string) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	writer.Comma = ';'

	err := writer.Write([]string{"x1", "y1", "x2", "y2", "forward", "backward", "length", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, e := range graph.GetEdges() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", e.Position1.X),
			fmt.Sprintf("%d", e.Position1.Y),
			fmt.Sprintf("%d", e.Position2.X),
			fmt.Sprintf("%d", e.Position2.Y),
			fmt.Sprintf("%t", e.Forward),
			fmt.Sprintf("%t", e.Backward),
			fmt.Sprintf("%d", e.Length()),
			prepareLinestring(e.LineString(), geomFormat),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}

// LineString returns edge geometry in grid cells
func (e Edge) LineString() orb.LineString {
	return orb.LineString{e.Position1.Point(), e.Position2.Point()}
}

// ExportTilesToCSV writes classification of every road cell
func (world *World) ExportTilesToCSV(fname string) error {
	err := writeFile(fname, world.writeTilesCSV)
	if err != nil {
		return errors.Wrap(err, "Can't export tiles")
	}
	return nil
}

func (world *World) writeTilesCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	writer.Comma = ';'

	err := writer.Write([]string{"x", "y", "chunk_x", "chunk_y", "tile_type", "rotation", "road_category", "is_node"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, chunkPos := range world.Chunks() {
		grid := world.chunks[chunkPos]
		origin := chunkPos.Origin(world.chunkSize)
		for y := 0; y < grid.Size(); y++ {
			for x := 0; x < grid.Size(); x++ {
				tile := *grid.at(GridPosition{X: x, Y: y})
				if !tile.IsRoad() {
					continue
				}
				err = writer.Write([]string{
					fmt.Sprintf("%d", origin.X+x),
					fmt.Sprintf("%d", origin.Y+y),
					fmt.Sprintf("%d", chunkPos.X),
					fmt.Sprintf("%d", chunkPos.Y),
					tile.TileType.String(),
					fmt.Sprintf("%d", tile.Rotation),
					tile.RoadCategory.String(),
					fmt.Sprintf("%t", tile.IsNode()),
				})
				if err != nil {
					return errors.Wrap(err, "Can't write tile")
				}
			}
		}
	}
	return nil
}
