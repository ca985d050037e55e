package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LdDl/roadnet"
	"github.com/pkg/errors"
)

var (
	strokesFileName = flag.String("file", "strokes.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file with road strokes. Each row is 'x1;y1;x2;y2' with optional ';oneway' flag (true/false)")
	out             = flag.String("out", "roads.csv", "Filename of CSV output. E.g.: if file name is 'map.csv' then 3 files will be produced: 'map_nodes.csv', 'map_edges.csv', 'map_tiles.csv'")
	geomFormat      = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	pngFileName     = flag.String("png", "", "Filename of debug PNG render. Empty value disables rendering")
	pixelsPerTile   = flag.Int("ppt", 16, "Pixels per tile in debug PNG render")
	chunkSize       = flag.Int("chunk", roadnet.DEFAULT_CHUNK_SIZE, "Number of cells along chunk side")
	tileSize        = flag.Float64("tile", roadnet.DefaultRoadSpecs().TileSize, "Edge length of a cell in world units")
	roadwayWidth    = flag.Float64("width", roadnet.DefaultRoadSpecs().RoadwayWidth, "Width of one carriageway in world units")
	arcVertices     = flag.Int("arc", roadnet.DefaultRoadSpecs().VerticesPerCircle, "Vertices per quarter turn of lane arcs")
	verbose         = flag.Bool("verbose", false, "Print progress")
)

func main() {

	flag.Parse()

	specs := roadnet.DefaultRoadSpecs()
	specs.TileSize = *tileSize
	specs.RoadwayWidth = *roadwayWidth
	specs.VerticesPerCircle = *arcVertices

	world, err := roadnet.NewWorld(
		roadnet.WithChunkSize(*chunkSize),
		roadnet.WithRoadSpecs(specs),
		roadnet.WithVerbose(*verbose),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	st := time.Now()
	requests, err := readStrokes(*strokesFileName)
	if err != nil {
		fmt.Println(err)
		return
	}
	if *verbose {
		fmt.Printf("Read %d stroke(s) in %v\n", len(requests), time.Since(st))
	}
	for i, req := range requests {
		err = world.Enqueue(req)
		if err != nil {
			fmt.Printf("Warning. Stroke #%d rejected: %s\n", i+1, err.Error())
		}
	}
	err = world.Update()
	if err != nil {
		fmt.Println(err)
		return
	}

	graph := world.Graph()
	fmt.Printf("Chunks: %d | Nodes: %d | Edges: %d\n", len(world.Chunks()), graph.NodesNum(), graph.EdgesNum())

	err = graph.ExportToCSV(*out, *geomFormat)
	if err != nil {
		fmt.Println(err)
		return
	}
	fnamePart := strings.Split(*out, ".csv")
	err = world.ExportTilesToCSV(fnamePart[0] + "_tiles.csv")
	if err != nil {
		fmt.Println(err)
		return
	}

	if *pngFileName != "" {
		st = time.Now()
		err = world.RenderPNG(*pngFileName, *pixelsPerTile)
		if err != nil {
			fmt.Println(err)
			return
		}
		if *verbose {
			fmt.Printf("Rendered '%s' in %v\n", *pngFileName, time.Since(st))
		}
	}
}

// readStrokes parses strokes file into build requests
func readStrokes(fname string) ([]roadnet.BuildRequest, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open strokes file")
	}
	defer file.Close()
	return parseStrokes(file)
}

func parseStrokes(r io.Reader) ([]roadnet.BuildRequest, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	requests := []roadnet.BuildRequest{}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read stroke at line %d", line)
		}
		if len(record) < 4 {
			return nil, errors.Errorf("stroke at line %d must have at least 4 fields, got %d", line, len(record))
		}
		coords := make([]int, 4)
		for i := range coords {
			coords[i], err = strconv.Atoi(strings.TrimSpace(record[i]))
			if err != nil {
				return nil, errors.Wrapf(err, "Can't parse coordinate #%d at line %d", i+1, line)
			}
		}
		oneway := false
		if len(record) > 4 {
			oneway, err = strconv.ParseBool(strings.TrimSpace(record[4]))
			if err != nil {
				return nil, errors.Wrapf(err, "Can't parse oneway flag at line %d", line)
			}
		}
		requests = append(requests, roadnet.BuildRequest{
			Positions:    []roadnet.GridPosition{roadnet.Pos(coords[0], coords[1]), roadnet.Pos(coords[2], coords[3])},
			RoadCategory: roadnet.ROAD_CATEGORY_DEFAULT,
			Action:       roadnet.ACTION_BUILD,
			OneWay:       oneway,
		})
	}
	return requests, nil
}
