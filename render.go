package roadnet

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how tiles, graph and lanes are painted in debug renders
type ColourScheme struct {
	Background color.Color
	Edges      color.Color
	Nodes      color.Color
	Lanes      color.Color
	Tiles      map[TileType]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Edges:      colornames.Crimson,
		Nodes:      colornames.Black,
		Lanes:      colornames.Gold,
		Tiles: map[TileType]color.Color{
			TILE_NOT_CONNECTED: colornames.Lightgray,
			TILE_END:           colornames.Slategray,
			TILE_STRAIGHT:      colornames.Dimgray,
			TILE_CURVE:         colornames.Steelblue,
			TILE_CURVE_FULL:    colornames.Royalblue,
			TILE_T_CROSSING:    colornames.Indigo,
			TILE_CROSSING:      colornames.Darkslateblue,
			TILE_RAMP:          colornames.Brown,
			TILE_UNDEFINED:     colornames.Fuchsia,
		},
	}
}

// Render paints classified tiles, graph edges and lane paths of every graph node and edge.
// North is up; each tile takes pixelsPerTile*pixelsPerTile pixels
func (world *World) Render(pixelsPerTile int, scheme *ColourScheme) (*gg.Context, error) {
	if pixelsPerTile <= 0 {
		return nil, errors.Wrapf(ErrInvalidRequest, "pixels per tile must be positive, got %d", pixelsPerTile)
	}
	chunks := world.Chunks()
	if len(chunks) == 0 {
		return nil, errors.Wrap(ErrInvalidRequest, "nothing to render")
	}
	minChunk, maxChunk := chunks[0], chunks[0]
	for _, c := range chunks {
		minChunk.X, minChunk.Y = min(minChunk.X, c.X), min(minChunk.Y, c.Y)
		maxChunk.X, maxChunk.Y = max(maxChunk.X, c.X), max(maxChunk.Y, c.Y)
	}
	origin := minChunk.Origin(world.chunkSize)
	widthTiles := (maxChunk.X - minChunk.X + 1) * world.chunkSize
	heightTiles := (maxChunk.Y - minChunk.Y + 1) * world.chunkSize
	ppt := float64(pixelsPerTile)

	// Cell coordinates to image pixels, image Y grows downwards
	toPixel := func(x, y float64) (float64, float64) {
		return (x - float64(origin.X)) * ppt, (float64(origin.Y+heightTiles) - y) * ppt
	}

	ctx := gg.NewContext(widthTiles*pixelsPerTile, heightTiles*pixelsPerTile)
	ctx.SetColor(scheme.Background)
	ctx.Clear()

	for _, chunkPos := range chunks {
		grid := world.chunks[chunkPos]
		chunkOrigin := chunkPos.Origin(world.chunkSize)
		for y := 0; y < grid.Size(); y++ {
			for x := 0; x < grid.Size(); x++ {
				tile := grid.at(GridPosition{X: x, Y: y})
				col, ok := scheme.Tiles[tile.TileType]
				if !ok {
					continue
				}
				px, py := toPixel(float64(chunkOrigin.X+x), float64(chunkOrigin.Y+y+1))
				ctx.SetColor(col)
				ctx.DrawRectangle(px, py, ppt, ppt)
				ctx.Fill()
			}
		}
	}

	ctx.SetColor(scheme.Edges)
	ctx.SetLineWidth(ppt / 8)
	for _, e := range world.graph.GetEdges() {
		x1, y1 := toPixel(float64(e.Position1.X)+0.5, float64(e.Position1.Y)+0.5)
		x2, y2 := toPixel(float64(e.Position2.X)+0.5, float64(e.Position2.Y)+0.5)
		ctx.DrawLine(x1, y1, x2, y2)
		ctx.Stroke()
	}
	ctx.SetColor(scheme.Nodes)
	for _, pos := range world.graph.GetNodes() {
		x, y := toPixel(float64(pos.X)+0.5, float64(pos.Y)+0.5)
		ctx.DrawCircle(x, y, ppt/6)
		ctx.Fill()
	}

	lanes, err := world.lanes()
	if err != nil {
		return nil, errors.Wrap(err, "Can't render lanes")
	}
	ctx.SetColor(scheme.Lanes)
	ctx.SetLineWidth(1)
	tileSize := world.specs.TileSize
	for _, lane := range lanes {
		line := lane.LineString()
		for i := 1; i < len(line); i++ {
			x1, y1 := toPixel(line[i-1].X()/tileSize, line[i-1].Y()/tileSize)
			x2, y2 := toPixel(line[i].X()/tileSize, line[i].Y()/tileSize)
			ctx.DrawLine(x1, y1, x2, y2)
		}
		ctx.Stroke()
	}
	return ctx, nil
}

// RenderPNG renders the world with default scheme and saves it as PNG
func (world *World) RenderPNG(fpath string, pixelsPerTile int) error {
	ctx, err := world.Render(pixelsPerTile, DefaultScheme())
	if err != nil {
		return err
	}
	return ctx.SavePNG(fpath)
}

// lanes collects lane paths of every node tile and every edge direction open to traffic
func (world *World) lanes() ([]RoadPath, error) {
	lanes := []RoadPath{}
	for _, pos := range world.graph.GetNodes() {
		paths, err := world.NodePaths(pos)
		if err != nil {
			return nil, err
		}
		for _, from := range Directions {
			for _, to := range Directions {
				if !paths[from][to].Empty() {
					lanes = append(lanes, paths[from][to])
				}
			}
		}
	}
	for _, e := range world.graph.GetEdges() {
		for _, oriented := range []Edge{e, e.Reversed()} {
			if !oriented.Forward {
				continue
			}
			lane, err := GenerateEdgePath(oriented, world.specs)
			if err != nil {
				return nil, err
			}
			if !lane.Empty() {
				lanes = append(lanes, lane)
			}
		}
	}
	return lanes, nil
}
