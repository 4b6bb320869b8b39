// Package grid maps hex cell addresses onto world positions for a flat-top,
// offset-column layout. Odd columns are shifted up by half a row and r grows
// downward on screen.
package grid

import (
	"fmt"
	"math"

	"github.com/zeusync/hexcurl/internal/core/geometry"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
)

// HexCoordinate is the address of a cell.
type HexCoordinate struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

func (h HexCoordinate) String() string { return fmt.Sprintf("%d,%d", h.Q, h.R) }

// Less orders coordinates column first.
func (h HexCoordinate) Less(o HexCoordinate) bool {
	if h.Q != o.Q {
		return h.Q < o.Q
	}
	return h.R < o.R
}

// Grid holds the layout constants derived from the hex radius and the grid size.
type Grid struct {
	HexRadius    float64
	HorizSpacing float64
	VertSpacing  float64
	Cols         int
	Rows         int
	OffsetX      float64
	OffsetY      float64
}

// New builds a grid centered on the world origin.
func New(hexRadius float64, cols, rows int) Grid {
	horiz := hexRadius * 1.5
	vert := hexRadius * math.Sqrt(3)
	return Grid{
		HexRadius:    hexRadius,
		HorizSpacing: horiz,
		VertSpacing:  vert,
		Cols:         cols,
		Rows:         rows,
		OffsetX:      -(float64(cols) * horiz) / 2,
		OffsetY:      -(float64(rows) * vert) / 2,
	}
}

// HexToWorld returns the world position of a cell center.
func (g Grid) HexToWorld(c HexCoordinate) physics.Vec2 {
	x := g.OffsetX + float64(c.Q)*g.HorizSpacing
	y := g.OffsetY + float64(g.Rows-1-c.R)*g.VertSpacing + g.columnShift(c.Q)
	return physics.Vec2{X: x, Y: y}
}

// WorldToHex returns the cell containing p. ok is false when p is outside the
// grid bounds or falls in the gap between cell outlines.
func (g Grid) WorldToHex(p physics.Vec2) (HexCoordinate, bool) {
	relX := p.X - g.OffsetX
	relY := p.Y - g.OffsetY

	q := int(math.Round(relX / g.HorizSpacing))
	if q < 0 || q >= g.Cols {
		return HexCoordinate{}, false
	}

	visualR := int(math.Round((relY - g.columnShift(q)) / g.VertSpacing))
	r := (g.Rows - 1) - visualR
	if r < 0 || r >= g.Rows {
		return HexCoordinate{}, false
	}

	c := HexCoordinate{Q: q, R: r}
	if !geometry.PointInHexagon(p, g.HexToWorld(c), g.HexRadius) {
		return HexCoordinate{}, false
	}
	return c, true
}

func (g Grid) columnShift(q int) float64 {
	if q%2 == 1 {
		return g.VertSpacing / 2
	}
	return 0
}
