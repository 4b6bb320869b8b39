// Package tile models hex cells and the velocity changes they apply to stones
// rolling over them, including the blend between two behaviors while a cell is
// being repainted.
package tile

import (
	"fmt"

	"github.com/zeusync/hexcurl/internal/core/grid"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
)

// Tile is one cell of a level. A nil Drag means the full weight sits on Type.
type Tile struct {
	Coord    grid.HexCoordinate
	Position physics.Vec2
	Type     Type
	Drag     *DragState
}

// SweepResult describes the outcome of one Sweep call.
type SweepResult struct {
	Moved     float64
	Repainted bool
	From      Type
}

// Sweep paints brush onto the tile by amount of drag distance. Once the whole
// budget has moved onto brush the tile's resting type becomes brush.
func (t *Tile) Sweep(brush Type, amount, budget float64) (SweepResult, error) {
	if !t.Type.Kind.Sweepable() {
		return SweepResult{}, fmt.Errorf("%w: %s at %s", ErrNotSweepable, t.Type, t.Coord)
	}
	if !brush.Kind.Brush() {
		return SweepResult{}, fmt.Errorf("%w: %s", ErrInvalidBrush, brush)
	}
	if t.Drag == nil {
		t.Drag = NewDragState(t.Type, budget)
	}

	res := SweepResult{From: t.Type}
	res.Moved = t.Drag.Sweep(brush, amount)
	if settled, ok := t.Drag.Settled(); ok && settled != t.Type {
		t.Type = settled
		res.Repainted = true
	}
	return res, nil
}

// Clone returns a copy with its own DragState.
func (t Tile) Clone() Tile {
	t.Drag = t.Drag.Clone()
	return t
}

// CloneTiles deep-copies a tile slice.
func CloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	for i := range tiles {
		out[i] = tiles[i].Clone()
	}
	return out
}

// each calls fn for every blended type with its weight in [0, 1].
func (t *Tile) each(fn func(Type, float64)) {
	if t.Drag == nil {
		fn(t.Type, 1)
		return
	}
	total := t.Drag.total
	if total <= 0 {
		fn(t.Type, 1)
		return
	}
	for _, s := range t.Drag.shares {
		fn(s.Type, s.Distance/total)
	}
}
