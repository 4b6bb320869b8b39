package simulation

import (
	"github.com/zeusync/hexcurl/internal/core/grid"
	"github.com/zeusync/hexcurl/internal/core/level"
	"github.com/zeusync/hexcurl/internal/core/stone"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

// Phase is the lifecycle stage of a running level.
type Phase uint8

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// World is the live state of one level run. It is owned by a Session and only
// touched between ticks.
type World struct {
	Level     *level.Level
	Stones    []stone.Stone
	Tiles     []tile.Tile
	Goal      *physics.Vec2
	Phase     Phase
	Countdown float64
	Tick      uint64

	reached   []bool
	stopped   []bool
	sweepable []int
	tileIndex map[grid.HexCoordinate]int
}

// NewWorld builds a fresh run of l.
func NewWorld(l *level.Level, stoneRadius float64) *World {
	tiles, stones := l.Build(stoneRadius)
	w := &World{
		Level:     l,
		Stones:    stones,
		Tiles:     tiles,
		Countdown: float64(l.Countdown),
		reached:   make([]bool, len(stones)),
		stopped:   make([]bool, len(stones)),
		tileIndex: make(map[grid.HexCoordinate]int, len(tiles)),
	}
	if goal, ok := l.GoalPosition(); ok {
		w.Goal = &goal
	}
	if w.Countdown > 0 {
		w.Phase = PhaseCountdown
	} else {
		w.Phase = PhasePlaying
	}
	for i, t := range tiles {
		w.tileIndex[t.Coord] = i
		if t.Type.Kind.Sweepable() {
			w.sweepable = append(w.sweepable, i)
		}
	}
	return w
}

// TileAt returns the tile at c.
func (w *World) TileAt(c grid.HexCoordinate) (*tile.Tile, bool) {
	i, ok := w.tileIndex[c]
	if !ok {
		return nil, false
	}
	return &w.Tiles[i], true
}

// Reached reports whether stone i has snapped onto the goal.
func (w *World) Reached(i int) bool { return w.reached[i] }

// Snapshot deep-copies the state a preview needs.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Stones: stone.Clone(w.Stones),
		Tiles:  tile.CloneTiles(w.Tiles),
	}
	if w.Goal != nil {
		g := *w.Goal
		s.Goal = &g
	}
	return s
}

// Snapshot is a detached copy of the simulated state.
type Snapshot struct {
	Stones []stone.Stone
	Tiles  []tile.Tile
	Goal   *physics.Vec2
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Stones: stone.Clone(s.Stones),
		Tiles:  tile.CloneTiles(s.Tiles),
	}
	if s.Goal != nil {
		g := *s.Goal
		out.Goal = &g
	}
	return out
}
