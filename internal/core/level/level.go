// Package level loads level layouts and turns them into tiles and stones.
package level

import (
	"bytes"
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/hexcurl/internal/core/grid"
	"github.com/zeusync/hexcurl/internal/core/stone"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

//go:embed levels.yaml
var builtinLevels []byte

// Completion is the win condition of a level.
type Completion string

const (
	// CompleteOnGoal finishes once every stone rests on the goal.
	CompleteOnGoal Completion = "goal"
	// CompleteOnSweep finishes once every sweepable tile has been painted
	// MaintainSpeed.
	CompleteOnSweep Completion = "sweep"
)

type document struct {
	Levels []definition `yaml:"levels"`
}

type definition struct {
	Name       string              `yaml:"name"`
	HexRadius  float64             `yaml:"hex_radius"`
	Countdown  int                 `yaml:"countdown"`
	Completion Completion          `yaml:"completion"`
	Goal       *grid.HexCoordinate `yaml:"goal"`
	Stones     []stoneDefinition   `yaml:"stones"`
	Tiles      []tileDefinition    `yaml:"tiles"`
}

type stoneDefinition struct {
	Start  grid.HexCoordinate `yaml:"start"`
	Facing string             `yaml:"facing"`
	Speed  float64            `yaml:"speed"`
}

type tileDefinition struct {
	Q    int    `yaml:"q"`
	R    int    `yaml:"r"`
	Type string `yaml:"type"`
}

// StoneStart places a stone at the start of a level.
type StoneStart struct {
	Start  grid.HexCoordinate
	Facing tile.Facing
	Speed  float64
}

// Velocity is the launch velocity.
func (s StoneStart) Velocity() physics.Vec2 { return s.Facing.Vector().Scale(s.Speed) }

// Placement is a tile type at a cell.
type Placement struct {
	Coord grid.HexCoordinate
	Type  tile.Type
}

// Level is a validated layout. Tiles are unique per cell and sorted by (q, r).
type Level struct {
	Name       string
	HexRadius  float64
	Countdown  int
	Completion Completion
	Goal       *grid.HexCoordinate
	Stones     []StoneStart
	Tiles      []Placement
	Grid       grid.Grid
}

// GoalPosition returns the world position of the goal cell.
func (l *Level) GoalPosition() (physics.Vec2, bool) {
	if l.Goal == nil {
		return physics.Vec2{}, false
	}
	return l.Grid.HexToWorld(*l.Goal), true
}

// Build creates fresh tiles and stones for a run of the level.
func (l *Level) Build(stoneRadius float64) ([]tile.Tile, []stone.Stone) {
	tiles := make([]tile.Tile, len(l.Tiles))
	for i, p := range l.Tiles {
		tiles[i] = tile.Tile{
			Coord:    p.Coord,
			Position: l.Grid.HexToWorld(p.Coord),
			Type:     p.Type,
		}
	}
	stones := make([]stone.Stone, len(l.Stones))
	for i, s := range l.Stones {
		stones[i] = stone.New(stoneRadius, l.Grid.HexToWorld(s.Start), s.Velocity())
	}
	return tiles, stones
}

func (d definition) build() (Level, error) {
	if d.Name == "" {
		return Level{}, ErrMissingName
	}
	if !(d.HexRadius > 0) {
		return Level{}, fmt.Errorf("%w: %v", ErrInvalidRadius, d.HexRadius)
	}
	if d.Countdown < 0 {
		return Level{}, fmt.Errorf("%w: %d", ErrInvalidCountdown, d.Countdown)
	}

	lvl := Level{
		Name:       d.Name,
		HexRadius:  d.HexRadius,
		Countdown:  d.Countdown,
		Completion: d.Completion,
		Goal:       d.Goal,
	}
	switch lvl.Completion {
	case "":
		lvl.Completion = CompleteOnGoal
	case CompleteOnGoal, CompleteOnSweep:
	default:
		return Level{}, fmt.Errorf("%w: %q", ErrUnknownCompletion, d.Completion)
	}
	if lvl.Completion == CompleteOnGoal {
		if lvl.Goal == nil {
			return Level{}, ErrMissingGoal
		}
		if len(d.Stones) == 0 {
			return Level{}, ErrNoStones
		}
	}

	for i, s := range d.Stones {
		facing, err := tile.ParseFacing(s.Facing)
		if err != nil {
			return Level{}, fmt.Errorf("stone %d: %w", i, err)
		}
		lvl.Stones = append(lvl.Stones, StoneStart{Start: s.Start, Facing: facing, Speed: s.Speed})
	}

	byCoord := make(map[grid.HexCoordinate]tile.Type, len(d.Tiles))
	for _, t := range d.Tiles {
		typ, err := tile.ParseType(t.Type)
		if err != nil {
			return Level{}, fmt.Errorf("tile %d,%d: %w", t.Q, t.R, err)
		}
		byCoord[grid.HexCoordinate{Q: t.Q, R: t.R}] = typ
	}
	for c, typ := range byCoord {
		lvl.Tiles = append(lvl.Tiles, Placement{Coord: c, Type: typ})
	}
	slices.SortFunc(lvl.Tiles, func(a, b Placement) int {
		return cmp.Or(cmp.Compare(a.Coord.Q, b.Coord.Q), cmp.Compare(a.Coord.R, b.Coord.R))
	})

	cols, rows := lvl.bounds()
	lvl.Grid = grid.New(lvl.HexRadius, cols, rows)
	return lvl, nil
}

// bounds sizes the grid so every referenced cell with non-negative
// coordinates fits.
func (l *Level) bounds() (cols, rows int) {
	cols, rows = 1, 1
	grow := func(c grid.HexCoordinate) {
		cols = max(cols, c.Q+1)
		rows = max(rows, c.R+1)
	}
	for _, t := range l.Tiles {
		grow(t.Coord)
	}
	for _, s := range l.Stones {
		grow(s.Start)
	}
	if l.Goal != nil {
		grow(*l.Goal)
	}
	return cols, rows
}

// Catalog is an ordered set of levels.
type Catalog struct {
	levels []Level
	index  map[string]int
}

// Load parses a level document.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoLevels
		}
		return nil, fmt.Errorf("decode levels: %w", err)
	}
	if len(doc.Levels) == 0 {
		return nil, ErrNoLevels
	}

	c := &Catalog{index: make(map[string]int, len(doc.Levels))}
	for _, d := range doc.Levels {
		lvl, err := d.build()
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", d.Name, err)
		}
		if _, dup := c.index[lvl.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLevel, lvl.Name)
		}
		c.index[lvl.Name] = len(c.levels)
		c.levels = append(c.levels, lvl)
	}
	return c, nil
}

// LoadFile is Load on a file path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open levels: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Builtin returns the levels shipped with the binary.
func Builtin() (*Catalog, error) {
	return Load(bytes.NewReader(builtinLevels))
}

// Get returns the named level.
func (c *Catalog) Get(name string) (*Level, error) {
	i, ok := c.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, name)
	}
	return &c.levels[i], nil
}

// Next returns the level after name, if any.
func (c *Catalog) Next(name string) (*Level, bool) {
	i, ok := c.index[name]
	if !ok || i+1 >= len(c.levels) {
		return nil, false
	}
	return &c.levels[i+1], true
}

// Names lists the levels in order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.levels))
	for i := range c.levels {
		names[i] = c.levels[i].Name
	}
	return names
}

func (c *Catalog) Len() int { return len(c.levels) }
