package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/grid"
	"github.com/zeusync/hexcurl/internal/core/stone"
	"github.com/zeusync/hexcurl/internal/core/systems/physics"
	"github.com/zeusync/hexcurl/internal/core/tile"
)

func testParams(hexRadius float64) Params {
	return NewParams(config.Default().Physics, hexRadius)
}

func TestStepWallBounce(t *testing.T) {
	g := grid.New(60, 4, 4)
	start := g.HexToWorld(grid.HexCoordinate{Q: 1, R: 1})
	wall := tile.Tile{
		Coord:    grid.HexCoordinate{Q: 1, R: 2},
		Position: g.HexToWorld(grid.HexCoordinate{Q: 1, R: 2}),
		Type:     tile.Of(tile.Wall),
	}
	require.Less(t, wall.Position.Y, start.Y)

	stones := []stone.Stone{stone.New(15, start, physics.V(0, -200))}
	tiles := []tile.Tile{wall}
	p := testParams(60)

	bounced := false
	for i := 0; i < 200 && !bounced; i++ {
		before := stones[0].Velocity
		Step(stones, tiles, nil, p)
		after := stones[0].Velocity
		if after.Y > 0 {
			bounced = true
			assert.Less(t, before.Y, 0.0)
			assert.InDelta(t, before.Length(), after.Length(), 1e-3)
			assert.InDelta(t, -before.Y, after.Y, 1e-3)
			assert.Zero(t, after.X)
		}
	}
	require.True(t, bounced)

	// The preview shows the same turn-around.
	fresh := []stone.Stone{stone.New(15, start, physics.V(0, -200))}
	paths := SimulateTrajectories(Snapshot{Stones: fresh, Tiles: tiles}, p, PreviewOptions{StepCap: 120, SampleEvery: 1, MinVelocity: 1})
	require.Len(t, paths, 1)
	lowest := paths[0][0].Y
	for _, pt := range paths[0] {
		lowest = min(lowest, pt.Y)
	}
	assert.Less(t, lowest, start.Y)
	assert.Greater(t, paths[0][len(paths[0])-1].Y, lowest)
}

func TestStepHeadOnCollision(t *testing.T) {
	stones := []stone.Stone{
		stone.New(10, physics.V(0, 0), physics.V(100, 0)),
		stone.New(10, physics.V(20, 0), physics.V(-100, 0)),
	}
	p := testParams(60)
	report := Step(stones, nil, nil, p)

	assert.Equal(t, []Collision{{A: 0, B: 1}}, report.Collisions)
	assert.Equal(t, physics.V(-85, 0), stones[0].Velocity)
	assert.Equal(t, physics.V(85, 0), stones[1].Velocity)
	assert.Equal(t, physics.V(-85*p.Dt, 0), stones[0].Position)
	assert.Equal(t, physics.V(20+85*p.Dt, 0), stones[1].Position)
}

func TestStepGoalSnap(t *testing.T) {
	goal := physics.V(100, -50)
	p := testParams(60)

	stones := []stone.Stone{stone.New(15, physics.V(110, -45), physics.V(-20, 5))}
	report := Step(stones, nil, &goal, p)
	assert.Equal(t, []int{0}, report.Snapped)
	assert.Equal(t, goal, stones[0].Position)
	assert.Equal(t, physics.Zero, stones[0].Velocity)

	fast := []stone.Stone{stone.New(15, physics.V(110, -45), physics.V(-100, 0))}
	report = Step(fast, nil, &goal, p)
	assert.Empty(t, report.Snapped)
	assert.NotEqual(t, goal, fast[0].Position)

	far := []stone.Stone{stone.New(15, physics.V(200, -45), physics.V(-1, 0))}
	report = Step(far, nil, &goal, p)
	assert.Empty(t, report.Snapped)
}

func TestStepGoalSnapOnGoalTile(t *testing.T) {
	goal := physics.V(0, 0)
	tiles := []tile.Tile{{Position: goal, Type: tile.Of(tile.Goal)}}
	stones := []stone.Stone{stone.New(15, physics.V(-12, 8), physics.V(10, -10))}

	Step(stones, tiles, &goal, testParams(60))
	assert.Equal(t, goal, stones[0].Position)
	assert.Equal(t, physics.Zero, stones[0].Velocity)
}

func TestStepWithoutTilesKeepsVelocity(t *testing.T) {
	stones := []stone.Stone{stone.New(15, physics.V(0, 0), physics.V(64, -32))}
	p := testParams(60)
	Step(stones, nil, nil, p)
	assert.Equal(t, physics.V(64, -32), stones[0].Velocity)
	assert.Equal(t, physics.V(1, -0.5), stones[0].Position)
}
