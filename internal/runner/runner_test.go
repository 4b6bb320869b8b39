package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hexcurl/internal/config"
	"github.com/zeusync/hexcurl/internal/core/level"
	"github.com/zeusync/hexcurl/internal/core/observability/log"
)

const testLevels = `
levels:
  - name: roll
    hex_radius: 60
    goal: {q: 0, r: 1}
    stones:
      - {start: {q: 0, r: 0}, facing: down, speed: 30}
    tiles:
      - {q: 0, r: 1, type: goal}
  - name: stall
    hex_radius: 60
    goal: {q: 2, r: 0}
    stones:
      - {start: {q: 0, r: 0}, facing: up, speed: 30}
    tiles:
      - {q: 0, r: 0, type: slow_down}
      - {q: 2, r: 0, type: goal}
  - name: paint
    hex_radius: 80
    completion: sweep
    tiles:
      - {q: 0, r: 0, type: slow_down}
      - {q: 1, r: 0, type: turn_clockwise}
      - {q: 2, r: 0, type: wall}
`

func newRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	c, err := level.Load(strings.NewReader(testLevels))
	require.NoError(t, err)
	r, err := New(config.Default(), c, log.NewNop(), opts)
	require.NoError(t, err)
	return r
}

func TestNewValidates(t *testing.T) {
	_, err := New(config.Default(), nil, log.NewNop(), DefaultOptions())
	assert.ErrorIs(t, err, ErrNilCatalog)

	c, err := level.Builtin()
	require.NoError(t, err)
	_, err = New(config.Default(), c, log.NewNop(), Options{})
	assert.ErrorIs(t, err, ErrInvalidTime)

	cfg := config.Default()
	cfg.Preview.StepCap = 0
	_, err = New(cfg, c, log.NewNop(), DefaultOptions())
	assert.ErrorIs(t, err, config.ErrNotPositive)
}

func TestRunAllLevelsInOrder(t *testing.T) {
	r := newRunner(t, Options{MaxSeconds: 20, Workers: 2})

	results, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 3)

	roll, stall, paint := results[0], results[1], results[2]

	assert.Equal(t, "roll", roll.Level)
	assert.True(t, roll.Completed)
	assert.False(t, roll.Stalled)
	assert.Equal(t, 1, roll.Reached)
	assert.Zero(t, roll.Stopped)
	assert.InDelta(t, 0, roll.PreviewDrift, 1e-9)
	assert.InDelta(t, float64(roll.Ticks)/64, roll.Seconds, 1e-12)

	assert.Equal(t, "stall", stall.Level)
	assert.False(t, stall.Completed)
	assert.True(t, stall.Stalled)
	assert.Equal(t, 1, stall.Stopped)
	assert.Zero(t, stall.Reached)
	assert.Less(t, stall.Ticks, uint64(20*64))

	assert.Equal(t, "paint", paint.Level)
	assert.True(t, paint.Completed)
	assert.Equal(t, 2, paint.Repainted)
	assert.Equal(t, uint64(1), paint.Ticks)
}

func TestRunNamedLevels(t *testing.T) {
	r := newRunner(t, DefaultOptions())

	results, err := r.Run(context.Background(), "paint", "roll")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "paint", results[0].Level)
	assert.Equal(t, "roll", results[1].Level)

	_, err = r.Run(context.Background(), "roll", "missing")
	assert.ErrorIs(t, err, level.ErrLevelNotFound)
}

func TestRunBuiltinTutorial(t *testing.T) {
	c, err := level.Builtin()
	require.NoError(t, err)
	r, err := New(config.Default(), c, log.NewNop(), Options{MaxSeconds: 1, Frame: 1.0 / 30})
	require.NoError(t, err)

	results, err := r.Run(context.Background(), "level0")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Completed)
	assert.Equal(t, 1, results[0].Repainted)
}

func TestRunCanceled(t *testing.T) {
	r := newRunner(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
