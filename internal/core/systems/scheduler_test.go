package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hexcurl/internal/core/observability/log"
)

type recordingSystem struct {
	name     string
	priority Priority
	calls    *[]string
	err      error
}

func (r *recordingSystem) Name() string       { return r.name }
func (r *recordingSystem) Priority() Priority { return r.priority }
func (r *recordingSystem) FixedUpdate(float64) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

const step = 1.0 / 64

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := NewScheduler(step, log.NewNop())
	require.NoError(t, err)
	return s
}

func TestNewSchedulerRejectsBadStep(t *testing.T) {
	_, err := NewScheduler(0, log.NewNop())
	assert.ErrorIs(t, err, ErrInvalidStep)
	_, err = NewScheduler(-1, log.NewNop())
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestSchedulerAccumulatesFixedSteps(t *testing.T) {
	var calls []string
	s := newTestScheduler(t)
	require.NoError(t, s.Register(&recordingSystem{name: "a", priority: PriorityNormal, calls: &calls}))

	n, err := s.Advance(4 * step)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.Advance(step / 2)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Advance(step / 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint64(5), s.Ticks())
	assert.Len(t, calls, 5)

	m, ok := s.Metrics("a")
	require.True(t, ok)
	assert.Equal(t, uint64(5), m.ExecutionCount)
}

func TestSchedulerPriorityOrder(t *testing.T) {
	var calls []string
	s := newTestScheduler(t)
	require.NoError(t, s.Register(&recordingSystem{name: "low", priority: PriorityLow, calls: &calls}))
	require.NoError(t, s.Register(&recordingSystem{name: "high", priority: PriorityHigh, calls: &calls}))
	require.NoError(t, s.Register(&recordingSystem{name: "low2", priority: PriorityLow, calls: &calls}))

	require.NoError(t, s.Tick())
	assert.Equal(t, []string{"high", "low", "low2"}, calls)

	err := s.Register(&recordingSystem{name: "high", calls: &calls})
	assert.ErrorIs(t, err, ErrSystemRegistered)
}

func TestSchedulerPause(t *testing.T) {
	var calls []string
	s := newTestScheduler(t)
	require.NoError(t, s.Register(&recordingSystem{name: "a", calls: &calls}))

	s.Pause()
	assert.Equal(t, StatePaused, s.State())
	n, err := s.Advance(10 * step)
	require.NoError(t, err)
	assert.Zero(t, n)

	s.Resume()
	n, err = s.Advance(step)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSchedulerStopsOnError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	s := newTestScheduler(t)
	require.NoError(t, s.Register(&recordingSystem{name: "fails", priority: PriorityHigh, calls: &calls, err: boom}))
	require.NoError(t, s.Register(&recordingSystem{name: "after", calls: &calls}))

	n, err := s.Advance(3 * step)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, n)
	assert.Equal(t, []string{"fails"}, calls)

	m, _ := s.Metrics("fails")
	assert.Equal(t, uint64(1), m.ErrorCount)
}

func TestSchedulerDropsLongStalls(t *testing.T) {
	var calls []string
	s := newTestScheduler(t)
	require.NoError(t, s.Register(&recordingSystem{name: "a", calls: &calls}))

	n, err := s.Advance(1000 * step)
	require.NoError(t, err)
	assert.Equal(t, maxStepsPerAdvance, n)

	n, err = s.Advance(step / 2)
	require.NoError(t, err)
	assert.Zero(t, n)
}
