package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachVisitsEveryItem(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	var sum atomic.Int64
	err := ForEach(context.Background(), items, 3, func(_ context.Context, _ int, v int) error {
		sum.Add(int64(v))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(36), sum.Load())
}

func TestForEachRespectsLimit(t *testing.T) {
	items := make([]int, 32)
	var inFlight, peak atomic.Int32
	err := ForEach(context.Background(), items, 2, func(context.Context, int, int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := ForEach(context.Background(), []int{1, 2, 3}, 1, func(_ context.Context, _ int, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestForEachCanceledParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	err := ForEach(ctx, []int{1, 2, 3}, 0, func(context.Context, int, int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestMapKeepsOrder(t *testing.T) {
	out, err := Map(context.Background(), []int{3, 1, 2}, 0, func(_ context.Context, v int) (int, error) {
		return v * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{30, 10, 20}, out)
}

func TestMapError(t *testing.T) {
	boom := errors.New("boom")
	out, err := Map(context.Background(), []string{"a", "b"}, 2, func(_ context.Context, v string) (string, error) {
		if v == "b" {
			return "", boom
		}
		return v, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}
