package log

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"fatal":   LevelFatal,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetLevelIsShared(t *testing.T) {
	l := New(LevelInfo)
	child := l.Named("child").With(String("k", "v"))

	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, l.GetLevel())
	assert.Equal(t, LevelError, child.GetLevel())
}

func TestProvideNeverNil(t *testing.T) {
	require.NotNil(t, Provide())
}

func TestNopAcceptsEveryField(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("all fields",
			Any("any", struct{}{}),
			Bool("bool", true),
			Duration("duration", time.Second),
			Float64("float", 1.5),
			Int("int", 1),
			Int64("int64", 2),
			String("string", "s"),
			Uint64("uint64", 3),
			Point("point", 1, 2),
			Error(errors.New("boom")),
			ErrorWithKey("cause", errors.New("boom")),
		)
	})
}

func TestProvideConcurrentWithNew(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = New(LevelError)
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Provide())
		}()
	}
	wg.Wait()

	first := Provide()
	_ = New(LevelDebug)
	assert.Same(t, first, Provide())
}
