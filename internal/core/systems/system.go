package systems

import (
	"time"
)

// System is a game logic processor driven by the fixed-step scheduler.
type System interface {
	Name() string
	Priority() Priority

	// FixedUpdate advances the system by one fixed tick of dt seconds.
	FixedUpdate(dt float64) error
}

// Priority defines execution order. Higher priorities run first.
type Priority uint16

// System priorities
const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// StateIdentity represents the current state of the scheduler
type StateIdentity uint8

const (
	StateRunning StateIdentity = iota
	StatePaused
)

func (s StateIdentity) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
	LastExecutionTime    time.Time
}

func (m *Metrics) record(start time.Time, err error) {
	elapsed := time.Since(start)
	m.ExecutionCount++
	m.TotalExecutionTime += elapsed
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if elapsed > m.MaxExecutionTime {
		m.MaxExecutionTime = elapsed
	}
	m.LastExecutionTime = start
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}
