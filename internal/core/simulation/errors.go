package simulation

import "errors"

var (
	ErrNotStarted   = errors.New("no level started")
	ErrUnknownTile  = errors.New("no tile at coordinate")
	ErrOutsideGrid  = errors.New("position is outside the grid")
	ErrNilLevel     = errors.New("level is nil")
	ErrInvalidDelta = errors.New("frame delta must not be negative")
)
