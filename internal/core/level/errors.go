package level

import "errors"

var (
	ErrNoLevels          = errors.New("no levels defined")
	ErrLevelNotFound     = errors.New("level not found")
	ErrDuplicateLevel    = errors.New("duplicate level name")
	ErrMissingName       = errors.New("level name is required")
	ErrMissingGoal       = errors.New("goal level needs a goal cell")
	ErrNoStones          = errors.New("goal level needs at least one stone")
	ErrInvalidRadius     = errors.New("hex radius must be positive")
	ErrInvalidCountdown  = errors.New("countdown must not be negative")
	ErrUnknownCompletion = errors.New("unknown completion rule")
)
