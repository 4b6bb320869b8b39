package tile

import "errors"

var (
	ErrUnknownType   = errors.New("unknown tile type")
	ErrUnknownFacing = errors.New("unknown facing")
	ErrNotSweepable  = errors.New("tile cannot be swept")
	ErrInvalidBrush  = errors.New("tile type cannot be used as a brush")
)
