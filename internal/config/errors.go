package config

import "errors"

var (
	ErrNegative      = errors.New("value must not be negative")
	ErrNotPositive   = errors.New("value must be positive")
	ErrTooFewSamples = errors.New("overlap polygon needs at least 3 samples")
)
