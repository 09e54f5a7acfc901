package palette

import "errors"

var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidHex   = errors.New("invalid hex code")
	ErrNotFound     = errors.New("not found")
	ErrLimitReached = errors.New("limit reached")
	ErrSwapSyntax   = errors.New("expected exactly one | between the old and new value")
)
