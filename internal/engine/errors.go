package engine

import (
	"errors"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/session"
)

var (
	ErrNoAvailableColors    = errors.New("there are no colors available")
	ErrUserMissingColorRole = errors.New("user does not have a color")
	ErrMissingPermission    = errors.New("you need the manage roles permission to do that")
	ErrChannelDisabled      = errors.New("commands are disabled in this channel")
	ErrInvalidPrefix        = errors.New("prefix must be 1 to 10 characters without spaces")
)

type HeavyCommandActiveError = session.HeavyCommandActiveError

// isUserError reports errors raised by validation, before anything was changed.
func isUserError(err error) bool {
	for _, target := range []error{
		palette.ErrInvalidName,
		palette.ErrInvalidHex,
		palette.ErrNotFound,
		palette.ErrLimitReached,
		palette.ErrSwapSyntax,
		ErrNoAvailableColors,
		ErrUserMissingColorRole,
		ErrInvalidPrefix,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
