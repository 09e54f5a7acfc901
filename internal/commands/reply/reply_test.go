package reply

import (
	"errors"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
)

func TestMessage(t *testing.T) {
	c := qt.New(t)

	c.Assert(Message(&engine.HeavyCommandActiveError{Operation: "splash"}), qt.Equals,
		"splash is currently running, try again once it has finished")
	c.Assert(Message(fmt.Errorf("%w: %q", palette.ErrInvalidHex, "blue")), qt.Equals,
		"That is not a valid hex code, try something like #ff0000")
	c.Assert(Message(fmt.Errorf("color %q %w", "teal", palette.ErrNotFound)), qt.Equals, `color "teal" not found`)
	c.Assert(Message(engine.ErrNoAvailableColors), qt.Equals, "there are no colors available")
	c.Assert(Message(engine.ErrInvalidPrefix), qt.Equals, "prefix must be 1 to 10 characters without spaces")
	c.Assert(Message(fmt.Errorf("preset %q %w", "vapor_wave", palette.ErrNotFound)), qt.Equals, `preset "vapor\_wave" not found`)
	c.Assert(Message(fmt.Errorf("giving Red: %w", platform.ErrForbidden)), qt.Matches, "I am missing permissions.*")
	c.Assert(Message(&platform.RateLimitedError{}), qt.Matches, "Discord is rate limiting.*")
	c.Assert(Message(errors.New("boom")), qt.Equals, "Something went wrong, try again later")
}
