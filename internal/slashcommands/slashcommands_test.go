package slashcommands

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/testhelper"
)

func TestColorCommandIsRegistered(t *testing.T) {
	c := qt.New(t)

	cmd, ok := registered["color"]
	c.Assert(ok, qt.IsTrue)
	c.Assert(cmd.command.Name, qt.Equals, "color")

	var subcommands []string
	for _, option := range cmd.command.Options {
		subcommands = append(subcommands, option.Name)
	}
	testhelper.AssertStringSlicesEqual(t, []string{"set", "reset", "list"}, subcommands)
}
