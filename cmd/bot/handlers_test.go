package main

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	qt "github.com/frankban/quicktest"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/configure"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
)

func TestNormalizePrefix(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		content    string
		prefix     string
		expected   string
		expectedOK bool
	}{
		{"$color red", "$", "$color red", true},
		{"!color red", "!", "$color red", true},
		{"vb!colors", "vb!", "$colors", true},
		{"$color red", "!", "", false},
		{"hello", "$", "", false},
		{"$color", "", "$color", true},
	}

	for _, test := range tests {
		normalized, ok := normalizePrefix(test.content, test.prefix)
		c.Assert(ok, qt.Equals, test.expectedOK, qt.Commentf("content %q", test.content))
		c.Assert(normalized, qt.Equals, test.expected)
	}
}

type plainCommand struct {
	basecommand.Command
}

func (c *plainCommand) Run(*discordgo.Session, *discordgo.MessageCreate, []string) pkg.CommandResult {
	return pkg.CommandResultNoCooldown
}

func (c *plainCommand) Description() string {
	return ""
}

func TestAllowedInDisabledChannel(t *testing.T) {
	c := qt.New(t)

	plain := &plainCommand{Command: basecommand.New()}
	c.Assert(allowedIn(plain, false), qt.IsTrue)
	c.Assert(allowedIn(plain, true), qt.IsFalse)

	enable := configure.NewChannelToggle(nil, true)
	disable := configure.NewChannelToggle(nil, false)
	c.Assert(allowedIn(enable, true), qt.IsTrue)
	c.Assert(allowedIn(disable, true), qt.IsFalse)
	c.Assert(allowedIn(disable, false), qt.IsTrue)
}
