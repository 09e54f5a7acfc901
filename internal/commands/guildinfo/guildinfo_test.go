package guildinfo

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
)

func TestDescribe(t *testing.T) {
	c := qt.New(t)

	g := guilds.Default("1")
	c.Assert(describe(g), qt.Equals, "Prefix: **$**\nColors: 0/50\nThemes: 0/10\nWelcome channel: none\n")

	welcome := "42"
	g.Prefix = "v_"
	g.WelcomeChannel = &welcome
	g.DisableChannel("7")
	g.DisableChannel("8")
	_, err := g.AddColor("Red", "#ff0000")
	c.Assert(err, qt.IsNil)

	c.Assert(describe(g), qt.Equals, "Prefix: **v\\_**\nColors: 1/50\nThemes: 0/10\nWelcome channel: <#42>\nDisabled in: <#7> <#8>\n")
}
