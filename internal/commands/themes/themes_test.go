package themes

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jessevdk/go-flags"
	"github.com/pajbot/testhelper"

	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
)

func TestSaveOptions(t *testing.T) {
	c := qt.New(t)

	var opts saveOptions
	args, err := flags.ParseArgs(&opts, []string{"--description", "cozy fall colors", "Autumn", "Night"})
	c.Assert(err, qt.IsNil)
	c.Assert(opts.Description, qt.Equals, "cozy fall colors")
	testhelper.AssertStringSlicesEqual(t, []string{"Autumn", "Night"}, args)
	c.Assert(joinName(args), qt.Equals, "Autumn Night")

	opts = saveOptions{}
	args, err = flags.ParseArgs(&opts, []string{"-d", "x", "Mono"})
	c.Assert(err, qt.IsNil)
	c.Assert(opts.Description, qt.Equals, "x")
	testhelper.AssertStringSlicesEqual(t, []string{"Mono"}, args)
}

func TestAppliedSummary(t *testing.T) {
	c := qt.New(t)

	theme := palette.NewTheme("Neon_*", "", []*palette.Color{
		{Name: "Pink", Hex: "#ff00ff"},
		{Name: "Lime", Hex: "#00ff00"},
	})

	c.Assert(appliedSummary(theme, engine.Report{Assigned: 4}), qt.Equals, `Applied **Neon\_\***: 2 colors, 4 members recolored`)
	c.Assert(appliedSummary(theme, engine.Report{Assigned: 1, Failed: 1}), qt.Equals, `Applied **Neon\_\***: 2 colors, 1 members recolored, 1 could not be recolored`)
}
