package splash

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/jessevdk/go-flags"
	"github.com/pajbot/testhelper"

	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
)

func TestSummary(t *testing.T) {
	c := qt.New(t)
	c.Assert(summary(engine.Report{Assigned: 3, Skipped: 2}), qt.Equals, "Colored 3 members")
	c.Assert(summary(engine.Report{Assigned: 1, Failed: 2}), qt.Equals, "Colored 1 members, 2 could not be colored")
}

func TestOptions(t *testing.T) {
	tests := []struct {
		parts         []string
		expectedColor string
		expectedArgs  []string
	}{
		{
			parts:         []string{},
			expectedColor: "",
			expectedArgs:  []string{},
		},
		{
			parts:         []string{"--color", "Red"},
			expectedColor: "Red",
			expectedArgs:  []string{},
		},
		{
			parts:         []string{"-c", "2"},
			expectedColor: "2",
			expectedArgs:  []string{},
		},
		{
			parts:         []string{"dark", "red"},
			expectedColor: "",
			expectedArgs:  []string{"dark", "red"},
		},
	}

	c := qt.New(t)
	for _, test := range tests {
		var opts options
		args, err := flags.ParseArgs(&opts, test.parts)
		c.Assert(err, qt.IsNil)
		c.Assert(opts.Color, qt.Equals, test.expectedColor)
		if len(test.expectedArgs) == 0 {
			c.Assert(args, qt.HasLen, 0)
			continue
		}
		testhelper.AssertStringSlicesEqual(t, test.expectedArgs, args)
	}
}
