package fuzzy

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/testhelper"
)

func TestScore(t *testing.T) {
	c := qt.New(t)

	c.Assert(Score("Red", "red"), qt.Equals, 100)
	c.Assert(Score("blu", "Blue"), qt.Equals, 100)
	c.Assert(Score("light blue", "Blue"), qt.Equals, 100)
	c.Assert(Score("blue light", "Light Blue"), qt.Equals, 100)
	c.Assert(Score("", "Blue"), qt.Equals, 0)

	c.Assert(Score("green", "Red") < 80, qt.IsTrue)
	c.Assert(Score("green", "Blue") < 80, qt.IsTrue)
	c.Assert(Score("crimsn", "Crimson") >= 80, qt.IsTrue)
}

func TestBest(t *testing.T) {
	i, score := Best("blu", []string{"Red", "Blue", "Blueberry"})
	testhelper.AssertIntsEqual(t, 1, i)
	testhelper.AssertIntsEqual(t, 100, score)

	i, _ = Best("anything", nil)
	testhelper.AssertIntsEqual(t, -1, i)
}
