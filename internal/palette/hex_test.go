package palette

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNormalizeHex(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		input    string
		expected string
	}{
		{input: "#ff0000", expected: "#ff0000"},
		{input: "FF0000", expected: "#ff0000"},
		{input: "#abc", expected: "#aabbcc"},
		{input: " #ABC ", expected: "#aabbcc"},
		{input: "#000000", expected: "#000001"},
		{input: "#000", expected: "#000001"},
		{input: "000", expected: "#000001"},
	}

	for _, test := range tests {
		actual, err := NormalizeHex(test.input)
		c.Assert(err, qt.IsNil, qt.Commentf("input %q", test.input))
		c.Assert(actual, qt.Equals, test.expected)
	}

	for _, bad := range []string{"", "#", "#12", "#1234", "#12345", "#zzzzzz", "#ff00001", "red"} {
		_, err := NormalizeHex(bad)
		c.Assert(err, qt.ErrorIs, ErrInvalidHex, qt.Commentf("input %q", bad))
	}
}

func TestHexValue(t *testing.T) {
	c := qt.New(t)
	c.Assert(HexValue("#ff0000"), qt.Equals, 0xff0000)
	c.Assert(HexValue("#000001"), qt.Equals, 1)
}

func TestParseSwap(t *testing.T) {
	c := qt.New(t)

	before, after, err := ParseSwap("Red | Crimson")
	c.Assert(err, qt.IsNil)
	c.Assert(before, qt.Equals, "Red")
	c.Assert(after, qt.Equals, "Crimson")

	for _, bad := range []string{"Red", "a|b|c", "|b", "a|"} {
		_, _, err := ParseSwap(bad)
		c.Assert(err, qt.ErrorIs, ErrSwapSyntax, qt.Commentf("input %q", bad))
	}
}
