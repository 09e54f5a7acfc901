package utils

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestEscapeMarkdown(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		input    string
		expected string
	}{
		{
			input:    "Red",
			expected: "Red",
		},
		{
			input:    "Dark_Red",
			expected: `Dark\_Red`,
		},
		{
			input:    "**bold**",
			expected: `\*\*bold\*\*`,
		},
		{
			input:    "~~gone~~",
			expected: `\~\~gone\~\~`,
		},
		{
			input:    "`code`",
			expected: "ˋcodeˋ",
		},
		{
			input:    `back\slash`,
			expected: `back\\slash`,
		},
	}

	for _, test := range tests {
		c.Run(test.input, func(c *qt.C) {
			c.Assert(EscapeMarkdown(test.input), qt.Equals, test.expected)
		})
	}
}
