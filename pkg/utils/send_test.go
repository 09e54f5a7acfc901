package utils

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/testhelper"
)

func TestChunk(t *testing.T) {
	c := qt.New(t)

	messages, err := Chunk("```", "```", []string{"a\n", "b\n"})
	c.Assert(err, qt.IsNil)
	testhelper.AssertStringSlicesEqual(t, []string{"```a\nb\n```"}, messages)

	line := strings.Repeat("x", 900) + "\n"
	messages, err = Chunk("", "", []string{line, line, line})
	c.Assert(err, qt.IsNil)
	testhelper.AssertIntsEqual(t, 2, len(messages))
	for _, m := range messages {
		c.Assert(len(m) < maxMessageSize, qt.IsTrue)
	}

	_, err = Chunk("", "", []string{strings.Repeat("x", maxMessageSize)})
	c.Assert(err, qt.IsNotNil)
}
