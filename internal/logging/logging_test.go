package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLevels(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer

	log, closeLog, err := New(Options{Level: "warn", Stderr: &buf})
	c.Assert(err, qt.IsNil)
	defer closeLog()

	log.Info("hidden")
	log.Warn("shown", "guildID", "g1")
	c.Assert(buf.String(), qt.Not(qt.Contains), "hidden")
	c.Assert(buf.String(), qt.Contains, "guildID=g1")

	_, _, err = New(Options{Level: "loud"})
	c.Assert(err, qt.ErrorMatches, `unknown log level "loud"`)
}

func TestFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "vibrant.log")
	var buf bytes.Buffer

	log, closeLog, err := New(Options{File: path, Stderr: &buf})
	c.Assert(err, qt.IsNil)
	log.Info("to both")
	c.Assert(closeLog(), qt.IsNil)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, "to both")
	c.Assert(buf.String(), qt.Contains, "to both")
}
