package config

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/testhelper"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := FromEnv(lookupFrom(map[string]string{
		"VIBRANT_TOKEN": "secret",
	}))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Token, qt.Equals, "secret")
	c.Assert(cfg.SQLDriver, qt.Equals, "postgres")
	c.Assert(cfg.DSN, qt.Equals, "postgres:///vibrant?sslmode=disable")
	c.Assert(cfg.DefaultPrefix, qt.Equals, "$")
	c.Assert(cfg.ColorLimit, qt.Equals, 50)
	c.Assert(cfg.ThemeLimit, qt.Equals, 10)
	c.Assert(cfg.BulkDelay, qt.Equals, time.Second)
	c.Assert(cfg.RateLimitCooldown, qt.Equals, 5*time.Second)
	c.Assert(cfg.PromptTimeout, qt.Equals, time.Minute)
	c.Assert(cfg.CacheSize, qt.Equals, 500)
	c.Assert(cfg.SlashCommandGuildIDs, qt.HasLen, 0)
}

func TestOverrides(t *testing.T) {
	c := qt.New(t)

	cfg, err := FromEnv(lookupFrom(map[string]string{
		"VIBRANT_TOKEN":                   "secret",
		"VIBRANT_SQL_DRIVER":              "sqlite",
		"VIBRANT_SLASH_COMMAND_GUILD_IDS": " 1, 2 ,,3",
		"VIBRANT_COLOR_LIMIT":             "25",
		"VIBRANT_BULK_DELAY":              "0",
		"VIBRANT_PROMPT_TIMEOUT":          "10m",
	}))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DSN, qt.Equals, "vibrant.sqlite")
	testhelper.AssertStringSlicesEqual(t, []string{"1", "2", "3"}, cfg.SlashCommandGuildIDs)
	c.Assert(cfg.ColorLimit, qt.Equals, 25)
	c.Assert(cfg.BulkDelay, qt.Equals, time.Duration(0))
	c.Assert(cfg.PromptTimeout, qt.Equals, 10*time.Minute)
}

func TestErrorsAreCollected(t *testing.T) {
	c := qt.New(t)

	_, err := FromEnv(lookupFrom(map[string]string{
		"VIBRANT_SQL_DRIVER":  "mysql",
		"VIBRANT_THEME_LIMIT": "-1",
	}))
	c.Assert(err, qt.ErrorMatches, `(?s).*VIBRANT_TOKEN.*VIBRANT_THEME_LIMIT.*VIBRANT_SQL_DRIVER.*`)
}
