package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "VIBRANT_"
)

func envName(v string) string {
	return envPrefix + v
}

type Config struct {
	Token string

	SQLDriver string
	DSN       string

	// Guild IDs in which to create the slash commands
	SlashCommandGuildIDs []string

	DefaultPrefix string
	ColorLimit    int
	ThemeLimit    int

	BulkDelay         time.Duration
	RateLimitCooldown time.Duration
	PromptTimeout     time.Duration

	CacheSize    int
	CacheTTL     time.Duration
	SessionLimit int
	SessionIdle  time.Duration

	LogFile  string
	LogLevel string
}

// Load reads the configuration from the environment after loading envFile.
// A missing .env file is fine unless envFile was asked for explicitly.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds the configuration from lookup, which behaves like os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	e := &env{lookup: lookup}

	c := &Config{
		Token: e.mustString(envName("TOKEN")),

		SQLDriver: e.string(envName("SQL_DRIVER"), "postgres"),

		SlashCommandGuildIDs: cleanList(e.list(envName("SLASH_COMMAND_GUILD_IDS"), []string{})),

		DefaultPrefix: e.string(envName("DEFAULT_PREFIX"), "$"),
		ColorLimit:    e.int(envName("COLOR_LIMIT"), 50),
		ThemeLimit:    e.int(envName("THEME_LIMIT"), 10),

		BulkDelay:         e.duration(envName("BULK_DELAY"), time.Second),
		RateLimitCooldown: e.duration(envName("RATE_LIMIT_COOLDOWN"), 5*time.Second),
		PromptTimeout:     e.duration(envName("PROMPT_TIMEOUT"), time.Minute),

		CacheSize:    e.int(envName("CACHE_SIZE"), 500),
		CacheTTL:     e.duration(envName("CACHE_TTL"), time.Hour),
		SessionLimit: e.int(envName("SESSION_LIMIT"), 1000),
		SessionIdle:  e.duration(envName("SESSION_IDLE"), time.Hour),

		LogFile:  e.string(envName("LOG_FILE"), ""),
		LogLevel: e.string(envName("LOG_LEVEL"), "info"),
	}

	switch c.SQLDriver {
	case "postgres":
		c.DSN = e.string(envName("SQL_DSN"), "postgres:///vibrant?sslmode=disable")
	case "sqlite":
		c.DSN = e.string(envName("SQL_DSN"), "vibrant.sqlite")
	default:
		e.fail(envName("SQL_DRIVER"), fmt.Errorf("unknown driver %q", c.SQLDriver))
	}

	if len(e.errs) > 0 {
		return nil, errors.Join(e.errs...)
	}
	return c, nil
}
