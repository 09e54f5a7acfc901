package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/pajbot/commandmatcher"

	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/presets"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
)

var (
	c = commandmatcher.New()
)

// Deps is what every command needs to do its job.
type Deps struct {
	// Ctx lives as long as the bot does.
	Ctx context.Context

	Engine        *engine.Engine
	Presets       *presets.Catalog
	PromptTimeout time.Duration
	Log           *slog.Logger
}

func Register(aliases []string, command pkg.Command) {
	c.Register(aliases, command)
}

func Match(text string) (interface{}, []string) {
	return c.Match(text)
}
