package main

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	colorcommands "github.com/Gumbachi/Vibrant-sub000/internal/commands/color"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
)

// startSweeperRunner expires prompts nobody answered and evicts idle guild sessions.
func startSweeperRunner(ctx context.Context, bot *discordgo.Session, deps *commands.Deps) {
	const interval = 5 * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return

		case now := <-ticker.C:
			expired, evicted := deps.Engine.Sessions().Sweep(now)

			for _, p := range expired {
				colorcommands.Expired(bot, deps, p)
			}

			if len(expired) > 0 || evicted > 0 {
				deps.Log.Debug("Swept sessions", "expiredPrompts", len(expired), "evictedSessions", evicted)
			}
		}
	}
}
