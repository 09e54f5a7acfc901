package engine

import (
	"context"
	"strings"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
)

const maxPrefixLength = 10

func (e *Engine) SetPrefix(ctx context.Context, guildID, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || len(prefix) > maxPrefixLength || strings.ContainsAny(prefix, " \t\n") {
		return ErrInvalidPrefix
	}

	return e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		g.Prefix = prefix
		return nil
	})
}

// SetWelcomeChannel sets the channel new members are welcomed in. An empty channelID
// turns welcoming off.
func (e *Engine) SetWelcomeChannel(ctx context.Context, guildID, channelID string) error {
	return e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		if channelID == "" {
			g.WelcomeChannel = nil
			return nil
		}
		g.WelcomeChannel = &channelID
		return nil
	})
}

// SetChannelEnabled turns commands on or off in a channel. It returns false when the
// channel already was in that state.
func (e *Engine) SetChannelEnabled(ctx context.Context, guildID, channelID string, enabled bool) (bool, error) {
	var changed bool
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		if enabled {
			changed = g.EnableChannel(channelID)
		} else {
			changed = g.DisableChannel(channelID)
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
	return changed, err
}
