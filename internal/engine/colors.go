package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
)

// AddColor appends a color to the guild's palette and returns a copy of it with its index.
func (e *Engine) AddColor(ctx context.Context, guildID, name, hex string) (*palette.Color, int, error) {
	var (
		added *palette.Color
		index int
	)
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		c, err := g.AddColor(name, hex)
		if err != nil {
			return err
		}
		added = c.Clone()
		index = g.IndexOf(c)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return added, index, nil
}

func colorNotFound(query string) error {
	return fmt.Errorf("color %q %w", query, palette.ErrNotFound)
}

func themeNotFound(query string) error {
	return fmt.Errorf("theme %q %w", query, palette.ErrNotFound)
}

// findColor is FindColor without the random pick for an empty query.
func findColor(g *guilds.Guild, query string, threshold int) (*palette.Color, error) {
	if strings.TrimSpace(query) == "" {
		return nil, colorNotFound(query)
	}
	c := g.FindColor(query, threshold)
	if c == nil {
		return nil, colorNotFound(query)
	}
	return c, nil
}

// RemoveColor deletes the color's role, then the color itself.
func (e *Engine) RemoveColor(ctx context.Context, guildID, query string) (*palette.Color, error) {
	var removed *palette.Color
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		c, err := findColor(g, query, palette.ThresholdExact)
		if err != nil {
			return err
		}
		removed = c.Clone()

		if err := e.roles.ReleaseRole(ctx, g.ID, c); err != nil {
			return err
		}
		return g.RemoveColor(c)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// RenameColor takes "before|after" and renames the color matching before.
func (e *Engine) RenameColor(ctx context.Context, guildID, input string) (before string, renamed *palette.Color, err error) {
	err = e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		query, name, err := palette.ParseSwap(input)
		if err != nil {
			return err
		}
		c, err := findColor(g, query, palette.ThresholdSwap)
		if err != nil {
			return err
		}
		before = c.Name
		if err := g.RenameColor(c, name); err != nil {
			return err
		}
		renamed = c.Clone()
		return e.roles.SyncRole(ctx, g.ID, c)
	})
	return before, renamed, err
}

// RecolorColor takes "name|hex" and changes the color's value.
func (e *Engine) RecolorColor(ctx context.Context, guildID, input string) (before string, recolored *palette.Color, err error) {
	err = e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		query, hex, err := palette.ParseSwap(input)
		if err != nil {
			return err
		}
		c, err := findColor(g, query, palette.ThresholdSwap)
		if err != nil {
			return err
		}
		before = c.Hex
		if err := g.RecolorColor(c, hex); err != nil {
			return err
		}
		recolored = c.Clone()
		return e.roles.SyncRole(ctx, g.ID, c)
	})
	return before, recolored, err
}

// ClearColors deletes every color whose role could be deleted. Colors whose role
// deletion failed are kept, still bound, and counted in kept.
func (e *Engine) ClearColors(ctx context.Context, guildID string) (removed, kept int, err error) {
	err = e.mutateHeavy(ctx, guildID, "clearcolors", func(g *guilds.Guild) error {
		removed, kept = 0, 0
		for _, c := range slices.Clone(g.Colors) {
			err := e.retry(ctx, func() error {
				return e.roles.ReleaseRole(ctx, g.ID, c)
			})
			if err != nil {
				e.log.Warn("Unable to delete color role", "guildID", g.ID, "color", c.Name, "error", err)
				kept++
				continue
			}
			if err := g.RemoveColor(c); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, kept, err
}
