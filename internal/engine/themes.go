package engine

import (
	"context"
	"fmt"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
)

func findTheme(g *guilds.Guild, query string, threshold int) (*palette.Theme, error) {
	t := g.FindTheme(query, threshold)
	if t == nil {
		return nil, themeNotFound(query)
	}
	return t, nil
}

// SaveTheme snapshots the current palette, including who holds which color.
func (e *Engine) SaveTheme(ctx context.Context, guildID, name, description string) (*palette.Theme, error) {
	var saved *palette.Theme
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		t, err := g.AddTheme(name, description)
		if err != nil {
			return err
		}
		saved = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// OverwriteTheme replaces a theme's snapshot with the current palette.
func (e *Engine) OverwriteTheme(ctx context.Context, guildID, query string) (*palette.Theme, error) {
	var overwritten *palette.Theme
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		t, err := findTheme(g, query, palette.ThresholdExact)
		if err != nil {
			return err
		}
		g.OverwriteTheme(t)
		overwritten = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return overwritten, nil
}

// RenameTheme takes "before|after".
func (e *Engine) RenameTheme(ctx context.Context, guildID, input string) (before string, renamed *palette.Theme, err error) {
	err = e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		query, name, err := palette.ParseSwap(input)
		if err != nil {
			return err
		}
		t, err := findTheme(g, query, palette.ThresholdSwap)
		if err != nil {
			return err
		}
		before = t.Name
		if err := g.RenameTheme(t, name); err != nil {
			return err
		}
		renamed = t.Clone()
		return nil
	})
	return before, renamed, err
}

func (e *Engine) RemoveTheme(ctx context.Context, guildID, query string) (*palette.Theme, error) {
	var removed *palette.Theme
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		t, err := findTheme(g, query, palette.ThresholdExact)
		if err != nil {
			return err
		}
		removed = t.Clone()
		return g.RemoveTheme(t)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ImportTheme stores a copy of a theme built elsewhere, such as a bundled preset.
func (e *Engine) ImportTheme(ctx context.Context, guildID string, t *palette.Theme) (*palette.Theme, error) {
	var imported *palette.Theme
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		imported = t.Clone()
		return g.ImportTheme(imported)
	})
	if err != nil {
		return nil, err
	}
	return imported.Clone(), nil
}

type pendingAssignment struct {
	member *platform.Member
	color  *palette.Color
}

// ApplyTheme replaces the palette with the theme's colors. Every current color role is
// deleted; members recorded in the theme who are still in the guild get their color
// back, one color per member.
func (e *Engine) ApplyTheme(ctx context.Context, guildID, query string) (*palette.Theme, Report, error) {
	var (
		applied *palette.Theme
		report  Report
	)
	err := e.mutateHeavy(ctx, guildID, "applytheme", func(g *guilds.Guild) error {
		t, err := findTheme(g, query, palette.ThresholdAssign)
		if err != nil {
			return err
		}
		snapshot := t.Clone()
		applied = snapshot.Clone()

		members, err := e.platform.Members(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}
		present := make(map[string]*platform.Member, len(members))
		for _, m := range members {
			if !m.Bot {
				present[m.ID] = m
			}
		}

		limiter := e.limiter()
		for _, c := range g.Colors {
			if !c.HasRole() {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			err := e.retry(ctx, func() error {
				return e.roles.ReleaseRole(ctx, g.ID, c)
			})
			if err != nil {
				// the palette is kept; roles released so far are saved as unbound
				return fmt.Errorf("deleting role of %s: %w", c.Name, err)
			}
		}

		g.Colors = snapshot.Instantiate()

		// colors sharing a name share the first record's role
		var pending []pendingAssignment
		seen := map[string]bool{}
		for _, sc := range snapshot.Colors {
			target := g.FindColorByName(sc.Name)
			for _, memberID := range sc.Members {
				m, ok := present[memberID]
				if !ok || seen[memberID] {
					continue
				}
				seen[memberID] = true
				pending = append(pending, pendingAssignment{member: m, color: target})
			}
		}

		for _, p := range pending {
			// the member's old color roles were deleted above
			m := &platform.Member{ID: p.member.ID, Bot: p.member.Bot}
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			err := e.retry(ctx, func() error {
				return e.assign(ctx, g, m, p.color)
			})
			if err != nil {
				e.log.Warn("Unable to restore member color", "guildID", g.ID, "userID", m.ID, "color", p.color.Name, "error", err)
				report.Failed++
				continue
			}
			report.Assigned++
		}
		report.Skipped = len(present) - len(pending)
		return nil
	})
	if err != nil {
		return nil, Report{}, err
	}
	return applied, report, nil
}
