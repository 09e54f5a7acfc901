package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/time/rate"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
)

// Report summarizes a bulk operation.
type Report struct {
	Assigned int
	Skipped  int
	Failed   int
}

// ColorUser gives the member the color matching query (a random one when query is
// empty), taking away whatever color they held before.
func (e *Engine) ColorUser(ctx context.Context, guildID, userID, query string) (*palette.Color, error) {
	var assigned *palette.Color
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		target := g.FindColor(query, palette.ThresholdAssign)
		if target == nil {
			if len(g.Colors) == 0 {
				return ErrNoAvailableColors
			}
			return colorNotFound(query)
		}

		member, err := e.platform.Member(ctx, g.ID, userID)
		if err != nil {
			return fmt.Errorf("fetching member: %w", err)
		}

		if err := e.unbindMember(ctx, g, member, target); err != nil {
			return err
		}
		if err := e.assign(ctx, g, member, target); err != nil {
			return err
		}

		assigned = target.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

// AddColorFor adds a color and gives it to the member in the same mutation. When the
// color was added but could not be given, the added color is returned with the error.
func (e *Engine) AddColorFor(ctx context.Context, guildID, userID, name, hex string) (*palette.Color, error) {
	var added *palette.Color
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		target, err := g.AddColor(name, hex)
		if err != nil {
			return err
		}
		added = target.Clone()

		member, err := e.platform.Member(ctx, g.ID, userID)
		if err != nil {
			return fmt.Errorf("fetching member: %w", err)
		}
		if err := e.unbindMember(ctx, g, member, target); err != nil {
			return err
		}
		if err := e.assign(ctx, g, member, target); err != nil {
			return err
		}

		added = target.Clone()
		return nil
	})
	return added, err
}

// UncolorUser takes every color the member holds away from them.
func (e *Engine) UncolorUser(ctx context.Context, guildID, userID string) (*palette.Color, error) {
	var removed *palette.Color
	err := e.mutate(ctx, guildID, func(g *guilds.Guild) error {
		member, err := e.platform.Member(ctx, g.ID, userID)
		if err != nil {
			return fmt.Errorf("fetching member: %w", err)
		}

		held := heldColors(g, member)
		if len(held) == 0 {
			return ErrUserMissingColorRole
		}
		removed = held[0].Clone()

		return e.unbindMember(ctx, g, member, nil)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// heldColors returns the colors the member holds, by record or by live role.
func heldColors(g *guilds.Guild, m *platform.Member) []*palette.Color {
	var held []*palette.Color
	for _, c := range g.Colors {
		if c.HasMember(m.ID) || (c.HasRole() && m.HasRole(c.RoleID)) {
			held = append(held, c)
		}
	}
	return held
}

// unbindMember removes every color except keep from the member and deletes roles that
// end up unused.
func (e *Engine) unbindMember(ctx context.Context, g *guilds.Guild, m *platform.Member, keep *palette.Color) error {
	for _, c := range heldColors(g, m) {
		if c == keep {
			continue
		}

		if c.HasRole() && m.HasRole(c.RoleID) {
			err := e.platform.RemoveMemberRole(ctx, g.ID, m.ID, c.RoleID)
			if err != nil && !platform.IsNotFound(err) {
				return fmt.Errorf("removing %s: %w", c.Name, err)
			}
		}
		c.RemoveMember(m.ID)

		if err := e.roles.ReleaseRoleIfUnused(ctx, g.ID, c); err != nil {
			e.log.Warn("Unable to release unused role", "guildID", g.ID, "color", c.Name, "error", err)
		}
	}
	return nil
}

// assign makes sure the member holds c's role and is recorded as holding it.
func (e *Engine) assign(ctx context.Context, g *guilds.Guild, m *platform.Member, c *palette.Color) error {
	roleID, err := e.roles.EnsureRole(ctx, g.ID, c)
	if err != nil {
		return err
	}
	if !m.HasRole(roleID) {
		if err := e.platform.AddMemberRole(ctx, g.ID, m.ID, roleID); err != nil {
			return fmt.Errorf("giving %s: %w", c.Name, err)
		}
	}
	c.AddMember(m.ID)
	return nil
}

// retry runs fn until it succeeds, fails with something other than a rate limit, or
// runs out of attempts. Rate limits pause for the configured cooldown, or longer when
// the platform asks for it.
func (e *Engine) retry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		wait, limited := platform.IsRateLimited(err)
		if !limited || attempt == e.cfg.MaxAttempts {
			return err
		}

		wait = max(wait, e.cfg.RateLimitCooldown)
		e.log.Warn("Rate limited, cooling down", "wait", wait, "attempt", attempt)
		if err := e.sleep(ctx, wait); err != nil {
			return err
		}
	}
	return err
}

func (e *Engine) limiter() *rate.Limiter {
	if e.cfg.Throttle <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(e.cfg.Throttle), 1)
}

// Splash gives every member without a color one, either the fixed color matching
// fixedQuery or round-robin over the palette from a random starting point.
// announce, if set, runs once the operation holds the guild and the request is valid.
func (e *Engine) Splash(ctx context.Context, guildID, fixedQuery string, announce func()) (Report, error) {
	var report Report
	err := e.mutateHeavy(ctx, guildID, "splash", func(g *guilds.Guild) error {
		if len(g.Colors) == 0 {
			return ErrNoAvailableColors
		}

		var fixed *palette.Color
		if fixedQuery != "" {
			c, err := findColor(g, fixedQuery, palette.ThresholdExact)
			if err != nil {
				return err
			}
			fixed = c
		}
		if announce != nil {
			announce()
		}

		members, err := e.platform.Members(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("listing members: %w", err)
		}

		var uncolored []*platform.Member
		for _, m := range members {
			if m.Bot || len(heldColors(g, m)) > 0 {
				report.Skipped++
				continue
			}
			uncolored = append(uncolored, m)
		}

		offset := rand.IntN(len(g.Colors))
		limiter := e.limiter()
		for i, m := range uncolored {
			c := fixed
			if c == nil {
				c = g.Colors[(offset+i)%len(g.Colors)]
			}

			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			err := e.retry(ctx, func() error {
				return e.assign(ctx, g, m, c)
			})
			if err != nil {
				e.log.Warn("Unable to splash member", "guildID", g.ID, "userID", m.ID, "color", c.Name, "error", err)
				report.Failed++
				continue
			}
			report.Assigned++
		}
		return nil
	})
	return report, err
}

// Unsplash deletes every color role and returns how many were deleted. The colors
// themselves are kept. announce is run as in Splash.
func (e *Engine) Unsplash(ctx context.Context, guildID string, announce func()) (int, error) {
	var removed int
	err := e.mutateHeavy(ctx, guildID, "unsplash", func(g *guilds.Guild) error {
		if announce != nil {
			announce()
		}
		limiter := e.limiter()
		for _, c := range g.Colors {
			if !c.HasRole() {
				c.Unbind()
				continue
			}

			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			err := e.retry(ctx, func() error {
				return e.roles.ReleaseRole(ctx, g.ID, c)
			})
			if err != nil {
				e.log.Warn("Unable to delete color role", "guildID", g.ID, "color", c.Name, "error", err)
				continue
			}
			removed++
		}
		return nil
	})
	return removed, err
}
