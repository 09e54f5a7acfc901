package engine

import (
	"context"
	"errors"
	"slices"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/session"
)

// The hooks below follow changes made outside the bot. They are skipped while a heavy
// operation runs, since that operation rewrites the same records.

func (e *Engine) reconcile(ctx context.Context, guildID string, fn mutation) error {
	err := e.mutate(ctx, guildID, fn)
	var heavy *session.HeavyCommandActiveError
	if errors.As(err, &heavy) {
		e.log.Debug("Skipping reconciliation", "guildID", guildID, "operation", heavy.Operation)
		return nil
	}
	return err
}

// HandleRoleDeleted forgets a color role that was deleted outside the bot.
func (e *Engine) HandleRoleDeleted(ctx context.Context, guildID, roleID string) error {
	return e.reconcile(ctx, guildID, func(g *guilds.Guild) error {
		c := g.FindColorByRole(roleID)
		if c == nil {
			return errUnchanged
		}
		e.log.Info("Color role deleted externally", "guildID", g.ID, "color", c.Name, "roleID", roleID)
		c.Unbind()
		return nil
	})
}

// ReconcileMember brings the membership records in line with the member's live roles.
// Roles are never deleted here: member updates also arrive for the intermediate states
// of the bot's own role swaps.
func (e *Engine) ReconcileMember(ctx context.Context, guildID, userID string, roles []string) error {
	return e.reconcile(ctx, guildID, func(g *guilds.Guild) error {
		changed := false
		for _, c := range g.Colors {
			holds := c.HasRole() && slices.Contains(roles, c.RoleID)
			switch {
			case holds && !c.HasMember(userID):
				changed = c.AddMember(userID) || changed
			case !holds && c.HasMember(userID):
				changed = c.RemoveMember(userID) || changed
			}
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
}

// HandleMemberLeft drops a member who left the guild from every color and deletes the
// roles nobody holds anymore.
func (e *Engine) HandleMemberLeft(ctx context.Context, guildID, userID string) error {
	return e.reconcile(ctx, guildID, func(g *guilds.Guild) error {
		changed := false
		for _, c := range g.Colors {
			if !c.RemoveMember(userID) {
				continue
			}
			changed = true
			if err := e.roles.ReleaseRoleIfUnused(ctx, g.ID, c); err != nil {
				e.log.Warn("Unable to release unused role", "guildID", g.ID, "color", c.Name, "error", err)
			}
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
}

// ForgetGuild deletes everything stored about a guild the bot was removed from.
func (e *Engine) ForgetGuild(ctx context.Context, guildID string) error {
	e.sessions.Forget(guildID)
	return e.guilds.Delete(ctx, guildID)
}
