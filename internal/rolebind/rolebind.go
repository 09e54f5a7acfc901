// Package rolebind keeps one Discord role in sync with each palette color.
package rolebind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
)

type Binder struct {
	platform platform.Platform
	log      *slog.Logger
}

func New(p platform.Platform, log *slog.Logger) *Binder {
	if log == nil {
		log = slog.Default()
	}
	return &Binder{
		platform: p,
		log:      log.With("component", "rolebind"),
	}
}

// EnsureRole returns the color's role, creating it when it was never made or was
// deleted outside the bot. New roles are moved just below the bot's highest role so
// their color shows; a failed move is logged and ignored.
func (b *Binder) EnsureRole(ctx context.Context, guildID string, c *palette.Color) (string, error) {
	if c.HasRole() {
		exists, err := b.roleExists(ctx, guildID, c.RoleID)
		if err != nil {
			return "", fmt.Errorf("checking role of %s: %w", c.Name, err)
		}
		if exists {
			return c.RoleID, nil
		}
		b.log.Info("Role disappeared, recreating", "guildID", guildID, "color", c.Name, "roleID", c.RoleID)
		c.Unbind()
	}

	role, err := b.platform.CreateRole(ctx, guildID, c.Name, c.Value())
	if err != nil {
		return "", fmt.Errorf("creating role for %s: %w", c.Name, err)
	}
	c.RoleID = role.ID

	b.position(ctx, guildID, role.ID)

	return role.ID, nil
}

func (b *Binder) position(ctx context.Context, guildID, roleID string) {
	top, err := b.platform.BotTopRolePosition(ctx, guildID)
	if err != nil {
		b.log.Warn("Unable to read bot role position", "guildID", guildID, "error", err)
		return
	}

	target := top - 1
	if target < 1 {
		target = 1
	}

	if err := b.platform.MoveRole(ctx, guildID, roleID, target); err != nil {
		b.log.Warn("Unable to position color role", "guildID", guildID, "roleID", roleID, "error", err)
	}
}

func (b *Binder) roleExists(ctx context.Context, guildID, roleID string) (bool, error) {
	roles, err := b.platform.Roles(ctx, guildID)
	if err != nil {
		return false, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// SyncRole pushes the color's name and value to its role. A role that no longer
// exists is forgotten instead of failing.
func (b *Binder) SyncRole(ctx context.Context, guildID string, c *palette.Color) error {
	if !c.HasRole() {
		return nil
	}

	err := b.platform.EditRole(ctx, guildID, c.RoleID, c.Name, c.Value())
	if platform.IsNotFound(err) {
		b.log.Info("Role disappeared before sync", "guildID", guildID, "color", c.Name, "roleID", c.RoleID)
		c.Unbind()
		return nil
	}
	if err != nil {
		return fmt.Errorf("editing role of %s: %w", c.Name, err)
	}
	return nil
}

// ReleaseRoleIfUnused deletes the color's role once nobody holds the color.
func (b *Binder) ReleaseRoleIfUnused(ctx context.Context, guildID string, c *palette.Color) error {
	if len(c.Members) > 0 {
		return nil
	}
	return b.ReleaseRole(ctx, guildID, c)
}

// ReleaseRole deletes the color's role unconditionally. Deleting a role that is
// already gone counts as success, and an unbound color is left alone.
func (b *Binder) ReleaseRole(ctx context.Context, guildID string, c *palette.Color) error {
	if !c.HasRole() {
		return nil
	}

	err := b.platform.DeleteRole(ctx, guildID, c.RoleID)
	if err != nil && !platform.IsNotFound(err) {
		return fmt.Errorf("deleting role of %s: %w", c.Name, err)
	}

	c.Unbind()
	return nil
}
