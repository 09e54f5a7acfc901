// Package platform is the narrow slice of the Discord API the color engine needs.
package platform

import (
	"context"
)

type Role struct {
	ID       string
	Name     string
	Color    int
	Position int
	Managed  bool
}

type Member struct {
	ID    string
	Bot   bool
	Roles []string
}

// HasRole reports whether the member currently holds roleID.
func (m *Member) HasRole(roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Platform is implemented by Discord and by the fake in platformtest.
// Every method may fail with an error recognized by IsNotFound, IsForbidden or IsRateLimited.
type Platform interface {
	CreateRole(ctx context.Context, guildID, name string, color int) (*Role, error)
	EditRole(ctx context.Context, guildID, roleID, name string, color int) error
	DeleteRole(ctx context.Context, guildID, roleID string) error
	Roles(ctx context.Context, guildID string) ([]*Role, error)

	// BotTopRolePosition returns the position of the highest role the bot holds.
	BotTopRolePosition(ctx context.Context, guildID string) (int, error)
	MoveRole(ctx context.Context, guildID, roleID string, position int) error

	Members(ctx context.Context, guildID string) ([]*Member, error)
	Member(ctx context.Context, guildID, userID string) (*Member, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error
}
