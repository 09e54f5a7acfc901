package platform

import (
	"context"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

const membersPageSize = 1000

var _ Platform = &Discord{}

// Discord implements Platform on top of a discordgo session.
type Discord struct {
	s *discordgo.Session
}

func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{s: s}
}

func (d *Discord) CreateRole(ctx context.Context, guildID, name string, color int) (*Role, error) {
	mentionable := false
	role, err := d.s.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        name,
		Color:       &color,
		Mentionable: &mentionable,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return convertRole(role), nil
}

func (d *Discord) EditRole(ctx context.Context, guildID, roleID, name string, color int) error {
	_, err := d.s.GuildRoleEdit(guildID, roleID, &discordgo.RoleParams{
		Name:  name,
		Color: &color,
	}, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) DeleteRole(ctx context.Context, guildID, roleID string) error {
	return d.s.GuildRoleDelete(guildID, roleID, discordgo.WithContext(ctx))
}

func (d *Discord) Roles(ctx context.Context, guildID string) ([]*Role, error) {
	roles, err := d.s.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	out := make([]*Role, 0, len(roles))
	for _, role := range roles {
		out = append(out, convertRole(role))
	}
	return out, nil
}

func (d *Discord) BotTopRolePosition(ctx context.Context, guildID string) (int, error) {
	if d.s.State == nil || d.s.State.User == nil {
		return 0, fmt.Errorf("session has no user")
	}

	member, err := d.Member(ctx, guildID, d.s.State.User.ID)
	if err != nil {
		return 0, err
	}
	roles, err := d.Roles(ctx, guildID)
	if err != nil {
		return 0, err
	}

	top := 0
	for _, role := range roles {
		if member.HasRole(role.ID) && role.Position > top {
			top = role.Position
		}
	}
	return top, nil
}

func (d *Discord) MoveRole(ctx context.Context, guildID, roleID string, position int) error {
	_, err := d.s.GuildRoleReorder(guildID, []*discordgo.Role{
		{ID: roleID, Position: position},
	}, discordgo.WithContext(ctx))
	return err
}

func (d *Discord) Members(ctx context.Context, guildID string) ([]*Member, error) {
	var out []*Member
	after := ""
	for {
		page, err := d.s.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, m := range page {
			out = append(out, convertMember(m))
		}
		if len(page) < membersPageSize {
			break
		}
		after = page[len(page)-1].User.ID
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *Discord) Member(ctx context.Context, guildID, userID string) (*Member, error) {
	if d.s.State != nil {
		if m, err := d.s.State.Member(guildID, userID); err == nil {
			return convertMember(m), nil
		}
	}

	m, err := d.s.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return convertMember(m), nil
}

func (d *Discord) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return d.s.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (d *Discord) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return d.s.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func convertRole(role *discordgo.Role) *Role {
	return &Role{
		ID:       role.ID,
		Name:     role.Name,
		Color:    role.Color,
		Position: role.Position,
		Managed:  role.Managed,
	}
}

func convertMember(m *discordgo.Member) *Member {
	member := &Member{
		Roles: append([]string{}, m.Roles...),
	}
	if m.User != nil {
		member.ID = m.User.ID
		member.Bot = m.User.Bot
	}
	return member
}
