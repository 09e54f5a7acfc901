package main

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	colorcommands "github.com/Gumbachi/Vibrant-sub000/internal/commands/color"
	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

type handlers struct {
	deps *commands.Deps
}

// normalizePrefix rewrites content using the guild's prefix into the "$" form commands
// are registered under. ok is false for messages that are not commands.
func normalizePrefix(content, prefix string) (normalized string, ok bool) {
	if prefix == "" {
		prefix = guilds.DefaultPrefix
	}
	if !strings.HasPrefix(content, prefix) {
		return "", false
	}
	return guilds.DefaultPrefix + strings.TrimPrefix(content, prefix), true
}

// allowedIn reports whether cmd may run in a channel given whether commands are disabled there.
func allowedIn(cmd pkg.Command, disabled bool) bool {
	if !disabled {
		return true
	}
	if d, ok := cmd.(pkg.DisabledChannelCommand); ok {
		return d.RunsInDisabledChannels()
	}
	return false
}

func (h *handlers) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if colorcommands.HandlePromptReply(h.deps, s, m) {
		return
	}

	g := h.deps.Engine.Guild(h.deps.Ctx, m.GuildID)
	content, ok := normalizePrefix(m.Content, g.Prefix)
	if !ok {
		return
	}

	c, parts := commands.Match(content)
	if c == nil {
		return
	}
	cmd, ok := c.(pkg.Command)
	if !ok {
		return
	}

	id := m.ChannelID + m.Author.ID
	if cmd.HasUserIDCooldown(id) {
		return
	}

	if !allowedIn(cmd, g.ChannelDisabled(m.ChannelID)) {
		reply.Error(s, m, h.deps.Log, engine.ErrChannelDisabled)
		cmd.AddUserIDCooldown(id)
		return
	}

	switch cmd.Run(s, m, parts) {
	case pkg.CommandResultUserCooldown:
		cmd.AddUserIDCooldown(id)
	case pkg.CommandResultGlobalCooldown:
		cmd.AddGlobalCooldown()
	case pkg.CommandResultFullCooldown:
		cmd.AddUserIDCooldown(id)
		cmd.AddGlobalCooldown()
	}
}

func (h *handlers) onMessageReactionAdded(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" {
		return
	}
	colorcommands.HandleReaction(h.deps, s, r)
}

// onMemberJoined colors new members and welcomes them when the guild has a welcome channel.
func (h *handlers) onMemberJoined(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}

	g := h.deps.Engine.Guild(h.deps.Ctx, m.GuildID)
	if g.WelcomeChannel == nil || len(g.Colors) == 0 {
		return
	}
	channelID := *g.WelcomeChannel

	color, err := h.deps.Engine.ColorUser(h.deps.Ctx, m.GuildID, m.User.ID, "")
	if err != nil {
		h.deps.Log.Warn("Unable to color new member", "guildID", m.GuildID, "userID", m.User.ID, "error", err)
		reply.Text(s, channelID, h.deps.Log, fmt.Sprintf("Welcome %s!", m.User.Mention()))
		return
	}

	reply.Embed(s, channelID, h.deps.Log, "",
		fmt.Sprintf("Welcome %s! You have been given **%s**", m.User.Mention(), utils.EscapeMarkdown(color.Name)), color.Value())
}

func (h *handlers) onMemberLeft(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.Member == nil || m.User == nil {
		return
	}
	if err := h.deps.Engine.HandleMemberLeft(h.deps.Ctx, m.GuildID, m.User.ID); err != nil {
		h.deps.Log.Warn("Unable to forget member", "guildID", m.GuildID, "userID", m.User.ID, "error", err)
	}
}

func (h *handlers) onMemberUpdated(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	if m.Member == nil || m.User == nil || m.User.Bot {
		return
	}
	if err := h.deps.Engine.ReconcileMember(h.deps.Ctx, m.GuildID, m.User.ID, m.Roles); err != nil {
		h.deps.Log.Warn("Unable to reconcile member", "guildID", m.GuildID, "userID", m.User.ID, "error", err)
	}
}

func (h *handlers) onRoleDeleted(s *discordgo.Session, r *discordgo.GuildRoleDelete) {
	if err := h.deps.Engine.HandleRoleDeleted(h.deps.Ctx, r.GuildID, r.RoleID); err != nil {
		h.deps.Log.Warn("Unable to unbind deleted role", "guildID", r.GuildID, "roleID", r.RoleID, "error", err)
	}
}

// onGuildDeleted drops the guild's document once the bot was removed. Outages also
// delete guilds from the gateway's view; those are marked unavailable and kept.
func (h *handlers) onGuildDeleted(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	if err := h.deps.Engine.ForgetGuild(h.deps.Ctx, g.ID); err != nil {
		h.deps.Log.Warn("Unable to forget guild", "guildID", g.ID, "error", err)
		return
	}
	h.deps.Log.Info("Removed from guild", "guildID", g.ID)
}
