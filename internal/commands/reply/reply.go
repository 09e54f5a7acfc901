// Package reply turns command outcomes into chat messages.
package reply

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

const Unexpected = "Something went wrong, try again later"

const (
	WorkingEmoji = "⏳"
	DoneEmoji    = "✅"
)

// Message returns what the user is told when a command fails with err.
func Message(err error) string {
	var heavy *engine.HeavyCommandActiveError
	switch {
	case errors.As(err, &heavy):
		return err.Error()
	case errors.Is(err, palette.ErrInvalidHex):
		return "That is not a valid hex code, try something like #ff0000"
	case errors.Is(err, palette.ErrInvalidName),
		errors.Is(err, palette.ErrNotFound),
		errors.Is(err, palette.ErrLimitReached),
		errors.Is(err, palette.ErrSwapSyntax),
		errors.Is(err, engine.ErrNoAvailableColors),
		errors.Is(err, engine.ErrUserMissingColorRole),
		errors.Is(err, engine.ErrMissingPermission),
		errors.Is(err, engine.ErrChannelDisabled),
		errors.Is(err, engine.ErrInvalidPrefix):
		return utils.EscapeMarkdown(err.Error())
	case platform.IsForbidden(err):
		return "I am missing permissions to do that. Make sure I can manage roles and my role is above the color roles"
	case platform.IsNotFound(err):
		return "That member or role no longer exists"
	}
	if _, limited := platform.IsRateLimited(err); limited {
		return "Discord is rate limiting me, try again in a bit"
	}
	return Unexpected
}

// Error tells the author why their command failed. Unexpected errors are logged.
func Error(s *discordgo.Session, m *discordgo.MessageCreate, log *slog.Logger, err error) {
	text := Message(err)
	if text == Unexpected {
		log.Error("Command failed", "guildID", m.GuildID, "channelID", m.ChannelID, "content", m.Content, "error", err)
	}
	Text(s, m.ChannelID, log, fmt.Sprintf("%s, %s", m.Author.Mention(), text))
}

// Text sends text to the channel, logging failures.
func Text(s *discordgo.Session, channelID string, log *slog.Logger, text string) *discordgo.Message {
	msg, err := s.ChannelMessageSend(channelID, text)
	if err != nil {
		log.Warn("Unable to send message", "channelID", channelID, "error", err)
		return nil
	}
	return msg
}

// Embed sends a single colored embed to the channel.
func Embed(s *discordgo.Session, channelID string, log *slog.Logger, title, description string, color int) *discordgo.Message {
	msg, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	})
	if err != nil {
		log.Warn("Unable to send embed", "channelID", channelID, "error", err)
		return nil
	}
	return msg
}

// RequireManageRoles replies and returns false unless the author may manage roles.
func RequireManageRoles(s *discordgo.Session, m *discordgo.MessageCreate, log *slog.Logger) bool {
	ok, err := utils.MemberCanManageRoles(s, m.ChannelID, m.Author.ID)
	if err != nil {
		log.Warn("Unable to read permissions", "guildID", m.GuildID, "userID", m.Author.ID, "error", err)
	}
	if !ok {
		Error(s, m, log, engine.ErrMissingPermission)
		return false
	}
	return true
}

// React adds emoji to the command message.
func React(s *discordgo.Session, m *discordgo.MessageCreate, log *slog.Logger, emoji string) {
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		log.Warn("Unable to add reaction", "channelID", m.ChannelID, "messageID", m.ID, "error", err)
	}
}
