package color

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/prompt"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

const (
	ReactionConfirm = "✅"
	ReactionCancel  = "❌"
)

// closePrompt replaces the prompt message with a final notice.
func closePrompt(s *discordgo.Session, deps *commands.Deps, p prompt.Prompt, text string) {
	if p.MessageID == "" {
		return
	}
	if _, err := s.ChannelMessageEdit(p.ChannelID, p.MessageID, text); err != nil {
		deps.Log.Warn("Unable to edit prompt message", "channelID", p.ChannelID, "messageID", p.MessageID, "error", err)
	}
}

// Expired tells the channel that the prompt timed out.
func Expired(s *discordgo.Session, deps *commands.Deps, p prompt.Prompt) {
	closePrompt(s, deps, p, fmt.Sprintf("<@%s>, the request to add **%s** timed out", p.Key.UserID, utils.EscapeMarkdown(p.Subject)))
}

// HandleReaction advances or cancels the prompt the reaction was added to.
func HandleReaction(deps *commands.Deps, s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	sess, ok := deps.Engine.Sessions().Lookup(r.GuildID)
	if !ok {
		return
	}
	book := sess.Prompts

	switch r.Emoji.Name {
	case ReactionConfirm:
		p, err := book.Confirm(r.UserID, r.MessageID, time.Now().Add(deps.PromptTimeout))
		if err != nil {
			return
		}
		closePrompt(s, deps, p, fmt.Sprintf("<@%s>, type the hex code for **%s**, for example #ff0000", r.UserID, utils.EscapeMarkdown(p.Subject)))

	case ReactionCancel:
		p, err := book.Cancel(r.UserID, r.MessageID)
		if err != nil {
			return
		}
		closePrompt(s, deps, p, fmt.Sprintf("Cancelled adding **%s**", utils.EscapeMarkdown(p.Subject)))
	}
}

// HandlePromptReply consumes m when its author owes a hex code in this channel.
// Invalid hex codes are answered and the prompt keeps waiting.
func HandlePromptReply(deps *commands.Deps, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	sess, ok := deps.Engine.Sessions().Lookup(m.GuildID)
	if !ok || !sess.Prompts.Waiting(m.Author.ID, m.ChannelID) {
		return false
	}

	hex, err := palette.NormalizeHex(m.Content)
	if err != nil {
		reply.Error(s, m, deps.Log, err)
		return true
	}

	p, err := sess.Prompts.Supply(m.Author.ID, m.ChannelID)
	if err != nil {
		return false
	}

	assigned, err := deps.Engine.AddColorFor(deps.Ctx, m.GuildID, m.Author.ID, p.Subject, hex)
	if assigned == nil {
		closePrompt(s, deps, p, fmt.Sprintf("Could not add **%s**", utils.EscapeMarkdown(p.Subject)))
		reply.Error(s, m, deps.Log, err)
		return true
	}
	closePrompt(s, deps, p, fmt.Sprintf("Added **%s** %s", utils.EscapeMarkdown(assigned.Name), assigned.Hex))
	if err != nil {
		reply.Error(s, m, deps.Log, err)
		return true
	}
	reply.Embed(s, m.ChannelID, deps.Log, "",
		fmt.Sprintf("%s is now **%s**", m.Author.Mention(), utils.EscapeMarkdown(assigned.Name)), assigned.Value())

	return true
}

func logPromptError(log *slog.Logger, err error) {
	if err != nil && !errors.Is(err, prompt.ErrNoPrompt) {
		log.Warn("Prompt failed", "error", err)
	}
}
