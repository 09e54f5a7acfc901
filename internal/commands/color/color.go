package color

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/prompt"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

func Register(deps *commands.Deps) {
	commands.Register([]string{"$color", "$colour", "$me"}, New(deps))
	commands.Register([]string{"$uncolor", "$uncolour"}, NewUncolor(deps))
}

var _ pkg.Command = &Command{}

type Command struct {
	basecommand.Command

	deps *commands.Deps
}

func New(deps *commands.Deps) *Command {
	return &Command{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Command) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	query := strings.Join(parts[1:], " ")

	color, err := c.deps.Engine.ColorUser(c.deps.Ctx, m.GuildID, m.Author.ID, query)
	if query != "" && (errors.Is(err, palette.ErrNotFound) || errors.Is(err, engine.ErrNoAvailableColors)) {
		c.offerNewColor(s, m, query)
		return
	}
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Embed(s, m.ChannelID, c.deps.Log, "",
		fmt.Sprintf("%s is now **%s**", m.Author.Mention(), utils.EscapeMarkdown(color.Name)), color.Value())

	return
}

// offerNewColor asks members who may manage roles whether the missing color should be
// created. Everyone else just hears that it does not exist.
func (c *Command) offerNewColor(s *discordgo.Session, m *discordgo.MessageCreate, query string) {
	canManage, err := utils.MemberCanManageRoles(s, m.ChannelID, m.Author.ID)
	if err != nil || !canManage {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, there is no color called **%s**. Use $colors to see what colors are available",
			m.Author.Mention(), utils.EscapeMarkdown(query)))
		return
	}

	if err := palette.ValidateName(query); err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	book := c.deps.Engine.Sessions().Get(m.GuildID).Prompts
	key := prompt.Key{UserID: m.Author.ID, MessageID: m.ID}
	_, replaced := book.Open(key, m.GuildID, m.ChannelID, query, time.Now().Add(c.deps.PromptTimeout))
	for _, p := range replaced {
		closePrompt(s, c.deps, p, "Cancelled, a newer request replaced this one")
	}

	msg := reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, there is no color called **%s** yet. React with %s to add it or %s to cancel",
		m.Author.Mention(), utils.EscapeMarkdown(query), ReactionConfirm, ReactionCancel))
	if msg == nil {
		book.Cancel(m.Author.ID, "")
		return
	}
	if err := book.Attach(key, msg.ID); err != nil {
		logPromptError(c.deps.Log, err)
		return
	}

	for _, emoji := range []string{ReactionConfirm, ReactionCancel} {
		if err := s.MessageReactionAdd(m.ChannelID, msg.ID, emoji); err != nil {
			c.deps.Log.Warn("Unable to add reaction", "channelID", m.ChannelID, "error", err)
		}
	}
}

func (c *Command) Description() string {
	return c.Command.Description
}

type Uncolor struct {
	basecommand.Command

	deps *commands.Deps
}

func NewUncolor(deps *commands.Deps) *Uncolor {
	return &Uncolor{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Uncolor) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	color, err := c.deps.Engine.UncolorUser(c.deps.Ctx, m.GuildID, m.Author.ID)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, removed **%s** from you", m.Author.Mention(), utils.EscapeMarkdown(color.Name)))
	return
}

func (c *Uncolor) Description() string {
	return c.Command.Description
}
