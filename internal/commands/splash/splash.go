package splash

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jessevdk/go-flags"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
)

func Register(deps *commands.Deps) {
	commands.Register([]string{"$splash"}, New(deps))
	commands.Register([]string{"$unsplash"}, NewUnsplash(deps))
}

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

type options struct {
	Color string `long:"color" short:"c"`
}

func (c *Command) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	var opts options
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	parts = parts[1:]

	args, err := flags.ParseArgs(&opts, parts)
	if err != nil {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, error parsing flags: %s", m.Author.Mention(), err.Error()))
		return
	}
	if opts.Color == "" {
		opts.Color = strings.Join(args, " ")
	}

	reply.React(s, m, c.deps.Log, reply.WorkingEmoji)
	var announcement *discordgo.Message
	report, err := c.deps.Engine.Splash(c.deps.Ctx, m.GuildID, opts.Color, func() {
		announcement = reply.Text(s, m.ChannelID, c.deps.Log, "Splashing colors on everyone without one, this can take a while")
	})
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.React(s, m, c.deps.Log, reply.DoneEmoji)
	finish(s, c.deps, m.ChannelID, announcement, summary(report))

	return pkg.CommandResultGlobalCooldown
}

func (c *Command) Description() string {
	return c.Command.Description
}

func summary(r engine.Report) string {
	text := fmt.Sprintf("Colored %d members", r.Assigned)
	if r.Failed > 0 {
		text += fmt.Sprintf(", %d could not be colored", r.Failed)
	}
	return text
}

// finish edits the announcement into the result, or sends the result when there was no
// announcement to edit.
func finish(s *discordgo.Session, deps *commands.Deps, channelID string, announcement *discordgo.Message, text string) {
	if announcement != nil {
		if _, err := s.ChannelMessageEdit(channelID, announcement.ID, text); err == nil {
			return
		}
	}
	reply.Text(s, channelID, deps.Log, text)
}

type Unsplash struct {
	basecommand.Command

	deps *commands.Deps
}

func NewUnsplash(deps *commands.Deps) *Unsplash {
	return &Unsplash{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Unsplash) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	reply.React(s, m, c.deps.Log, reply.WorkingEmoji)
	var announcement *discordgo.Message
	removed, err := c.deps.Engine.Unsplash(c.deps.Ctx, m.GuildID, func() {
		announcement = reply.Text(s, m.ChannelID, c.deps.Log, "Removing every color role, this can take a while")
	})
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.React(s, m, c.deps.Log, reply.DoneEmoji)
	finish(s, c.deps, m.ChannelID, announcement, fmt.Sprintf("Removed %d color roles", removed))

	return pkg.CommandResultGlobalCooldown
}

func (c *Unsplash) Description() string {
	return c.Command.Description
}
