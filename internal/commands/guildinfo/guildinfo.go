package guildinfo

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

var _ pkg.Command = &Command{}

func Register(deps *commands.Deps) {
	commands.Register([]string{"$guildinfo", "$serverinfo", "$settings"}, New(deps))
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

func (c *Command) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) pkg.CommandResult {
	g := c.deps.Engine.Guild(c.deps.Ctx, m.GuildID)
	reply.Text(s, m.ChannelID, c.deps.Log, describe(g))
	return pkg.CommandResultFullCooldown
}

func describe(g *guilds.Guild) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prefix: **%s**\n", utils.EscapeMarkdown(g.Prefix))
	fmt.Fprintf(&b, "Colors: %d/%d\n", len(g.Colors), g.ColorLimit)
	fmt.Fprintf(&b, "Themes: %d/%d\n", len(g.Themes), g.ThemeLimit)

	if g.WelcomeChannel != nil {
		fmt.Fprintf(&b, "Welcome channel: <#%s>\n", *g.WelcomeChannel)
	} else {
		b.WriteString("Welcome channel: none\n")
	}

	if len(g.DisabledChannels) > 0 {
		mentions := make([]string, len(g.DisabledChannels))
		for i, id := range g.DisabledChannels {
			mentions[i] = "<#" + id + ">"
		}
		fmt.Fprintf(&b, "Disabled in: %s\n", strings.Join(mentions, " "))
	}

	return b.String()
}

func (c *Command) Description() string {
	return c.Command.Description
}
