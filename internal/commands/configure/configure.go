package configure

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

func Register(deps *commands.Deps) {
	commands.Register([]string{"$prefix"}, NewPrefix(deps))
	commands.Register([]string{"$welcome", "$welcomechannel"}, NewWelcome(deps))
	commands.Register([]string{"$disable"}, NewChannelToggle(deps, false))
	commands.Register([]string{"$enable"}, NewChannelToggle(deps, true))
}

type Prefix struct {
	basecommand.Command

	deps *commands.Deps
}

func NewPrefix(deps *commands.Deps) *Prefix {
	return &Prefix{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Prefix) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	const usage = "usage: $prefix <new prefix>"
	res = pkg.CommandResultUserCooldown

	// Cut off trigger
	parts = parts[1:]

	if len(parts) == 0 {
		g := c.deps.Engine.Guild(c.deps.Ctx, m.GuildID)
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, the prefix is **%s**. %s", m.Author.Mention(), utils.EscapeMarkdown(g.Prefix), usage))
		return
	}

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	prefix := strings.Join(parts, " ")
	if err := c.deps.Engine.SetPrefix(c.deps.Ctx, m.GuildID, prefix); err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("The prefix is now **%s**", utils.EscapeMarkdown(prefix)))
	return
}

func (c *Prefix) Description() string {
	return c.Command.Description
}

type Welcome struct {
	basecommand.Command

	deps *commands.Deps
}

func NewWelcome(deps *commands.Deps) *Welcome {
	return &Welcome{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Welcome) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	parts = parts[1:]

	channelID := m.ChannelID
	if len(parts) > 0 {
		channelID = utils.CleanChannelID(parts[0])
		if channelID == "" {
			reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, usage: $welcome [#channel]", m.Author.Mention()))
			return
		}
	}

	g := c.deps.Engine.Guild(c.deps.Ctx, m.GuildID)
	if g.WelcomeChannel != nil && *g.WelcomeChannel == channelID {
		// toggle off
		channelID = ""
	}

	if err := c.deps.Engine.SetWelcomeChannel(c.deps.Ctx, m.GuildID, channelID); err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	if channelID == "" {
		reply.Text(s, m.ChannelID, c.deps.Log, "New members will no longer be welcomed")
		return
	}
	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("New members will be welcomed with a color in <#%s>", channelID))
	return
}

func (c *Welcome) Description() string {
	return c.Command.Description
}

var _ pkg.DisabledChannelCommand = &ChannelToggle{}

type ChannelToggle struct {
	basecommand.Command

	deps   *commands.Deps
	enable bool
}

func NewChannelToggle(deps *commands.Deps, enable bool) *ChannelToggle {
	return &ChannelToggle{
		Command: basecommand.New(),
		deps:    deps,
		enable:  enable,
	}
}

func (c *ChannelToggle) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	changed, err := c.deps.Engine.SetChannelEnabled(c.deps.Ctx, m.GuildID, m.ChannelID, c.enable)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	state := "disabled"
	if c.enable {
		state = "enabled"
	}
	if !changed {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("Commands are already %s in this channel", state))
		return
	}
	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("Commands are now %s in this channel", state))
	return
}

// RunsInDisabledChannels lets $enable through in the channel it re-enables.
func (c *ChannelToggle) RunsInDisabledChannels() bool {
	return c.enable
}

func (c *ChannelToggle) Description() string {
	return c.Command.Description
}
