package colors

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

func Register(deps *commands.Deps) {
	commands.Register([]string{"$colors", "$colours", "$c"}, New(deps))
	commands.Register([]string{"$addcolor", "$addcolour", "$add"}, NewAdd(deps))
	commands.Register([]string{"$removecolor", "$removecolour", "$remove"}, NewRemove(deps))
	commands.Register([]string{"$rename", "$renamecolor"}, NewRename(deps))
	commands.Register([]string{"$recolor", "$recolour"}, NewRecolor(deps))
	commands.Register([]string{"$clearcolors", "$clearcolours"}, NewClear(deps))
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

	g := c.deps.Engine.Guild(c.deps.Ctx, m.GuildID)
	if len(g.Colors) == 0 {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, there are no colors yet. Add one with %saddcolor #ff0000 Red", m.Author.Mention(), g.Prefix))
		return
	}

	header := fmt.Sprintf("**Colors** (%d/%d)\n", len(g.Colors), g.ColorLimit)
	if err := utils.SendChunks(s, m.ChannelID, header, "", utils.ColorLines(g.Colors)); err != nil {
		c.deps.Log.Warn("Unable to send color list", "guildID", m.GuildID, "error", err)
	}
	return
}

func (c *Command) Description() string {
	return c.Command.Description
}

type Add struct {
	basecommand.Command

	deps *commands.Deps
}

func NewAdd(deps *commands.Deps) *Add {
	return &Add{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Add) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	const usage = "usage: $addcolor #hexcode [name]"
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	parts = parts[1:]
	if len(parts) == 0 {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, %s", m.Author.Mention(), usage))
		return
	}

	added, index, err := c.deps.Engine.AddColor(c.deps.Ctx, m.GuildID, joinName(parts[1:]), parts[0])
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Embed(s, m.ChannelID, c.deps.Log, "",
		fmt.Sprintf("Added **%s** %s as color `%d`", utils.EscapeMarkdown(added.Name), added.Hex, index), added.Value())
	return
}

func (c *Add) Description() string {
	return c.Command.Description
}

type Remove struct {
	basecommand.Command

	deps *commands.Deps
}

func NewRemove(deps *commands.Deps) *Remove {
	return &Remove{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Remove) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	const usage = "usage: $removecolor <name or index>"
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	query := joinName(parts[1:])
	if query == "" {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, %s", m.Author.Mention(), usage))
		return
	}

	removed, err := c.deps.Engine.RemoveColor(c.deps.Ctx, m.GuildID, query)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("Removed **%s**", utils.EscapeMarkdown(removed.Name)))
	return
}

func (c *Remove) Description() string {
	return c.Command.Description
}
