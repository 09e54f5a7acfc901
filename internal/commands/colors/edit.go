package colors

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

func joinName(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}

type Rename struct {
	basecommand.Command

	deps *commands.Deps
}

func NewRename(deps *commands.Deps) *Rename {
	return &Rename{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Rename) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	before, renamed, err := c.deps.Engine.RenameColor(c.deps.Ctx, m.GuildID, joinName(parts[1:]))
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Embed(s, m.ChannelID, c.deps.Log, "",
		fmt.Sprintf("**%s** is now called **%s**", utils.EscapeMarkdown(before), utils.EscapeMarkdown(renamed.Name)), renamed.Value())
	return
}

func (c *Rename) Description() string {
	return c.Command.Description
}

type Recolor struct {
	basecommand.Command

	deps *commands.Deps
}

func NewRecolor(deps *commands.Deps) *Recolor {
	return &Recolor{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Recolor) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	before, recolored, err := c.deps.Engine.RecolorColor(c.deps.Ctx, m.GuildID, joinName(parts[1:]))
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Embed(s, m.ChannelID, c.deps.Log, "",
		fmt.Sprintf("**%s** changed from %s to %s", utils.EscapeMarkdown(recolored.Name), before, recolored.Hex), recolored.Value())
	return
}

func (c *Recolor) Description() string {
	return c.Command.Description
}

type Clear struct {
	basecommand.Command

	deps *commands.Deps
}

func NewClear(deps *commands.Deps) *Clear {
	return &Clear{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Clear) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultGlobalCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return pkg.CommandResultUserCooldown
	}

	reply.React(s, m, c.deps.Log, reply.WorkingEmoji)

	removed, kept, err := c.deps.Engine.ClearColors(c.deps.Ctx, m.GuildID)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.React(s, m, c.deps.Log, reply.DoneEmoji)
	text := fmt.Sprintf("Removed %d colors", removed)
	if kept > 0 {
		text += fmt.Sprintf(", %d were kept because their role could not be deleted", kept)
	}
	reply.Text(s, m.ChannelID, c.deps.Log, text)
	return
}

func (c *Clear) Description() string {
	return c.Command.Description
}
