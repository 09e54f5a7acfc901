package themes

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jessevdk/go-flags"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

func Register(deps *commands.Deps) {
	commands.Register([]string{"$themes", "$t"}, New(deps))
	commands.Register([]string{"$savetheme", "$save"}, NewSave(deps))
	commands.Register([]string{"$overwritetheme", "$overwrite"}, NewOverwrite(deps))
	commands.Register([]string{"$renametheme"}, NewRename(deps))
	commands.Register([]string{"$removetheme"}, NewRemove(deps))
	commands.Register([]string{"$applytheme", "$apply", "$load"}, NewApply(deps))
	commands.Register([]string{"$presets"}, NewPresets(deps))
	commands.Register([]string{"$import"}, NewImport(deps))
}

func joinName(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
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
	if len(g.Themes) == 0 {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, there are no saved themes. Save the current colors with %ssavetheme <name> or browse %spresets",
			m.Author.Mention(), g.Prefix, g.Prefix))
		return
	}

	header := fmt.Sprintf("**Themes** (%d/%d)\n", len(g.Themes), g.ThemeLimit)
	if err := utils.SendChunks(s, m.ChannelID, header, "", utils.ThemeLines(g.Themes)); err != nil {
		c.deps.Log.Warn("Unable to send theme list", "guildID", m.GuildID, "error", err)
	}
	return
}

func (c *Command) Description() string {
	return c.Command.Description
}

type Save struct {
	basecommand.Command

	deps *commands.Deps
}

func NewSave(deps *commands.Deps) *Save {
	return &Save{
		Command: basecommand.New(),
		deps:    deps,
	}
}

type saveOptions struct {
	Description string `long:"description" short:"d"`
}

func (c *Save) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	const usage = "usage: $savetheme [--description text] <name>"
	var opts saveOptions
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

	name := joinName(args)
	if name == "" {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, %s", m.Author.Mention(), usage))
		return
	}

	saved, err := c.deps.Engine.SaveTheme(c.deps.Ctx, m.GuildID, name, opts.Description)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("Saved the current %d colors as **%s**", len(saved.Colors), utils.EscapeMarkdown(saved.Name)))
	return
}

func (c *Save) Description() string {
	return c.Command.Description
}

type Overwrite struct {
	basecommand.Command

	deps *commands.Deps
}

func NewOverwrite(deps *commands.Deps) *Overwrite {
	return &Overwrite{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Overwrite) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	overwritten, err := c.deps.Engine.OverwriteTheme(c.deps.Ctx, m.GuildID, joinName(parts[1:]))
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("**%s** now holds the current %d colors", utils.EscapeMarkdown(overwritten.Name), len(overwritten.Colors)))
	return
}

func (c *Overwrite) Description() string {
	return c.Command.Description
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

	before, renamed, err := c.deps.Engine.RenameTheme(c.deps.Ctx, m.GuildID, joinName(parts[1:]))
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("**%s** is now called **%s**", utils.EscapeMarkdown(before), utils.EscapeMarkdown(renamed.Name)))
	return
}

func (c *Rename) Description() string {
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
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	removed, err := c.deps.Engine.RemoveTheme(c.deps.Ctx, m.GuildID, joinName(parts[1:]))
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("Removed the theme **%s**", utils.EscapeMarkdown(removed.Name)))
	return
}

func (c *Remove) Description() string {
	return c.Command.Description
}
