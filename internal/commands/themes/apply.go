package themes

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/engine"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

type Apply struct {
	basecommand.Command

	deps *commands.Deps
}

func NewApply(deps *commands.Deps) *Apply {
	return &Apply{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Apply) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	const usage = "usage: $applytheme <name or index>"
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	query := joinName(parts[1:])
	if query == "" {
		reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("%s, %s", m.Author.Mention(), usage))
		return
	}

	reply.React(s, m, c.deps.Log, reply.WorkingEmoji)

	applied, report, err := c.deps.Engine.ApplyTheme(c.deps.Ctx, m.GuildID, query)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.React(s, m, c.deps.Log, reply.DoneEmoji)
	reply.Text(s, m.ChannelID, c.deps.Log, appliedSummary(applied, report))

	return pkg.CommandResultGlobalCooldown
}

func (c *Apply) Description() string {
	return c.Command.Description
}

func appliedSummary(t *palette.Theme, r engine.Report) string {
	text := fmt.Sprintf("Applied **%s**: %d colors, %d members recolored", utils.EscapeMarkdown(t.Name), len(t.Colors), r.Assigned)
	if r.Failed > 0 {
		text += fmt.Sprintf(", %d could not be recolored", r.Failed)
	}
	return text
}

type Presets struct {
	basecommand.Command

	deps *commands.Deps
}

func NewPresets(deps *commands.Deps) *Presets {
	return &Presets{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Presets) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	const header = "**Presets** (add one to your themes with $import <name>)\n"
	if err := utils.SendChunks(s, m.ChannelID, header, "", utils.ThemeLines(c.deps.Presets.Themes())); err != nil {
		c.deps.Log.Warn("Unable to send preset list", "guildID", m.GuildID, "error", err)
	}
	return
}

func (c *Presets) Description() string {
	return c.Command.Description
}

type Import struct {
	basecommand.Command

	deps *commands.Deps
}

func NewImport(deps *commands.Deps) *Import {
	return &Import{
		Command: basecommand.New(),
		deps:    deps,
	}
}

func (c *Import) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) (res pkg.CommandResult) {
	res = pkg.CommandResultUserCooldown

	if !reply.RequireManageRoles(s, m, c.deps.Log) {
		return
	}

	query := joinName(parts[1:])
	preset := c.deps.Presets.Find(query)
	if preset == nil {
		reply.Error(s, m, c.deps.Log, fmt.Errorf("preset %q %w", query, palette.ErrNotFound))
		return
	}

	imported, err := c.deps.Engine.ImportTheme(c.deps.Ctx, m.GuildID, preset)
	if err != nil {
		reply.Error(s, m, c.deps.Log, err)
		return
	}

	reply.Text(s, m.ChannelID, c.deps.Log, fmt.Sprintf("Imported **%s** with %d colors. Apply it with $applytheme %s",
		utils.EscapeMarkdown(imported.Name), len(imported.Colors), utils.EscapeMarkdown(imported.Name)))
	return
}

func (c *Import) Description() string {
	return c.Command.Description
}
