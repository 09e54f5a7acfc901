package roleinfo

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pajbot/basecommand"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/pkg"
	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

func Register(deps *commands.Deps) {
	commands.Register([]string{"$colorinfo", "$colourinfo", "$info"}, New(deps))
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

func (c *Command) Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) pkg.CommandResult {
	const usage = `$colorinfo COLOR (e.g. $colorinfo red or $colorinfo 3)`

	parts = parts[1:]

	if len(parts) < 1 {
		reply.Text(s, m.ChannelID, c.deps.Log, m.Author.Mention()+" usage: "+usage)
		return pkg.CommandResultUserCooldown
	}

	query := strings.Join(parts, " ")

	g := c.deps.Engine.Guild(c.deps.Ctx, m.GuildID)
	color := g.FindColor(query, palette.ThresholdAny)
	if color == nil {
		reply.Text(s, m.ChannelID, c.deps.Log, m.Author.Mention()+" no color found with that name")
		return pkg.CommandResultUserCooldown
	}

	reply.Embed(s, m.ChannelID, c.deps.Log, utils.EscapeMarkdown(color.Name), info(g.IndexOf(color), color), color.Value())
	return pkg.CommandResultFullCooldown
}

func info(index int, color *palette.Color) string {
	role := "not created yet"
	if color.HasRole() {
		role = "<@&" + color.RoleID + ">"
	}
	return fmt.Sprintf("Index: `%d`\nHex: %s\nRole: %s\nMembers: %d", index, color.Hex, role, len(color.Members))
}

func (c *Command) Description() string {
	return c.Command.Description
}
