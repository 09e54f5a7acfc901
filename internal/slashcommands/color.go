package slashcommands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Gumbachi/Vibrant-sub000/internal/commands/reply"
	"github.com/Gumbachi/Vibrant-sub000/pkg/utils"
)

func init() {
	cmd := &SlashCommand{
		name: "color",
		command: &discordgo.ApplicationCommand{
			Description: "Pick your color",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "set",
					Description: "Give yourself a color, or a random one",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "color",
							Description: "Color name or index",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Remove your color",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the available colors",
				},
			},
		},
		handler: func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			options := i.ApplicationCommandData().Options
			if len(options) == 0 || i.GuildID == "" {
				return
			}
			if !deferResponse(s, i) {
				return
			}

			subcommand := options[0]
			switch subcommand.Name {
			case "set":
				respond(s, i, colorSet(i, subcommand.Options))
			case "reset":
				respond(s, i, colorReset(i))
			case "list":
				respond(s, i, colorList(i)...)
			}
		},
	}

	register(cmd)
}

func colorSet(i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) string {
	user := interactionUser(i)
	var query string
	for _, option := range options {
		if option.Name == "color" {
			query = option.StringValue()
		}
	}

	color, err := deps.Engine.ColorUser(deps.Ctx, i.GuildID, user.ID, query)
	if err != nil {
		return interactionError(i, err)
	}
	return fmt.Sprintf("%s is now **%s** %s", user.Mention(), utils.EscapeMarkdown(color.Name), color.Hex)
}

func colorReset(i *discordgo.InteractionCreate) string {
	user := interactionUser(i)

	color, err := deps.Engine.UncolorUser(deps.Ctx, i.GuildID, user.ID)
	if err != nil {
		return interactionError(i, err)
	}
	return fmt.Sprintf("%s, removed **%s** from you", user.Mention(), utils.EscapeMarkdown(color.Name))
}

func colorList(i *discordgo.InteractionCreate) []string {
	g := deps.Engine.Guild(deps.Ctx, i.GuildID)
	if len(g.Colors) == 0 {
		return []string{"There are no colors yet"}
	}

	messages, err := utils.Chunk("", "", utils.ColorLines(g.Colors))
	if err != nil {
		return []string{interactionError(i, err)}
	}
	return messages
}

func interactionError(i *discordgo.InteractionCreate, err error) string {
	text := reply.Message(err)
	if text == reply.Unexpected {
		deps.Log.Error("Slash command failed", "guildID", i.GuildID, "command", i.ApplicationCommandData().Name, "error", err)
	}
	return text
}
