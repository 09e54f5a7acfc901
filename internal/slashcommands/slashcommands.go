package slashcommands

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/Gumbachi/Vibrant-sub000/pkg/commands"
)

var (
	deps *commands.Deps
)

func Initialize(deps_ *commands.Deps) {
	deps = deps_
}

type SlashCommand struct {
	name    string
	command *discordgo.ApplicationCommand

	handler func(*discordgo.Session, *discordgo.InteractionCreate)

	registeredCommands []*discordgo.ApplicationCommand
}

type SlashCommands struct {
	guildIDs []string
}

var registered = map[string]*SlashCommand{}

// register registers a slash command to be created on the configured guilds
// read the code or the /color command to see how the command should be created
// we will panic if something is misconfigured
func register(cmd *SlashCommand) {
	if cmd.name == "" {
		log.Fatal("Command must have a name")
	}

	if cmd.command == nil {
		log.Fatalf("[%s] Command must have `command` set", cmd.name)
	}

	if len(cmd.registeredCommands) != 0 {
		log.Fatalf("[%s] Command must NOT have any `registeredCommands` set", cmd.name)
	}

	if cmd.handler == nil {
		log.Fatalf("[%s] Command must have `handler` set", cmd.name)
	}

	if cmd.command.Name != "" {
		log.Fatalf("[%s] `command.Name` must not be set", cmd.name)
	}
	cmd.command.Name = cmd.name

	if _, ok := registered[cmd.name]; ok {
		log.Fatalf("[%s] Command with the name '%s' has already been registered", cmd.name, cmd.name)
	}

	registered[cmd.name] = cmd
}

func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if cmd, ok := registered[i.ApplicationCommandData().Name]; ok {
		cmd.handler(s, i)
	}
}

// Create registers all available slash commands in the configured guilds
func (s *SlashCommands) Create(session *discordgo.Session) error {
	session.AddHandler(onInteractionCreate)

	for _, guildID := range s.guildIDs {
		deps.Log.Info("Creating slash commands", "guildID", guildID)

		for _, cmd := range registered {
			registeredCommand, err := session.ApplicationCommandCreate(session.State.User.ID, guildID, cmd.command)
			if err != nil {
				return fmt.Errorf("creating command '%s' failed: %w", cmd.name, err)
			}
			cmd.registeredCommands = append(cmd.registeredCommands, registeredCommand)
		}
	}

	return nil
}

// Delete deletes all slash commands that were registered in all guilds
func (s *SlashCommands) Delete(session *discordgo.Session) error {
	for _, cmd := range registered {
		for _, registeredCommand := range cmd.registeredCommands {
			err := session.ApplicationCommandDelete(session.State.User.ID, registeredCommand.GuildID, registeredCommand.ID)
			if err != nil {
				deps.Log.Warn("Unable to delete slash command", "command", cmd.name, "guildID", registeredCommand.GuildID, "error", err)
			}
		}
	}

	return nil
}

// New creates a SlashCommands struct with the given options
func New(guildIDs []string) *SlashCommands {
	return &SlashCommands{
		guildIDs: guildIDs,
	}
}

// deferResponse acknowledges the interaction so the handler may take longer than Discord's
// response window.
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		deps.Log.Warn("Unable to acknowledge interaction", "guildID", i.GuildID, "error", err)
		return false
	}
	return true
}

// respond fills in a deferred response. Text that does not fit in one message is
// continued in follow-ups.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, messages ...string) {
	for n, text := range messages {
		var err error
		if n == 0 {
			_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content: &text,
			})
		} else {
			_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: text,
			})
		}
		if err != nil {
			deps.Log.Warn("Unable to respond to interaction", "guildID", i.GuildID, "error", err)
			return
		}
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
