package pkg

import "github.com/bwmarrin/discordgo"

// CommandResult decides which cooldowns apply after a command ran
type CommandResult int

const (
	CommandResultNoCooldown CommandResult = iota
	CommandResultUserCooldown
	CommandResultGlobalCooldown
	CommandResultFullCooldown
)

// Command is a text command triggered by a prefixed message
type Command interface {
	HasUserIDCooldown(string) bool
	AddUserIDCooldown(string)
	AddGlobalCooldown()
	Run(s *discordgo.Session, m *discordgo.MessageCreate, parts []string) CommandResult
	Description() string
}

// DisabledChannelCommand is implemented by commands that still run in channels where
// commands have been disabled
type DisabledChannelCommand interface {
	RunsInDisabledChannels() bool
}
