package utils

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	qt "github.com/frankban/quicktest"
)

func TestCleanChannelID(t *testing.T) {
	c := qt.New(t)

	c.Assert(CleanChannelID("<#123>"), qt.Equals, "123")
	c.Assert(CleanChannelID("123"), qt.Equals, "123")
	c.Assert(CleanChannelID("#general"), qt.Equals, "")
}

func TestHasManageRoles(t *testing.T) {
	c := qt.New(t)

	c.Assert(HasManageRoles(discordgo.PermissionManageRoles), qt.IsTrue)
	c.Assert(HasManageRoles(discordgo.PermissionAdministrator), qt.IsTrue)
	c.Assert(HasManageRoles(discordgo.PermissionSendMessages), qt.IsFalse)
}
