package utils

import (
	"regexp"

	"github.com/bwmarrin/discordgo"
)

// MemberCanManageRoles returns true if the user may manage roles, or is an administrator,
// in the given channel
func MemberCanManageRoles(s *discordgo.Session, channelID, userID string) (bool, error) {
	perms, err := s.UserChannelPermissions(userID, channelID)
	if err != nil {
		return false, err
	}

	return HasManageRoles(perms), nil
}

func HasManageRoles(perms int64) bool {
	return perms&(discordgo.PermissionAdministrator|discordgo.PermissionManageRoles) != 0
}

var patternChannelIDReplacer = regexp.MustCompile(`^<#([0-9]+)>$`)
var patternID = regexp.MustCompile(`^[0-9]+$`)

// CleanChannelID accepts a channel mention or a raw ID
func CleanChannelID(input string) string {
	output := patternChannelIDReplacer.ReplaceAllString(input, "$1")

	if !patternID.MatchString(output) {
		return ""
	}

	return output
}
