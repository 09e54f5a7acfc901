// Package guilds persists one document per guild: its palette and its settings.
package guilds

import (
	"errors"
	"slices"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
)

var ErrNotFound = errors.New("guild not found")

const DefaultPrefix = "$"

// Guild is the stored document of one guild.
type Guild struct {
	ID               string   `json:"_id"`
	Prefix           string   `json:"prefix"`
	WelcomeChannel   *string  `json:"welcome_channel"`
	DisabledChannels []string `json:"disabled_channels"`

	palette.Palette
}

// Defaults are applied to guilds that have never been stored.
type Defaults struct {
	Prefix     string
	ColorLimit int
	ThemeLimit int
}

func (d Defaults) New(id string) *Guild {
	prefix := d.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Guild{
		ID:               id,
		Prefix:           prefix,
		DisabledChannels: []string{},
		Palette:          palette.New(d.ColorLimit, d.ThemeLimit),
	}
}

// Default returns a fresh guild document with the built-in defaults.
func Default(id string) *Guild {
	return Defaults{}.New(id)
}

func (g *Guild) Clone() *Guild {
	c := &Guild{
		ID:               g.ID,
		Prefix:           g.Prefix,
		DisabledChannels: append([]string{}, g.DisabledChannels...),
		Palette:          g.Palette.Clone(),
	}
	if g.WelcomeChannel != nil {
		channelID := *g.WelcomeChannel
		c.WelcomeChannel = &channelID
	}
	return c
}

func (g *Guild) ChannelDisabled(channelID string) bool {
	return slices.Contains(g.DisabledChannels, channelID)
}

// DisableChannel returns false if the channel was already disabled.
func (g *Guild) DisableChannel(channelID string) bool {
	if g.ChannelDisabled(channelID) {
		return false
	}
	g.DisabledChannels = append(g.DisabledChannels, channelID)
	return true
}

// EnableChannel returns false if the channel was not disabled.
func (g *Guild) EnableChannel(channelID string) bool {
	i := slices.Index(g.DisabledChannels, channelID)
	if i < 0 {
		return false
	}
	g.DisabledChannels = slices.Delete(g.DisabledChannels, i, i+1)
	return true
}

// normalize fills in what older or hand-edited documents may lack.
func (g *Guild) normalize(d Defaults) {
	if g.Prefix == "" {
		g.Prefix = d.New(g.ID).Prefix
	}
	if g.DisabledChannels == nil {
		g.DisabledChannels = []string{}
	}
	if g.ColorLimit <= 0 {
		g.ColorLimit = d.New(g.ID).ColorLimit
	}
	if g.ThemeLimit <= 0 {
		g.ThemeLimit = d.New(g.ID).ThemeLimit
	}
	if g.Colors == nil {
		g.Colors = []*palette.Color{}
	}
	if g.Themes == nil {
		g.Themes = []*palette.Theme{}
	}
	for _, c := range g.Colors {
		if c.Members == nil {
			c.Members = []string{}
		}
	}
}
