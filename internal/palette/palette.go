package palette

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/Gumbachi/Vibrant-sub000/internal/fuzzy"
)

const (
	DefaultColorLimit = 50
	DefaultThemeLimit = 10
)

// Lookup thresholds used by the different kinds of callers.
const (
	ThresholdAny    = 0
	ThresholdAssign = 80
	ThresholdExact  = 90
	ThresholdSwap   = 95
)

// Palette owns the ordered colors and themes of one guild.
// A record's 1-based index is its current position + 1 and is never stored.
type Palette struct {
	ColorLimit int      `json:"color_limit"`
	ThemeLimit int      `json:"theme_limit"`
	Colors     []*Color `json:"colors"`
	Themes     []*Theme `json:"themes"`
}

func New(colorLimit, themeLimit int) Palette {
	if colorLimit <= 0 {
		colorLimit = DefaultColorLimit
	}
	if themeLimit <= 0 {
		themeLimit = DefaultThemeLimit
	}
	return Palette{
		ColorLimit: colorLimit,
		ThemeLimit: themeLimit,
		Colors:     []*Color{},
		Themes:     []*Theme{},
	}
}

// AddColor validates and appends a new color. An empty name becomes "Color n".
func (p *Palette) AddColor(name, hex string) (*Color, error) {
	if len(p.Colors) >= p.ColorLimit {
		return nil, fmt.Errorf("%w: a guild can have at most %d colors", ErrLimitReached, p.ColorLimit)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Color %d", len(p.Colors)+1)
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	normalized, err := NormalizeHex(hex)
	if err != nil {
		return nil, err
	}

	c := &Color{
		Name:    name,
		Hex:     normalized,
		Members: []string{},
	}
	p.Colors = append(p.Colors, c)

	return c, nil
}

// RemoveColor removes c from the palette. Role cleanup is the caller's job.
func (p *Palette) RemoveColor(c *Color) error {
	i := slices.Index(p.Colors, c)
	if i < 0 {
		return fmt.Errorf("color %w", ErrNotFound)
	}
	p.Colors = slices.Delete(p.Colors, i, i+1)
	return nil
}

// ClearColors empties the palette and returns what was removed.
func (p *Palette) ClearColors() []*Color {
	removed := p.Colors
	p.Colors = []*Color{}
	return removed
}

func (p *Palette) RenameColor(c *Color, name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (p *Palette) RecolorColor(c *Color, hex string) error {
	normalized, err := NormalizeHex(hex)
	if err != nil {
		return err
	}
	c.Hex = normalized
	return nil
}

// IndexOf returns the 1-based display index of c, or 0 if c is not in the palette.
func (p *Palette) IndexOf(c *Color) int {
	return slices.Index(p.Colors, c) + 1
}

func (p *Palette) ThemeIndexOf(t *Theme) int {
	return slices.Index(p.Themes, t) + 1
}

// FindColorByIndex returns the color at the 1-based index, or nil.
func (p *Palette) FindColorByIndex(index int) *Color {
	if index < 1 || index > len(p.Colors) {
		return nil
	}
	return p.Colors[index-1]
}

// FindColorByRole returns the color bound to roleID, or nil.
func (p *Palette) FindColorByRole(roleID string) *Color {
	if roleID == "" {
		return nil
	}
	for _, c := range p.Colors {
		if c.RoleID == roleID {
			return c
		}
	}
	return nil
}

// FindColorByMember returns the first color whose member set contains memberID, or nil.
func (p *Palette) FindColorByMember(memberID string) *Color {
	for _, c := range p.Colors {
		if c.HasMember(memberID) {
			return c
		}
	}
	return nil
}

// FindColorByName returns the first color named exactly name, or nil.
func (p *Palette) FindColorByName(name string) *Color {
	for _, c := range p.Colors {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindColor resolves user input to a color:
// an empty query picks a random color, a number in range is a 1-based index,
// anything else is fuzzy matched against names and must score at least threshold.
func (p *Palette) FindColor(query string, threshold int) *Color {
	query = strings.TrimSpace(query)
	if len(p.Colors) == 0 {
		return nil
	}

	if query == "" {
		return p.Colors[rand.IntN(len(p.Colors))]
	}

	if c := p.FindColorByIndex(parseIndex(query)); c != nil {
		return c
	}

	names := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		names[i] = c.Name
	}
	if i := bestMatch(query, names, threshold); i >= 0 {
		return p.Colors[i]
	}

	return nil
}

// FindTheme resolves user input to a theme by 1-based index or fuzzy name match.
func (p *Palette) FindTheme(query string, threshold int) *Theme {
	query = strings.TrimSpace(query)
	if query == "" || len(p.Themes) == 0 {
		return nil
	}

	if i := parseIndex(query); i >= 1 && i <= len(p.Themes) {
		return p.Themes[i-1]
	}

	names := make([]string, len(p.Themes))
	for i, t := range p.Themes {
		names[i] = t.Name
	}
	if i := bestMatch(query, names, threshold); i >= 0 {
		return p.Themes[i]
	}

	return nil
}

// AddTheme snapshots the current colors into a new theme.
func (p *Palette) AddTheme(name, description string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	t := NewTheme(name, strings.TrimSpace(description), p.Colors)
	if err := p.ImportTheme(t); err != nil {
		return nil, err
	}

	return t, nil
}

// ImportTheme appends an already built theme, e.g. a bundled preset.
func (p *Palette) ImportTheme(t *Theme) error {
	if len(p.Themes) >= p.ThemeLimit {
		return fmt.Errorf("%w: a guild can have at most %d themes", ErrLimitReached, p.ThemeLimit)
	}
	if err := ValidateName(t.Name); err != nil {
		return err
	}
	p.Themes = append(p.Themes, t)
	return nil
}

// OverwriteTheme replaces the theme's snapshot with the current colors.
func (p *Palette) OverwriteTheme(t *Theme) {
	t.Capture(p.Colors)
}

func (p *Palette) RenameTheme(t *Theme, name string) error {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return err
	}
	t.Name = name
	return nil
}

func (p *Palette) RemoveTheme(t *Theme) error {
	i := slices.Index(p.Themes, t)
	if i < 0 {
		return fmt.Errorf("theme %w", ErrNotFound)
	}
	p.Themes = slices.Delete(p.Themes, i, i+1)
	return nil
}

// Clone returns a deep copy of the palette.
func (p *Palette) Clone() Palette {
	c := Palette{
		ColorLimit: p.ColorLimit,
		ThemeLimit: p.ThemeLimit,
		Colors:     make([]*Color, 0, len(p.Colors)),
		Themes:     make([]*Theme, 0, len(p.Themes)),
	}
	for _, color := range p.Colors {
		c.Colors = append(c.Colors, color.Clone())
	}
	for _, theme := range p.Themes {
		c.Themes = append(c.Themes, theme.Clone())
	}
	return c
}

func parseIndex(query string) int {
	i, err := strconv.Atoi(query)
	if err != nil || i < 1 {
		return 0
	}
	return i
}

func bestMatch(query string, names []string, threshold int) int {
	i, score := fuzzy.Best(query, names)
	if i < 0 || score < threshold {
		return -1
	}
	return i
}
