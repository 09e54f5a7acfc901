package palette

import "encoding/json"

// Theme is a saved snapshot of a guild's colors, including who held them.
// Snapshot colors never carry a role, and have no role key in documents.
type Theme struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Colors      []*Color `json:"colors"`
}

type snapshotDoc struct {
	Name    string   `json:"name"`
	Hex     string   `json:"hexcode"`
	Members []string `json:"members"`
}

type themeDoc struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Colors      []snapshotDoc `json:"colors"`
}

func (t *Theme) MarshalJSON() ([]byte, error) {
	doc := themeDoc{
		Name:        t.Name,
		Description: t.Description,
		Colors:      make([]snapshotDoc, 0, len(t.Colors)),
	}
	for _, c := range t.Colors {
		members := c.Members
		if members == nil {
			members = []string{}
		}
		doc.Colors = append(doc.Colors, snapshotDoc{Name: c.Name, Hex: c.Hex, Members: members})
	}
	return json.Marshal(doc)
}

// NewTheme snapshots colors into a new theme.
func NewTheme(name, description string, colors []*Color) *Theme {
	t := &Theme{
		Name:        name,
		Description: description,
	}
	t.Capture(colors)
	return t
}

// Capture replaces the theme's colors with snapshots of colors.
func (t *Theme) Capture(colors []*Color) {
	t.Colors = make([]*Color, 0, len(colors))
	for _, c := range colors {
		t.Colors = append(t.Colors, c.Snapshot())
	}
}

// Instantiate returns fresh, role-less and member-less copies of the theme's colors,
// ready to become a live palette.
func (t *Theme) Instantiate() []*Color {
	colors := make([]*Color, 0, len(t.Colors))
	for _, c := range t.Colors {
		fresh := c.Snapshot()
		fresh.Members = []string{}
		colors = append(colors, fresh)
	}
	return colors
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	c := &Theme{
		Name:        t.Name,
		Description: t.Description,
		Colors:      make([]*Color, 0, len(t.Colors)),
	}
	for _, color := range t.Colors {
		c.Colors = append(c.Colors, color.Snapshot())
	}
	return c
}
