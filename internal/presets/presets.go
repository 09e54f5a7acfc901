// Package presets holds the themes shipped with the bot.
package presets

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Gumbachi/Vibrant-sub000/internal/fuzzy"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
)

//go:embed data/*.json
var files embed.FS

var validate = validator.New()

type presetColor struct {
	Name string `json:"name" validate:"required,max=100,excludes=0x7C"`
	Hex  string `json:"hexcode" validate:"required,hexcolor"`
}

type presetTheme struct {
	Name        string        `json:"name" validate:"required,max=100"`
	Description string        `json:"description"`
	Colors      []presetColor `json:"colors" validate:"required,min=1,dive"`
}

// Parse reads a preset document: either a bare array of colors, named after
// fallbackName, or an object carrying its own name and description.
func Parse(fallbackName string, data []byte) (*palette.Theme, error) {
	data = bytes.TrimSpace(data)

	var doc presetTheme
	if bytes.HasPrefix(data, []byte("[")) {
		doc.Name = fallbackName
		if err := json.Unmarshal(data, &doc.Colors); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("invalid preset %q: %w", doc.Name, err)
	}

	colors := make([]*palette.Color, 0, len(doc.Colors))
	for _, c := range doc.Colors {
		hex, err := palette.NormalizeHex(c.Hex)
		if err != nil {
			return nil, fmt.Errorf("preset %q color %q: %w", doc.Name, c.Name, err)
		}
		colors = append(colors, &palette.Color{
			Name:    strings.TrimSpace(c.Name),
			Hex:     hex,
			Members: []string{},
		})
	}

	return palette.NewTheme(doc.Name, doc.Description, colors), nil
}

// Catalog is the set of bundled presets, sorted by name.
type Catalog struct {
	themes []*palette.Theme
}

// Load parses every embedded preset.
func Load() (*Catalog, error) {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil, err
	}

	c := &Catalog{}
	for _, entry := range entries {
		data, err := files.ReadFile(path.Join("data", entry.Name()))
		if err != nil {
			return nil, err
		}
		t, err := Parse(strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())), data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		c.themes = append(c.themes, t)
	}

	sort.Slice(c.themes, func(i, j int) bool {
		return c.themes[i].Name < c.themes[j].Name
	})

	return c, nil
}

// Themes returns copies of all presets.
func (c *Catalog) Themes() []*palette.Theme {
	out := make([]*palette.Theme, 0, len(c.themes))
	for _, t := range c.themes {
		out = append(out, t.Clone())
	}
	return out
}

// Find returns a copy of the preset best matching query, or nil.
func (c *Catalog) Find(query string) *palette.Theme {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	names := make([]string, len(c.themes))
	for i, t := range c.themes {
		names[i] = t.Name
	}
	i, score := fuzzy.Best(query, names)
	if i < 0 || score < palette.ThresholdAssign {
		return nil
	}
	return c.themes[i].Clone()
}
