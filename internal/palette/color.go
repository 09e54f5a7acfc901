package palette

import (
	"encoding/json"
	"slices"
)

// Color is a named palette entry that may be bound to one role in its guild.
// In documents an unbound color has a null role.
type Color struct {
	Name    string   `json:"name"`
	Hex     string   `json:"hexcode"`
	RoleID  string   `json:"role"`
	Members []string `json:"members"`
}

type colorDoc struct {
	Name    string   `json:"name"`
	Hex     string   `json:"hexcode"`
	Role    *string  `json:"role"`
	Members []string `json:"members"`
}

func (c *Color) MarshalJSON() ([]byte, error) {
	doc := colorDoc{
		Name:    c.Name,
		Hex:     c.Hex,
		Members: c.Members,
	}
	if doc.Members == nil {
		doc.Members = []string{}
	}
	if c.RoleID != "" {
		roleID := c.RoleID
		doc.Role = &roleID
	}
	return json.Marshal(doc)
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var doc colorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*c = Color{
		Name:    doc.Name,
		Hex:     doc.Hex,
		Members: doc.Members,
	}
	if doc.Role != nil {
		c.RoleID = *doc.Role
	}
	return nil
}

// Value returns the integer color value used by Discord roles.
func (c *Color) Value() int {
	return HexValue(c.Hex)
}

// HasRole reports whether a role has been materialized for this color.
func (c *Color) HasRole() bool {
	return c.RoleID != ""
}

func (c *Color) HasMember(memberID string) bool {
	return slices.Contains(c.Members, memberID)
}

// AddMember adds memberID to the member set. It returns false if it was already present.
func (c *Color) AddMember(memberID string) bool {
	if c.HasMember(memberID) {
		return false
	}
	c.Members = append(c.Members, memberID)
	return true
}

// RemoveMember removes memberID from the member set. It returns false if it was absent.
func (c *Color) RemoveMember(memberID string) bool {
	i := slices.Index(c.Members, memberID)
	if i < 0 {
		return false
	}
	c.Members = slices.Delete(c.Members, i, i+1)
	return true
}

// Unbind forgets the role and everyone who held it.
func (c *Color) Unbind() {
	c.RoleID = ""
	c.Members = []string{}
}

// Clone returns a deep copy, role included.
func (c *Color) Clone() *Color {
	return &Color{
		Name:    c.Name,
		Hex:     c.Hex,
		RoleID:  c.RoleID,
		Members: append([]string{}, c.Members...),
	}
}

// Snapshot returns a deep copy without the role, as stored in themes.
func (c *Color) Snapshot() *Color {
	s := c.Clone()
	s.RoleID = ""
	return s
}
