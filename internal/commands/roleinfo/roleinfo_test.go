package roleinfo

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
)

func TestInfo(t *testing.T) {
	c := qt.New(t)

	color := &palette.Color{Name: "Red", Hex: "#ff0000", Members: []string{}}
	c.Assert(info(1, color), qt.Equals, "Index: `1`\nHex: #ff0000\nRole: not created yet\nMembers: 0")

	color.RoleID = "99"
	color.AddMember("u1")
	color.AddMember("u2")
	c.Assert(info(4, color), qt.Equals, "Index: `4`\nHex: #ff0000\nRole: <@&99>\nMembers: 2")
}
