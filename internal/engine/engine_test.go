package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/testhelper"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform/platformtest"
	"github.com/Gumbachi/Vibrant-sub000/internal/session"
)

const guildID = "guild"

type fixture struct {
	engine *Engine
	fake   *platformtest.Fake
	store  *guilds.MemoryStore
	sleeps []time.Duration
}

func newFixture(c *qt.C) *fixture {
	f := &fixture{
		fake:  platformtest.New(),
		store: guilds.NewMemoryStore(),
	}
	repo := guilds.NewRepository(f.store, guilds.RepositoryOptions{})
	f.engine = New(repo, f.fake, session.NewRegistry(0, 0), Config{
		RateLimitCooldown: 5 * time.Second,
	}, nil)
	f.engine.sleep = func(ctx context.Context, d time.Duration) error {
		f.sleeps = append(f.sleeps, d)
		return nil
	}
	return f
}

func (f *fixture) addColors(c *qt.C, colors ...string) {
	for i := 0; i+1 < len(colors); i += 2 {
		_, _, err := f.engine.AddColor(context.Background(), guildID, colors[i], colors[i+1])
		c.Assert(err, qt.IsNil)
	}
}

func (f *fixture) guild() *guilds.Guild {
	return f.engine.Guild(context.Background(), guildID)
}

// colorRolesOf returns the bound color roles the member holds on the platform.
func (f *fixture) colorRolesOf(userID string) []string {
	g := f.guild()
	var held []string
	for _, roleID := range f.fake.MemberRoles(userID) {
		if g.FindColorByRole(roleID) != nil {
			held = append(held, roleID)
		}
	}
	return held
}

func assertUniqueRoles(c *qt.C, g *guilds.Guild) {
	seen := map[string]string{}
	for _, color := range g.Colors {
		if !color.HasRole() {
			continue
		}
		other, dup := seen[color.RoleID]
		c.Assert(dup, qt.IsFalse, qt.Commentf("%s and %s share role %s", other, color.Name, color.RoleID))
		seen[color.RoleID] = color.Name
	}
}

func TestColorUserSwitchesColor(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000", "Blue", "#0000ff")
	f.fake.AddMember("u1")

	red, err := f.engine.ColorUser(ctx, guildID, "u1", "red")
	c.Assert(err, qt.IsNil)
	c.Assert(red.Name, qt.Equals, "Red")
	c.Assert(f.colorRolesOf("u1"), qt.DeepEquals, []string{red.RoleID})

	blue, err := f.engine.ColorUser(ctx, guildID, "u1", "2")
	c.Assert(err, qt.IsNil)
	c.Assert(blue.Name, qt.Equals, "Blue")
	c.Assert(f.colorRolesOf("u1"), qt.DeepEquals, []string{blue.RoleID})

	g := f.guild()
	c.Assert(g.Colors[0].HasRole(), qt.IsFalse)
	c.Assert(g.Colors[0].Members, qt.HasLen, 0)
	c.Assert(g.Colors[1].Members, qt.DeepEquals, []string{"u1"})
	c.Assert(f.fake.Role(red.RoleID), qt.IsNil)
	assertUniqueRoles(c, g)

	// asking for the held color again changes nothing
	creates := f.fake.Calls["CreateRole"]
	_, err = f.engine.ColorUser(ctx, guildID, "u1", "blue")
	c.Assert(err, qt.IsNil)
	testhelper.AssertIntsEqual(t, creates, f.fake.Calls["CreateRole"])
	c.Assert(f.colorRolesOf("u1"), qt.HasLen, 1)
}

func TestColorUserSharesRole(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000")
	f.fake.AddMember("u1")
	f.fake.AddMember("u2")

	first, err := f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)
	second, err := f.engine.ColorUser(ctx, guildID, "u2", "Red")
	c.Assert(err, qt.IsNil)

	c.Assert(second.RoleID, qt.Equals, first.RoleID)
	c.Assert(f.fake.RoleCount(), qt.Equals, 1)
	c.Assert(second.Members, qt.DeepEquals, []string{"u1", "u2"})
}

func TestColorUserErrors(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.fake.AddMember("u1")

	_, err := f.engine.ColorUser(ctx, guildID, "u1", "")
	c.Assert(err, qt.ErrorIs, ErrNoAvailableColors)

	f.addColors(c, "Red", "#ff0000")
	_, err = f.engine.ColorUser(ctx, guildID, "u1", "green")
	c.Assert(err, qt.ErrorIs, palette.ErrNotFound)
	c.Assert(f.fake.Calls["CreateRole"], qt.Equals, 0)

	_, err = f.engine.ColorUser(ctx, guildID, "ghost", "red")
	c.Assert(platform.IsNotFound(err), qt.IsTrue)

	color, err := f.engine.ColorUser(ctx, guildID, "u1", "")
	c.Assert(err, qt.IsNil)
	c.Assert(color.Name, qt.Equals, "Red")
}

func TestColorUserTakesAwayUnrecordedRole(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000", "Blue", "#0000ff")
	f.fake.AddMember("u1")
	f.fake.AddMember("u2")

	red, err := f.engine.ColorUser(ctx, guildID, "u2", "Red")
	c.Assert(err, qt.IsNil)
	// u1 got the red role by hand
	c.Assert(f.fake.AddMemberRole(ctx, guildID, "u1", red.RoleID), qt.IsNil)

	_, err = f.engine.ColorUser(ctx, guildID, "u1", "Blue")
	c.Assert(err, qt.IsNil)
	c.Assert(f.colorRolesOf("u1"), qt.HasLen, 1)
	c.Assert(f.fake.Role(red.RoleID), qt.IsNotNil)
}

func TestUncolorUser(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000")
	f.fake.AddMember("u1")

	_, err := f.engine.UncolorUser(ctx, guildID, "u1")
	c.Assert(err, qt.ErrorIs, ErrUserMissingColorRole)

	_, err = f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)

	removed, err := f.engine.UncolorUser(ctx, guildID, "u1")
	c.Assert(err, qt.IsNil)
	c.Assert(removed.Name, qt.Equals, "Red")
	c.Assert(f.colorRolesOf("u1"), qt.HasLen, 0)
	c.Assert(f.fake.RoleCount(), qt.Equals, 0)
	c.Assert(f.guild().Colors[0].HasRole(), qt.IsFalse)
}

func TestRenameKeepsIdentity(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000", "Blue", "#0000ff")
	f.fake.AddMember("u1")

	red, err := f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)

	before, renamed, err := f.engine.RenameColor(ctx, guildID, "Red|Crimson")
	c.Assert(err, qt.IsNil)
	c.Assert(before, qt.Equals, "Red")
	c.Assert(renamed.RoleID, qt.Equals, red.RoleID)
	c.Assert(f.fake.Role(red.RoleID).Name, qt.Equals, "Crimson")

	g := f.guild()
	found := g.FindColor("Crimson", palette.ThresholdExact)
	c.Assert(g.IndexOf(found), qt.Equals, 1)
	c.Assert(found.Members, qt.DeepEquals, []string{"u1"})

	_, _, err = f.engine.RenameColor(ctx, guildID, "Crimson")
	c.Assert(err, qt.ErrorIs, palette.ErrSwapSyntax)
	_, _, err = f.engine.RenameColor(ctx, guildID, "Green|Lime")
	c.Assert(err, qt.ErrorIs, palette.ErrNotFound)
}

func TestRecolor(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000")
	f.fake.AddMember("u1")

	red, err := f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)

	before, recolored, err := f.engine.RecolorColor(ctx, guildID, "Red|#000")
	c.Assert(err, qt.IsNil)
	c.Assert(before, qt.Equals, "#ff0000")
	c.Assert(recolored.Hex, qt.Equals, "#000001")
	c.Assert(f.fake.Role(red.RoleID).Color, qt.Equals, 1)

	_, _, err = f.engine.RecolorColor(ctx, guildID, "Red|blurple")
	c.Assert(err, qt.ErrorIs, palette.ErrInvalidHex)
}

func TestRemoveColor(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000", "Blue", "#0000ff", "Green", "#00ff00")
	f.fake.AddMember("u1")

	red, err := f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)

	_, err = f.engine.RemoveColor(ctx, guildID, "")
	c.Assert(err, qt.ErrorIs, palette.ErrNotFound)

	removed, err := f.engine.RemoveColor(ctx, guildID, "Red")
	c.Assert(err, qt.IsNil)
	c.Assert(removed.Name, qt.Equals, "Red")
	c.Assert(f.fake.Role(red.RoleID), qt.IsNil)
	c.Assert(f.fake.MemberRoles("u1"), qt.HasLen, 0)

	g := f.guild()
	c.Assert(g.Colors, qt.HasLen, 2)
	c.Assert(g.FindColorByIndex(1).Name, qt.Equals, "Blue")
	c.Assert(g.FindColorByIndex(2).Name, qt.Equals, "Green")
}

func TestAddColorAtLimit(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)

	for i := 0; i < palette.DefaultColorLimit-1; i++ {
		_, _, err := f.engine.AddColor(ctx, guildID, "", "#123456")
		c.Assert(err, qt.IsNil)
	}

	added, index, err := f.engine.AddColor(ctx, guildID, "", "#123456")
	c.Assert(err, qt.IsNil)
	c.Assert(index, qt.Equals, palette.DefaultColorLimit)
	c.Assert(added.Name, qt.Equals, "Color 50")

	_, _, err = f.engine.AddColor(ctx, guildID, "", "#123456")
	c.Assert(err, qt.ErrorIs, palette.ErrLimitReached)
}

func TestAddColorForAssignsTheAddedColor(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Teal", "#008080")
	f.fake.AddMember("u1")

	_, err := f.engine.ColorUser(ctx, guildID, "u1", "Teal")
	c.Assert(err, qt.IsNil)

	// a color whose name reads as an index of another one
	added, err := f.engine.AddColorFor(ctx, guildID, "u1", "1", "#ff8800")
	c.Assert(err, qt.IsNil)
	c.Assert(added.Name, qt.Equals, "1")
	c.Assert(added.Members, qt.DeepEquals, []string{"u1"})

	g := f.guild()
	c.Assert(g.Colors, qt.HasLen, 2)
	c.Assert(g.Colors[0].Members, qt.HasLen, 0)
	c.Assert(g.Colors[1].Members, qt.DeepEquals, []string{"u1"})
	c.Assert(f.colorRolesOf("u1"), qt.DeepEquals, []string{g.Colors[1].RoleID})

	_, err = f.engine.AddColorFor(ctx, guildID, "u1", "Bad", "not a color")
	c.Assert(err, qt.ErrorIs, palette.ErrInvalidHex)
	c.Assert(f.guild().Colors, qt.HasLen, 2)
}

func TestClearColors(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000", "Blue", "#0000ff")
	f.fake.AddMember("u1")

	_, err := f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)

	removed, kept, err := f.engine.ClearColors(ctx, guildID)
	c.Assert(err, qt.IsNil)
	c.Assert(removed, qt.Equals, 2)
	c.Assert(kept, qt.Equals, 0)
	c.Assert(f.fake.RoleCount(), qt.Equals, 0)
	c.Assert(f.guild().Colors, qt.HasLen, 0)
}

func TestClearColorsKeepsUndeletableRoles(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000", "Blue", "#0000ff", "Green", "#00ff00")
	f.fake.AddMember("u1")
	f.fake.AddMember("u2")

	_, err := f.engine.ColorUser(ctx, guildID, "u1", "Red")
	c.Assert(err, qt.IsNil)
	blue, err := f.engine.ColorUser(ctx, guildID, "u2", "Blue")
	c.Assert(err, qt.IsNil)

	f.fake.Hook = func(method string, args ...string) error {
		if method == "DeleteRole" && args[0] == blue.RoleID {
			return platform.ErrForbidden
		}
		return nil
	}

	removed, kept, err := f.engine.ClearColors(ctx, guildID)
	c.Assert(err, qt.IsNil)
	c.Assert(removed, qt.Equals, 2)
	c.Assert(kept, qt.Equals, 1)

	g := f.guild()
	c.Assert(g.Colors, qt.HasLen, 1)
	c.Assert(g.Colors[0].Name, qt.Equals, "Blue")
	c.Assert(g.Colors[0].RoleID, qt.Equals, blue.RoleID)
	c.Assert(g.Colors[0].Members, qt.DeepEquals, []string{"u2"})
	c.Assert(f.fake.RoleCount(), qt.Equals, 1)
}

func TestFailedSaveIsSurfaced(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)
	f.addColors(c, "Red", "#ff0000")

	boom := errors.New("database is down")
	f.store.Failing = boom
	_, _, err := f.engine.AddColor(ctx, guildID, "Blue", "#0000ff")
	c.Assert(err, qt.ErrorIs, boom)

	f.store.Failing = nil
	c.Assert(f.guild().Colors, qt.HasLen, 1)
}

func TestFailedLoadDoesNotOverwrite(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)

	stored := guilds.Default(guildID)
	_, err := stored.AddColor("Red", "#ff0000")
	c.Assert(err, qt.IsNil)
	c.Assert(f.store.Save(ctx, stored), qt.IsNil)

	boom := errors.New("read timeout")
	f.store.FailingLoad = boom
	_, _, err = f.engine.AddColor(ctx, guildID, "Blue", "#0000ff")
	c.Assert(err, qt.ErrorIs, boom)
	c.Assert(f.engine.SetPrefix(ctx, guildID, "!"), qt.ErrorIs, boom)

	f.store.FailingLoad = nil
	g := f.guild()
	c.Assert(g.Colors, qt.HasLen, 1)
	c.Assert(g.Colors[0].Name, qt.Equals, "Red")
	c.Assert(f.fake.RoleCount(), qt.Equals, 0)
}

func TestSettings(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	f := newFixture(c)

	c.Assert(f.engine.SetPrefix(ctx, guildID, "!"), qt.IsNil)
	c.Assert(f.engine.SetPrefix(ctx, guildID, "a b"), qt.ErrorIs, ErrInvalidPrefix)
	c.Assert(f.engine.SetPrefix(ctx, guildID, "12345678901"), qt.ErrorIs, ErrInvalidPrefix)
	c.Assert(f.guild().Prefix, qt.Equals, "!")

	c.Assert(f.engine.SetWelcomeChannel(ctx, guildID, "c1"), qt.IsNil)
	c.Assert(*f.guild().WelcomeChannel, qt.Equals, "c1")
	c.Assert(f.engine.SetWelcomeChannel(ctx, guildID, ""), qt.IsNil)
	c.Assert(f.guild().WelcomeChannel, qt.IsNil)

	changed, err := f.engine.SetChannelEnabled(ctx, guildID, "c1", false)
	c.Assert(err, qt.IsNil)
	c.Assert(changed, qt.IsTrue)
	changed, err = f.engine.SetChannelEnabled(ctx, guildID, "c1", false)
	c.Assert(err, qt.IsNil)
	c.Assert(changed, qt.IsFalse)
	c.Assert(f.guild().ChannelDisabled("c1"), qt.IsTrue)
}
