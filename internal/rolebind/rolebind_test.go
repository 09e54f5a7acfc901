package rolebind

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/pajbot/testhelper"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform/platformtest"
)

const guildID = "guild"

func TestEnsureRoleCreatesOnceAndPositions(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	fake := platformtest.New()
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000"}

	roleID, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)
	c.Assert(color.RoleID, qt.Equals, roleID)

	role := fake.Role(roleID)
	c.Assert(role.Name, qt.Equals, "Red")
	c.Assert(role.Color, qt.Equals, 0xff0000)
	c.Assert(role.Position, qt.Equals, 9)

	again, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.Equals, roleID)
	testhelper.AssertIntsEqual(t, 1, fake.Calls["CreateRole"])
}

func TestEnsureRoleRecreatesDeletedRole(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	fake := platformtest.New()
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000", Members: []string{"stale"}}

	first, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)
	fake.ExternalDeleteRole(first)

	second, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)
	c.Assert(second, qt.Not(qt.Equals), first)
	c.Assert(color.Members, qt.HasLen, 0)
}

func TestEnsureRolePositionFailureIsNotFatal(t *testing.T) {
	c := qt.New(t)
	fake := platformtest.New()
	fake.Hook = func(method string, args ...string) error {
		if method == "MoveRole" {
			return platform.ErrForbidden
		}
		return nil
	}
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000"}

	roleID, err := b.EnsureRole(context.Background(), guildID, color)
	c.Assert(err, qt.IsNil)
	c.Assert(roleID, qt.Not(qt.Equals), "")
}

func TestEnsureRoleCreateFailureIsReported(t *testing.T) {
	c := qt.New(t)
	fake := platformtest.New()
	fake.Hook = func(method string, args ...string) error {
		if method == "CreateRole" {
			return platform.ErrForbidden
		}
		return nil
	}
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000"}

	_, err := b.EnsureRole(context.Background(), guildID, color)
	c.Assert(platform.IsForbidden(err), qt.IsTrue)
	c.Assert(color.HasRole(), qt.IsFalse)
}

func TestSyncRole(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	fake := platformtest.New()
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000"}

	roleID, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)

	color.Name = "Crimson"
	color.Hex = "#dc143c"
	c.Assert(b.SyncRole(ctx, guildID, color), qt.IsNil)
	c.Assert(fake.Role(roleID).Name, qt.Equals, "Crimson")
	c.Assert(fake.Role(roleID).Color, qt.Equals, 0xdc143c)

	fake.ExternalDeleteRole(roleID)
	c.Assert(b.SyncRole(ctx, guildID, color), qt.IsNil)
	c.Assert(color.HasRole(), qt.IsFalse)
}

func TestReleaseRoleIdempotent(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	fake := platformtest.New()
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000", Members: []string{}}

	_, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)

	c.Assert(b.ReleaseRoleIfUnused(ctx, guildID, color), qt.IsNil)
	c.Assert(color.HasRole(), qt.IsFalse)
	c.Assert(fake.RoleCount(), qt.Equals, 0)

	deletes := fake.Calls["DeleteRole"]
	c.Assert(b.ReleaseRoleIfUnused(ctx, guildID, color), qt.IsNil)
	c.Assert(b.ReleaseRoleIfUnused(ctx, guildID, color), qt.IsNil)
	c.Assert(fake.Calls["DeleteRole"], qt.Equals, deletes)
}

func TestReleaseRoleKeepsUsedRole(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	fake := platformtest.New()
	b := New(fake, nil)
	color := &palette.Color{Name: "Red", Hex: "#ff0000", Members: []string{"u1"}}

	_, err := b.EnsureRole(ctx, guildID, color)
	c.Assert(err, qt.IsNil)
	color.AddMember("u1")

	c.Assert(b.ReleaseRoleIfUnused(ctx, guildID, color), qt.IsNil)
	c.Assert(color.HasRole(), qt.IsTrue)

	// deleted elsewhere: still a success
	fake.ExternalDeleteRole(color.RoleID)
	c.Assert(b.ReleaseRole(ctx, guildID, color), qt.IsNil)
	c.Assert(color.HasRole(), qt.IsFalse)
	c.Assert(color.Members, qt.HasLen, 0)
}
