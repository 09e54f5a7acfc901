// Package platformtest provides an in-memory Platform for tests.
package platformtest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
)

var _ platform.Platform = &Fake{}

// Fake is a single-guild, in-memory Discord. Hooks let tests inject failures or block calls.
type Fake struct {
	mu sync.Mutex

	nextID    int
	roles     map[string]*platform.Role
	members   map[string]*platform.Member
	botRoleID string

	// Calls counts invocations per method name.
	Calls map[string]int

	// Hook, when set, runs before every call; a non-nil error is returned from the call.
	Hook func(method string, args ...string) error
}

func New() *Fake {
	f := &Fake{
		roles:   map[string]*platform.Role{},
		members: map[string]*platform.Member{},
		Calls:   map[string]int{},
	}
	f.botRoleID = f.addRoleLocked("Vibrant", 0, 10).ID
	f.members["bot"] = &platform.Member{ID: "bot", Bot: true, Roles: []string{f.botRoleID}}
	return f
}

// AddMember adds a human member holding the given roles.
func (f *Fake) AddMember(id string, roles ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[id] = &platform.Member{ID: id, Roles: append([]string{}, roles...)}
}

func (f *Fake) RemoveMember(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, id)
}

// ExternalDeleteRole deletes a role behind the engine's back.
func (f *Fake) ExternalDeleteRole(roleID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteRoleLocked(roleID)
}

// MemberRoles returns the roles a member currently holds.
func (f *Fake) MemberRoles(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[id]
	if !ok {
		return nil
	}
	return append([]string{}, m.Roles...)
}

// Role returns a copy of the role, or nil.
func (f *Fake) Role(id string) *platform.Role {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[id]
	if !ok {
		return nil
	}
	cp := *r
	return &cp
}

// RoleCount returns the number of roles, excluding the bot's own role.
func (f *Fake) RoleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.roles) - 1
}

func (f *Fake) call(method string, args ...string) error {
	f.mu.Lock()
	f.Calls[method]++
	hook := f.Hook
	f.mu.Unlock()

	if hook != nil {
		return hook(method, args...)
	}
	return nil
}

func (f *Fake) addRoleLocked(name string, color, position int) *platform.Role {
	f.nextID++
	r := &platform.Role{
		ID:       fmt.Sprintf("role-%d", f.nextID),
		Name:     name,
		Color:    color,
		Position: position,
	}
	f.roles[r.ID] = r
	return r
}

func (f *Fake) deleteRoleLocked(roleID string) {
	delete(f.roles, roleID)
	for _, m := range f.members {
		m.Roles = without(m.Roles, roleID)
	}
}

func (f *Fake) CreateRole(ctx context.Context, guildID, name string, color int) (*platform.Role, error) {
	if err := f.call("CreateRole", name); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r := *f.addRoleLocked(name, color, 1)
	return &r, nil
}

func (f *Fake) EditRole(ctx context.Context, guildID, roleID, name string, color int) error {
	if err := f.call("EditRole", roleID, name); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[roleID]
	if !ok {
		return platform.ErrNotFound
	}
	r.Name = name
	r.Color = color
	return nil
}

func (f *Fake) DeleteRole(ctx context.Context, guildID, roleID string) error {
	if err := f.call("DeleteRole", roleID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.roles[roleID]; !ok {
		return platform.ErrNotFound
	}
	f.deleteRoleLocked(roleID)
	return nil
}

func (f *Fake) Roles(ctx context.Context, guildID string) ([]*platform.Role, error) {
	if err := f.call("Roles"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*platform.Role, 0, len(f.roles))
	for _, r := range f.roles {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) BotTopRolePosition(ctx context.Context, guildID string) (int, error) {
	if err := f.call("BotTopRolePosition"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roles[f.botRoleID].Position, nil
}

func (f *Fake) MoveRole(ctx context.Context, guildID, roleID string, position int) error {
	if err := f.call("MoveRole", roleID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.roles[roleID]
	if !ok {
		return platform.ErrNotFound
	}
	r.Position = position
	return nil
}

func (f *Fake) Members(ctx context.Context, guildID string) ([]*platform.Member, error) {
	if err := f.call("Members"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*platform.Member, 0, len(f.members))
	for _, m := range f.members {
		out = append(out, copyMember(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *Fake) Member(ctx context.Context, guildID, userID string) (*platform.Member, error) {
	if err := f.call("Member", userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return copyMember(m), nil
}

func (f *Fake) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := f.call("AddMemberRole", userID, roleID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok {
		return platform.ErrNotFound
	}
	if _, ok := f.roles[roleID]; !ok {
		return platform.ErrNotFound
	}
	if !m.HasRole(roleID) {
		m.Roles = append(m.Roles, roleID)
	}
	return nil
}

func (f *Fake) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := f.call("RemoveMemberRole", userID, roleID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[userID]
	if !ok {
		return platform.ErrNotFound
	}
	m.Roles = without(m.Roles, roleID)
	return nil
}

func copyMember(m *platform.Member) *platform.Member {
	return &platform.Member{ID: m.ID, Bot: m.Bot, Roles: append([]string{}, m.Roles...)}
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
