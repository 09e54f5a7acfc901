package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Gumbachi/Vibrant-sub000/internal/prompt"
)

const (
	DefaultLimit = 1000
	DefaultIdle  = time.Hour
)

// Registry hands out one Session per guild. It stays bounded by evicting sessions that
// have been idle the longest; a session holding a lock or a prompt is never evicted.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	limit int
	idle  time.Duration
	now   func() time.Time
}

func NewRegistry(limit int, idle time.Duration) *Registry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Registry{
		sessions: map[string]*Session{},
		limit:    limit,
		idle:     idle,
		now:      time.Now,
	}
}

// Get returns the guild's session, creating it if needed.
func (r *Registry) Get(guildID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(guildID)
}

// Begin is Session.Begin on the guild's session. The session cannot be evicted between
// the lookup and the lock being queued for.
func (r *Registry) Begin(ctx context.Context, guildID string) (release func(), err error) {
	s := r.pin(guildID)
	defer s.unpin()
	return s.Begin(ctx)
}

// BeginHeavy is Session.BeginHeavy on the guild's session, pinned like Begin.
func (r *Registry) BeginHeavy(ctx context.Context, guildID, operation string) (release func(), err error) {
	s := r.pin(guildID)
	defer s.unpin()
	return s.BeginHeavy(ctx, operation)
}

func (r *Registry) pin(guildID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.getLocked(guildID)
	s.mu.Lock()
	s.pins++
	s.mu.Unlock()
	return s
}

func (r *Registry) getLocked(guildID string) *Session {
	now := r.now()
	if s, ok := r.sessions[guildID]; ok {
		s.touch(now)
		return s
	}

	s := newSession(guildID, now)
	r.sessions[guildID] = s
	r.shrinkLocked(guildID)
	return s
}

// Lookup returns the guild's session without creating one.
func (r *Registry) Lookup(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Forget drops the guild's session if it is idle.
func (r *Registry) Forget(guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[guildID]; ok && s.idle() {
		delete(r.sessions, guildID)
	}
}

// Sweep expires prompts whose deadline passed and evicts sessions idle for longer than
// the idle duration.
func (r *Registry) Sweep(now time.Time) (expired []prompt.Prompt, evicted int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for guildID, s := range r.sessions {
		expired = append(expired, s.Prompts.Expire(now)...)
		if s.idle() && now.Sub(s.lastUse()) >= r.idle {
			delete(r.sessions, guildID)
			evicted++
		}
	}
	evicted += r.shrinkLocked("")

	return expired, evicted
}

// shrinkLocked evicts the oldest idle sessions until the registry fits its limit.
func (r *Registry) shrinkLocked(keep string) int {
	if len(r.sessions) <= r.limit {
		return 0
	}

	var candidates []*Session
	for guildID, s := range r.sessions {
		if guildID != keep && s.idle() {
			candidates = append(candidates, s)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].lastUse().Before(candidates[j].lastUse())
	})

	evicted := 0
	for _, s := range candidates {
		if len(r.sessions) <= r.limit {
			break
		}
		delete(r.sessions, s.GuildID)
		evicted++
	}
	return evicted
}
