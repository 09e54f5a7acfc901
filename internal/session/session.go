// Package session tracks per-guild runtime state: the mutation lock, the heavy
// operation guard and pending prompts.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gumbachi/Vibrant-sub000/internal/prompt"
)

// HeavyCommandActiveError is returned when a guild is busy with a bulk operation.
type HeavyCommandActiveError struct {
	Operation string
}

func (e *HeavyCommandActiveError) Error() string {
	return fmt.Sprintf("%s is currently running, try again once it has finished", e.Operation)
}

// Session is the runtime state of one guild.
type Session struct {
	GuildID string
	Prompts *prompt.Book

	lock chan struct{}

	mu       sync.Mutex
	heavy    string
	busy     int
	pins     int
	lastUsed time.Time
}

func newSession(guildID string, now time.Time) *Session {
	return &Session{
		GuildID:  guildID,
		Prompts:  prompt.NewBook(),
		lock:     make(chan struct{}, 1),
		lastUsed: now,
	}
}

// Heavy returns the name of the running heavy operation, or "".
func (s *Session) Heavy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heavy
}

// Begin takes the guild's mutation lock. It fails fast while a heavy operation runs,
// and otherwise waits behind other mutations.
func (s *Session) Begin(ctx context.Context) (release func(), err error) {
	s.mu.Lock()
	if s.heavy != "" {
		op := s.heavy
		s.mu.Unlock()
		return nil, &HeavyCommandActiveError{Operation: op}
	}
	s.busy++
	s.mu.Unlock()

	if err := s.acquire(ctx); err != nil {
		s.done()
		return nil, err
	}

	// a heavy operation may have started while we were queued
	s.mu.Lock()
	op := s.heavy
	s.mu.Unlock()
	if op != "" {
		<-s.lock
		s.done()
		return nil, &HeavyCommandActiveError{Operation: op}
	}

	return s.releaser(""), nil
}

// BeginHeavy marks operation as running and takes the mutation lock.
// Other mutations fail with HeavyCommandActiveError until release is called.
func (s *Session) BeginHeavy(ctx context.Context, operation string) (release func(), err error) {
	s.mu.Lock()
	if s.heavy != "" {
		op := s.heavy
		s.mu.Unlock()
		return nil, &HeavyCommandActiveError{Operation: op}
	}
	s.heavy = operation
	s.busy++
	s.mu.Unlock()

	if err := s.acquire(ctx); err != nil {
		s.mu.Lock()
		s.heavy = ""
		s.mu.Unlock()
		s.done()
		return nil, err
	}

	return s.releaser(operation), nil
}

func (s *Session) acquire(ctx context.Context) error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) releaser(heavy string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			if heavy != "" {
				s.mu.Lock()
				s.heavy = ""
				s.mu.Unlock()
			}
			<-s.lock
			s.done()
		})
	}
}

func (s *Session) done() {
	s.mu.Lock()
	s.busy--
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Session) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy == 0 && s.pins == 0 && s.heavy == "" && s.Prompts.Len() == 0
}

func (s *Session) unpin() {
	s.mu.Lock()
	s.pins--
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) lastUse() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
