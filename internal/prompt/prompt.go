// Package prompt implements the two-step confirmation dialog used when a user asks for
// a color that does not exist yet: confirm with a reaction, then supply a hex code.
package prompt

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoPrompt   = errors.New("no pending prompt")
	ErrWrongState = errors.New("prompt is not waiting for that")
)

type State int

const (
	AwaitingConfirmation State = iota
	AwaitingValue
	Resolved
	Cancelled
	Expired
)

func (s State) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting confirmation"
	case AwaitingValue:
		return "awaiting value"
	case Resolved:
		return "resolved"
	case Cancelled:
		return "cancelled"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Key identifies a prompt by the user it was opened for and the message that opened it.
type Key struct {
	UserID    string
	MessageID string
}

type Prompt struct {
	ID        string
	Key       Key
	GuildID   string
	ChannelID string

	// MessageID is the bot message carrying the reactions.
	MessageID string

	// Subject is the color name the user asked for.
	Subject  string
	State    State
	Deadline time.Time
}

// Book holds the open prompts of one guild. Prompts leave the book once they reach a
// final state; the caller gets the final copy back.
type Book struct {
	mu      sync.Mutex
	prompts map[Key]*Prompt
}

func NewBook() *Book {
	return &Book{
		prompts: map[Key]*Prompt{},
	}
}

func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.prompts)
}

// Open starts a prompt in AwaitingConfirmation. Any other open prompt of the same user is
// cancelled and returned as replaced.
func (b *Book) Open(key Key, guildID, channelID, subject string, deadline time.Time) (opened Prompt, replaced []Prompt) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, p := range b.prompts {
		if k.UserID == key.UserID {
			p.State = Cancelled
			replaced = append(replaced, *p)
			delete(b.prompts, k)
		}
	}

	p := &Prompt{
		ID:        uuid.NewString(),
		Key:       key,
		GuildID:   guildID,
		ChannelID: channelID,
		Subject:   subject,
		State:     AwaitingConfirmation,
		Deadline:  deadline,
	}
	b.prompts[key] = p

	return *p, replaced
}

// Attach records the bot message the user is expected to react to.
func (b *Book) Attach(key Key, messageID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.prompts[key]
	if !ok {
		return ErrNoPrompt
	}
	p.MessageID = messageID
	return nil
}

func (b *Book) byReaction(userID, messageID string) *Prompt {
	for _, p := range b.prompts {
		if p.Key.UserID == userID && p.MessageID == messageID {
			return p
		}
	}
	return nil
}

// Confirm moves the user's prompt on messageID to AwaitingValue with a new deadline.
func (b *Book) Confirm(userID, messageID string, deadline time.Time) (Prompt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.byReaction(userID, messageID)
	if p == nil {
		return Prompt{}, ErrNoPrompt
	}
	if p.State != AwaitingConfirmation {
		return *p, ErrWrongState
	}
	p.State = AwaitingValue
	p.Deadline = deadline
	return *p, nil
}

// Cancel ends the user's prompt on messageID.
func (b *Book) Cancel(userID, messageID string) (Prompt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p := b.byReaction(userID, messageID)
	if p == nil {
		return Prompt{}, ErrNoPrompt
	}
	p.State = Cancelled
	delete(b.prompts, p.Key)
	return *p, nil
}

// Supply resolves the prompt that waits for a value from userID in channelID.
func (b *Book) Supply(userID, channelID string) (Prompt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, p := range b.prompts {
		if k.UserID != userID || p.ChannelID != channelID {
			continue
		}
		if p.State != AwaitingValue {
			return *p, ErrWrongState
		}
		p.State = Resolved
		delete(b.prompts, k)
		return *p, nil
	}
	return Prompt{}, ErrNoPrompt
}

// Waiting reports whether userID owes a value in channelID.
func (b *Book) Waiting(userID, channelID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, p := range b.prompts {
		if k.UserID == userID && p.ChannelID == channelID && p.State == AwaitingValue {
			return true
		}
	}
	return false
}

// Expire removes every prompt whose deadline is not after now.
func (b *Book) Expire(now time.Time) []Prompt {
	b.mu.Lock()
	defer b.mu.Unlock()

	var expired []Prompt
	for k, p := range b.prompts {
		if p.Deadline.After(now) {
			continue
		}
		p.State = Expired
		expired = append(expired, *p)
		delete(b.prompts, k)
	}
	return expired
}
