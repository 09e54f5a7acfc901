// Package engine applies palette operations to a guild: it keeps the stored document,
// the guild's roles and its members' roles consistent with each other.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Gumbachi/Vibrant-sub000/internal/guilds"
	"github.com/Gumbachi/Vibrant-sub000/internal/platform"
	"github.com/Gumbachi/Vibrant-sub000/internal/rolebind"
	"github.com/Gumbachi/Vibrant-sub000/internal/session"
)

const (
	DefaultThrottle          = time.Second
	DefaultRateLimitCooldown = 5 * time.Second
	DefaultMaxAttempts       = 3
)

type Config struct {
	// Throttle is the minimum delay between two member updates in a bulk operation.
	Throttle time.Duration

	// RateLimitCooldown is how long a bulk operation pauses after being rate limited.
	RateLimitCooldown time.Duration

	// MaxAttempts bounds how often one member update is tried when rate limited.
	MaxAttempts int
}

type Engine struct {
	guilds   *guilds.Repository
	platform platform.Platform
	roles    *rolebind.Binder
	sessions *session.Registry
	cfg      Config
	log      *slog.Logger

	sleep func(ctx context.Context, d time.Duration) error
}

func New(repo *guilds.Repository, p platform.Platform, sessions *session.Registry, cfg Config, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Throttle < 0 {
		cfg.Throttle = 0
	}
	if cfg.RateLimitCooldown <= 0 {
		cfg.RateLimitCooldown = DefaultRateLimitCooldown
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	return &Engine{
		guilds:   repo,
		platform: p,
		roles:    rolebind.New(p, log),
		sessions: sessions,
		cfg:      cfg,
		log:      log.With("component", "engine"),
		sleep:    sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Guild returns a copy of the guild's current document. Reads are never blocked by
// running mutations.
func (e *Engine) Guild(ctx context.Context, guildID string) *guilds.Guild {
	return e.guilds.Get(ctx, guildID)
}

// Sessions exposes the registry so callers can reach pending prompts.
func (e *Engine) Sessions() *session.Registry {
	return e.sessions
}

// errUnchanged lets a mutation finish without writing the document.
var errUnchanged = errors.New("unchanged")

type mutation func(g *guilds.Guild) error

// mutate runs fn on a private copy of the guild under the guild's lock and writes the
// result through. The document is written even when fn fails so that roles created
// before the failure stay recorded.
func (e *Engine) mutate(ctx context.Context, guildID string, fn mutation) error {
	release, err := e.sessions.Begin(ctx, guildID)
	if err != nil {
		return err
	}
	defer release()

	return e.apply(ctx, guildID, fn)
}

// mutateHeavy is mutate for bulk operations: every other mutation of the guild fails
// with HeavyCommandActiveError until it returns.
func (e *Engine) mutateHeavy(ctx context.Context, guildID, operation string, fn mutation) error {
	release, err := e.sessions.BeginHeavy(ctx, guildID, operation)
	if err != nil {
		return err
	}
	defer release()

	e.log.Info("Heavy operation started", "guildID", guildID, "operation", operation)
	defer e.log.Info("Heavy operation finished", "guildID", guildID, "operation", operation)

	return e.apply(ctx, guildID, fn)
}

func (e *Engine) apply(ctx context.Context, guildID string, fn mutation) error {
	g, err := e.guilds.Load(ctx, guildID)
	if err != nil {
		e.log.Error("Unable to load guild", "guildID", guildID, "error", err)
		return err
	}

	err = fn(g)
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if isUserError(err) {
		return err
	}

	if saveErr := e.guilds.Save(ctx, g); saveErr != nil {
		e.log.Error("Unable to save guild", "guildID", guildID, "error", saveErr)
		if err == nil {
			return saveErr
		}
	}
	return err
}
