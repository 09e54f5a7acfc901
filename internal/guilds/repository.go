package guilds

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheSize = 500
	DefaultCacheTTL  = time.Hour
)

// Repository caches guild documents in front of a Store.
// Get always hands out a private copy; changes only become visible through Save.
type Repository struct {
	store    Store
	cache    *expirable.LRU[string, *Guild]
	defaults Defaults
	log      *slog.Logger
}

type RepositoryOptions struct {
	CacheSize int
	CacheTTL  time.Duration
	Defaults  Defaults
	Logger    *slog.Logger
}

func NewRepository(store Store, opts RepositoryOptions) *Repository {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Repository{
		store:    store,
		cache:    expirable.NewLRU[string, *Guild](opts.CacheSize, nil, opts.CacheTTL),
		defaults: opts.Defaults,
		log:      opts.Logger.With("component", "guilds"),
	}
}

// Get returns the guild document, materializing a default one the first time a guild
// is referenced. A failing read also yields the default document, which is not cached.
// Get is for readers; anything that saves must use Load.
func (r *Repository) Get(ctx context.Context, guildID string) *Guild {
	g, err := r.Load(ctx, guildID)
	if err != nil {
		r.log.Error("Unable to load guild, using defaults", "guildID", guildID, "error", err)
		return r.defaults.New(guildID)
	}
	return g
}

// Load is Get without the fallback: read errors are returned so that a caller never
// writes a default document over one it could not read.
func (r *Repository) Load(ctx context.Context, guildID string) (*Guild, error) {
	if g, ok := r.cache.Get(guildID); ok {
		return g.Clone(), nil
	}

	g, err := r.store.Load(ctx, guildID)
	switch {
	case errors.Is(err, ErrNotFound):
		g = r.defaults.New(guildID)
	case err != nil:
		return nil, err
	default:
		g.ID = guildID
		g.normalize(r.defaults)
	}

	r.cache.Add(guildID, g)
	return g.Clone(), nil
}

// Save writes g through to the store and refreshes the cache.
// On failure the cache entry is dropped so the next Get rereads the store.
func (r *Repository) Save(ctx context.Context, g *Guild) error {
	if err := r.store.Save(ctx, g); err != nil {
		r.cache.Remove(g.ID)
		return err
	}
	r.cache.Add(g.ID, g.Clone())
	return nil
}

// Delete forgets the guild entirely.
func (r *Repository) Delete(ctx context.Context, guildID string) error {
	r.cache.Remove(guildID)
	return r.store.Delete(ctx, guildID)
}

func (r *Repository) Defaults() Defaults {
	return r.defaults
}
