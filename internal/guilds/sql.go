package guilds

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var _ Store = &SQLStore{}

// SQLStore keeps one JSON document per guild in the guild_documents table.
// Postgres stores it as jsonb and gets its schema from migrations; sqlite stores it as
// TEXT and creates its schema on open.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) (*SQLStore, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		if err := ensureSQLiteSchema(db); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	return &SQLStore{
		db:     db,
		driver: driver,
	}, nil
}

func ensureSQLiteSchema(db *sql.DB) error {
	const query = `
CREATE TABLE IF NOT EXISTS guild_documents (
	guild_id TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if _, err := db.Exec(`PRAGMA busy_timeout=5000;`); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create guild_documents: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context, guildID string) (*Guild, error) {
	query := "SELECT document FROM guild_documents WHERE guild_id=$1"
	if s.driver == DriverSQLite {
		query = "SELECT document FROM guild_documents WHERE guild_id=?"
	}

	var doc []byte
	err := s.db.QueryRowContext(ctx, query, guildID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading guild %s: %w", guildID, err)
	}

	g, err := decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding guild %s: %w", guildID, err)
	}
	return g, nil
}

func (s *SQLStore) Save(ctx context.Context, g *Guild) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding guild %s: %w", g.ID, err)
	}

	query := "INSERT INTO guild_documents (guild_id, document, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (guild_id) DO UPDATE SET document=$2, updated_at=NOW()"
	args := []any{g.ID, string(doc)}
	if s.driver == DriverSQLite {
		query = "INSERT INTO guild_documents (guild_id, document, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT(guild_id) DO UPDATE SET document=excluded.document, updated_at=excluded.updated_at"
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving guild %s: %w", g.ID, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, guildID string) error {
	query := "DELETE FROM guild_documents WHERE guild_id=$1"
	if s.driver == DriverSQLite {
		query = "DELETE FROM guild_documents WHERE guild_id=?"
	}

	if _, err := s.db.ExecContext(ctx, query, guildID); err != nil {
		return fmt.Errorf("deleting guild %s: %w", guildID, err)
	}
	return nil
}
