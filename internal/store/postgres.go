package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/tavernworks/shopkeep/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// for unit tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS items (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	category            TEXT NOT NULL DEFAULT '',
	image               TEXT NOT NULL DEFAULT '',
	magic_category      TEXT,
	rarity              TEXT,
	requires_attunement BOOLEAN,
	stats               JSONB,
	position            INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const postgresSelectItem = `SELECT id, name, category, image, magic_category, rarity, requires_attunement, stats FROM items`

func scanPostgresItem(row pgx.Row) (*model.Item, error) {
	var (
		item  model.Item
		stats []byte
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Image,
		&item.MagicCategory, &item.Rarity, &item.RequiresAttunement, &stats); err != nil {
		return nil, err
	}
	if stats != nil {
		var decoded model.ItemStats
		if err := json.Unmarshal(stats, &decoded); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal stats")
		}
		if decoded.Properties == nil {
			decoded.Properties = []string{}
		}
		item.Stats = &decoded
	}
	return &item, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.pool.Query(ctx, postgresSelectItem+` ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list items")
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanPostgresItem(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan item")
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate items")
	}
	return items, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Item, error) {
	row := s.pool.QueryRow(ctx, postgresSelectItem+` WHERE id = $1`, id)
	item, err := scanPostgresItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get item %s", id)
	}
	return item, nil
}

func (s *PostgresStore) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	stats, err := encodeStats(item.Stats)
	if err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO items (id, name, category, image, magic_category, rarity, requires_attunement, stats, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, (SELECT COALESCE(MAX(position), 0) + 1 FROM items))`,
		item.ID, item.Name, item.Category, item.Image,
		item.MagicCategory, item.Rarity, item.RequiresAttunement, stats,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert item %s", item.ID)
	}
	return &item, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(item)

	stats, err := encodeStats(item.Stats)
	if err != nil {
		return nil, err
	}
	_, err = s.pool.Exec(ctx,
		`UPDATE items SET name = $1, category = $2, image = $3, magic_category = $4, rarity = $5, requires_attunement = $6, stats = $7 WHERE id = $8`,
		item.Name, item.Category, item.Image,
		item.MagicCategory, item.Rarity, item.RequiresAttunement, stats, id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: update item %s", id)
	}
	return item, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete item %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the full item list in one transaction.
func (s *PostgresStore) ReplaceAll(ctx context.Context, items []model.Item) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin replace")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM items`); err != nil {
		return eris.Wrap(err, "postgres: clear items")
	}
	for i, item := range items {
		stats, err := encodeStats(item.Stats)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO items (id, name, category, image, magic_category, rarity, requires_attunement, stats, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			item.ID, item.Name, item.Category, item.Image,
			item.MagicCategory, item.Rarity, item.RequiresAttunement, stats, i,
		)
		if err != nil {
			return eris.Wrapf(err, "postgres: insert item %s", item.ID)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit replace")
}

func (s *PostgresStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT category FROM items ORDER BY category`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list categories")
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "postgres: scan category")
		}
		categories = append(categories, c)
	}
	return categories, eris.Wrap(rows.Err(), "postgres: iterate categories")
}
