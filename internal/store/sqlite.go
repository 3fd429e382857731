package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/tavernworks/shopkeep/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Item stats are
// stored as a JSON text column; a SQL NULL means unenriched.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS items (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	category            TEXT NOT NULL DEFAULT '',
	image               TEXT NOT NULL DEFAULT '',
	magic_category      TEXT,
	rarity              TEXT,
	requires_attunement INTEGER,
	stats               TEXT,
	position            INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// encodeStats marshals stats for storage; nil stays NULL.
func encodeStats(stats *model.ItemStats) (any, error) {
	if stats == nil {
		return nil, nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal stats")
	}
	return string(data), nil
}

// decodeStats unmarshals a stats column; NULL stays nil.
func decodeStats(raw sql.NullString) (*model.ItemStats, error) {
	if !raw.Valid {
		return nil, nil
	}
	var stats model.ItemStats
	if err := json.Unmarshal([]byte(raw.String), &stats); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal stats")
	}
	if stats.Properties == nil {
		stats.Properties = []string{}
	}
	return &stats, nil
}

func scanSQLiteItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	var (
		item     model.Item
		magicCat sql.NullString
		rarity   sql.NullString
		attune   sql.NullBool
		stats    sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Image, &magicCat, &rarity, &attune, &stats); err != nil {
		return nil, err
	}
	if magicCat.Valid {
		item.MagicCategory = &magicCat.String
	}
	if rarity.Valid {
		item.Rarity = &rarity.String
	}
	if attune.Valid {
		item.RequiresAttunement = &attune.Bool
	}
	decoded, err := decodeStats(stats)
	if err != nil {
		return nil, err
	}
	item.Stats = decoded
	return &item, nil
}

const sqliteSelectItem = `SELECT id, name, category, image, magic_category, rarity, requires_attunement, stats FROM items`

func (s *SQLiteStore) List(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectItem+` ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list items")
	}
	defer rows.Close() //nolint:errcheck

	var items []model.Item
	for rows.Next() {
		item, err := scanSQLiteItem(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan item")
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate items")
	}
	return items, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Item, error) {
	row := s.db.QueryRowContext(ctx, sqliteSelectItem+` WHERE id = ?`, id)
	item, err := scanSQLiteItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get item %s", id)
	}
	return item, nil
}

func (s *SQLiteStore) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	stats, err := encodeStats(item.Stats)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO items (id, name, category, image, magic_category, rarity, requires_attunement, stats, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM items))`,
		item.ID, item.Name, item.Category, item.Image,
		item.MagicCategory, item.Rarity, item.RequiresAttunement, stats,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert item %s", item.ID)
	}
	return &item, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(item)

	stats, err := encodeStats(item.Stats)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, category = ?, image = ?, magic_category = ?, rarity = ?, requires_attunement = ?, stats = ? WHERE id = ?`,
		item.Name, item.Category, item.Image,
		item.MagicCategory, item.Rarity, item.RequiresAttunement, stats, id,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: update item %s", id)
	}
	return item, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete item %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the full item list in one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, items []model.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin replace")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return eris.Wrap(err, "sqlite: clear items")
	}
	for i, item := range items {
		stats, err := encodeStats(item.Stats)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (id, name, category, image, magic_category, rarity, requires_attunement, stats, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.Name, item.Category, item.Image,
			item.MagicCategory, item.Rarity, item.RequiresAttunement, stats, i,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert item %s", item.ID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit replace")
}

func (s *SQLiteStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM items ORDER BY category`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list categories")
	}
	defer rows.Close() //nolint:errcheck

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan category")
		}
		categories = append(categories, c)
	}
	return categories, eris.Wrap(rows.Err(), "sqlite: iterate categories")
}
