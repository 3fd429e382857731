// Package store persists the local item list. Three drivers implement the
// same interface: a db.json file store (the canonical interchange format),
// sqlite for single-host deployments and postgres for shared ones.
package store

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/tavernworks/shopkeep/internal/config"
	"github.com/tavernworks/shopkeep/internal/model"
)

// ErrNotFound is returned when an item id does not exist.
var ErrNotFound = eris.New("store: item not found")

// Store is the durable item repository. The enrichment pipeline uses List
// and ReplaceAll only; the CRUD API uses the per-item operations.
type Store interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id string) (*model.Item, error)
	Create(ctx context.Context, item model.Item) (*model.Item, error)
	Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error)
	Delete(ctx context.Context, id string) error

	// ReplaceAll atomically replaces the entire item list. This is the
	// pipeline's single commit point; nothing is written before it.
	ReplaceAll(ctx context.Context, items []model.Item) error

	// Categories returns the distinct item categories, sorted.
	Categories(ctx context.Context) ([]string, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFile(cfg.Path), nil
	case "sqlite":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// distinctCategories derives the sorted distinct category list from items.
func distinctCategories(items []model.Item) []string {
	seen := make(map[string]struct{}, len(items))
	var categories []string
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories
}
