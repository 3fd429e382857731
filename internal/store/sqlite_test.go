package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernworks/shopkeep/internal/model"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "shopkeep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_CRUD(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, model.Item{Name: "Torch", Category: "Gear", Image: "/cards/torch.png"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torch", got.Name)
	assert.Equal(t, "/cards/torch.png", got.Image)
	assert.Nil(t, got.Stats)

	category := "Lighting"
	updated, err := s.Update(ctx, created.ID, model.ItemPatch{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "Lighting", updated.Category)
	assert.Equal(t, "Torch", updated.Name)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
}

func TestSQLiteStore_ListPreservesOrder(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []model.Item{
		{ID: "b", Name: "Longsword", Category: "Weapons"},
		{ID: "a", Name: "Torch", Category: "Gear"},
		{ID: "c", Name: "Candle", Category: "Gear"},
	}))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestSQLiteStore_ReplaceAllSwapsList(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []model.Item{{ID: "1", Name: "Old"}}))
	require.NoError(t, s.ReplaceAll(ctx, []model.Item{{ID: "2", Name: "New"}}))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestSQLiteStore_StatsRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	cost := "400 gp"
	detail := "Medium Armor"
	stealth := false
	require.NoError(t, s.ReplaceAll(ctx, []model.Item{
		{ID: "1", Name: "Breastplate", Category: "Armor", Stats: &model.ItemStats{
			Cost:                &cost,
			CategoryDetail:      &detail,
			StealthDisadvantage: &stealth,
			Properties:          []string{},
		}},
	}))

	got, err := s.Get(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got.Stats)
	assert.Equal(t, "400 gp", *got.Stats.Cost)
	assert.Equal(t, "Medium Armor", *got.Stats.CategoryDetail)
	assert.Equal(t, false, *got.Stats.StealthDisadvantage)
	assert.NotNil(t, got.Stats.Properties)
}

func TestSQLiteStore_Categories(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceAll(ctx, []model.Item{
		{ID: "1", Name: "Torch", Category: "Gear"},
		{ID: "2", Name: "Longsword", Category: "Weapons"},
		{ID: "3", Name: "Candle", Category: "Gear"},
	}))

	categories, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gear", "Weapons"}, categories)
}
