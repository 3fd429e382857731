package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavernworks/shopkeep/internal/model"
)

func newFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	return NewFile(path), path
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s, _ := newFileStore(t)
	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStore_MalformedContentIsHardError(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{ definitely not json"), 0o644))

	_, err := s.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestFileStore_CreateAssignsID(t *testing.T) {
	s, _ := newFileStore(t)

	created, err := s.Create(context.Background(), model.Item{Name: "Torch", Category: "Gear"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torch", got.Name)
}

func TestFileStore_CreateKeepsGivenID(t *testing.T) {
	s, _ := newFileStore(t)

	created, err := s.Create(context.Background(), model.Item{ID: "7", Name: "Torch"})
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID)

	_, err = s.Create(context.Background(), model.Item{ID: "7", Name: "Other"})
	assert.Error(t, err)
}

func TestFileStore_GetNotFound(t *testing.T) {
	s, _ := newFileStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_UpdateAppliesPatch(t *testing.T) {
	s, _ := newFileStore(t)
	_, err := s.Create(context.Background(), model.Item{ID: "1", Name: "Torch", Category: "Gear"})
	require.NoError(t, err)

	name := "Candle"
	updated, err := s.Update(context.Background(), "1", model.ItemPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Candle", updated.Name)
	assert.Equal(t, "Gear", updated.Category, "unpatched fields stay put")

	_, err = s.Update(context.Background(), "missing", model.ItemPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStore_Delete(t *testing.T) {
	s, _ := newFileStore(t)
	_, err := s.Create(context.Background(), model.Item{ID: "1", Name: "Torch"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), "1"))
	_, err = s.Get(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(context.Background(), "1"), ErrNotFound)
}

func TestFileStore_ReplaceAllPersists(t *testing.T) {
	s, path := newFileStore(t)

	items := []model.Item{
		{ID: "1", Name: "Torch", Category: "Gear"},
		{ID: "2", Name: "Longsword", Category: "Weapons"},
	}
	require.NoError(t, s.ReplaceAll(context.Background(), items))

	// A fresh store instance must see the committed list.
	reopened := NewFile(path)
	got, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Torch", got[0].Name)

	// And the on-disk shape is the db.json envelope.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var db struct {
		Items []model.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &db))
	assert.Len(t, db.Items, 2)
}

func TestFileStore_Categories(t *testing.T) {
	s, _ := newFileStore(t)
	require.NoError(t, s.ReplaceAll(context.Background(), []model.Item{
		{ID: "1", Name: "Torch", Category: "Gear"},
		{ID: "2", Name: "Longsword", Category: "Weapons"},
		{ID: "3", Name: "Candle", Category: "Gear"},
	}))

	categories, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Gear", "Weapons"}, categories)
}

func TestFileStore_StatsRoundTrip(t *testing.T) {
	s, path := newFileStore(t)

	cost := "15 gp"
	require.NoError(t, s.ReplaceAll(context.Background(), []model.Item{
		{ID: "1", Name: "Rations", Category: "Gear", Stats: &model.ItemStats{
			Cost:       &cost,
			Properties: []string{},
		}},
		{ID: "2", Name: "Mystery", Category: "Misc", Stats: nil},
	}))

	got, err := NewFile(path).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Stats)
	assert.Equal(t, "15 gp", *got[0].Stats.Cost)
	assert.Nil(t, got[1].Stats)
}
