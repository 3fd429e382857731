package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/tavernworks/shopkeep/internal/model"
)

// FileStore keeps the item list in a single db.json file. Every write
// rewrites the whole file through a temp-file rename, so readers never see
// a partially written list and a crash mid-run leaves the previous content
// untouched.
type FileStore struct {
	path string

	mu     sync.Mutex
	items  []model.Item
	loaded bool
}

// dbFile is the on-disk shape of db.json.
type dbFile struct {
	Items []model.Item `json:"items"`
}

// NewFile creates a file store backed by path. The file is read lazily on
// first access.
func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads and decodes the file once. A missing file is an empty list; a
// file that exists but does not decode is a hard error — the caller must
// not proceed on top of an untrustworthy base list.
func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.items = nil
			s.loaded = true
			return nil
		}
		return eris.Wrapf(err, "file store: read %s", s.path)
	}

	var db dbFile
	if err := json.Unmarshal(data, &db); err != nil {
		return eris.Wrapf(err, "file store: malformed content in %s", s.path)
	}

	s.items = db.Items
	s.loaded = true
	return nil
}

// flush writes the current item list atomically.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(dbFile{Items: s.items}, "", "  ")
	if err != nil {
		return eris.Wrap(err, "file store: marshal")
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return eris.Wrapf(err, "file store: create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return eris.Wrap(err, "file store: write temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return eris.Wrap(err, "file store: close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "file store: rename into %s", s.path)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) Create(ctx context.Context, item model.Item) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	for i := range s.items {
		if s.items[i].ID == item.ID {
			return nil, eris.Errorf("file store: item %s already exists", item.ID)
		}
	}

	s.items = append(s.items, item)
	if err := s.flush(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return nil, err
	}
	return &item, nil
}

func (s *FileStore) Update(ctx context.Context, id string, patch model.ItemPatch) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		prev := s.items[i]
		patch.Apply(&s.items[i])
		if err := s.flush(); err != nil {
			s.items[i] = prev
			return nil, err
		}
		item := s.items[i]
		return &item, nil
	}
	return nil, ErrNotFound
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		prev := make([]model.Item, len(s.items))
		copy(prev, s.items)
		s.items = append(s.items[:i], s.items[i+1:]...)
		if err := s.flush(); err != nil {
			s.items = prev
			return err
		}
		return nil
	}
	return ErrNotFound
}

func (s *FileStore) ReplaceAll(ctx context.Context, items []model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevLoaded := s.items, s.loaded
	s.items = make([]model.Item, len(items))
	copy(s.items, items)
	s.loaded = true

	if err := s.flush(); err != nil {
		s.items, s.loaded = prev, prevLoaded
		return err
	}
	return nil
}

func (s *FileStore) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	return distinctCategories(s.items), nil
}

// Migrate is a no-op for the file driver.
func (s *FileStore) Migrate(ctx context.Context) error {
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
