// ABOUTME: Persistent UI settings backed by a badger key-value directory.
// ABOUTME: Stores geometry, window state, last page, and slider drafts per org/app.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/minds/internal/models"
	"go.uber.org/zap"
)

// Keys under the org/app namespace.
const (
	KeyGeometry      = "geometry"
	KeyWindowState   = "windowState"
	KeyLastPageIndex = "lastPageIndex"
	keySliders       = "sliders/"
)

// Geometry is the saved terminal size. A terminal reports no window
// position, so only the size is kept.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowState is the saved arrangement inside the main window.
type WindowState struct {
	Focus     map[string]int `json:"focus,omitempty"`
	DataTable int            `json:"data_table"`
}

// Store reads and writes settings for one organization and application.
type Store struct {
	db     *badger.DB
	prefix string
	log    *zap.SugaredLogger
}

// Open opens or creates the settings directory.
func Open(dir, organization, application string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create settings directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	return open(opts, organization, application, log)
}

// OpenInMemory opens a store that is discarded on Close.
func OpenInMemory(organization, application string) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open(opts, organization, application, nil)
}

func open(opts badger.Options, organization, application string, log *zap.SugaredLogger) (*Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	db, err := badger.Open(opts)
	if err != nil {
		log.Errorw("open settings failed", "dir", opts.Dir, "error", err)
		return nil, fmt.Errorf("open settings: %w", err)
	}
	return &Store{
		db:     db,
		prefix: organization + "/" + application + "/",
		log:    log,
	}, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) key(name string) []byte {
	return []byte(s.prefix + name)
}

// Value decodes the value stored under name into out. It reports false when
// the key has never been written.
func (s *Store) Value(name string, out any) (bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(name))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		s.log.Errorw("read setting failed", "key", name, "error", err)
		return false, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// SetValue encodes v and stores it under name.
func (s *Store) SetValue(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(name), raw)
	})
	if err != nil {
		s.log.Errorw("write setting failed", "key", name, "error", err)
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Remove deletes name. Removing a missing key is not an error.
func (s *Store) Remove(name string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(name))
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Keys lists the stored setting names without the org/app prefix.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	prefix := []byte(s.prefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, strings.TrimPrefix(string(it.Item().KeyCopy(nil)), s.prefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return keys, nil
}

// Geometry returns the saved window geometry.
func (s *Store) Geometry() (Geometry, bool, error) {
	var g Geometry
	ok, err := s.Value(KeyGeometry, &g)
	return g, ok, err
}

// SaveGeometry stores the window geometry.
func (s *Store) SaveGeometry(g Geometry) error {
	return s.SetValue(KeyGeometry, g)
}

// WindowState returns the saved window state.
func (s *Store) WindowState() (WindowState, bool, error) {
	var ws WindowState
	ok, err := s.Value(KeyWindowState, &ws)
	return ws, ok, err
}

// SaveWindowState stores the window state.
func (s *Store) SaveWindowState(ws WindowState) error {
	return s.SetValue(KeyWindowState, ws)
}

// LastPageIndex returns the saved page index, or 0 when none was saved.
func (s *Store) LastPageIndex() (int, error) {
	var i int
	_, err := s.Value(KeyLastPageIndex, &i)
	return i, err
}

// SetLastPageIndex stores the index of the page being shown.
func (s *Store) SetLastPageIndex(i int) error {
	return s.SetValue(KeyLastPageIndex, i)
}

// SaveSliders stores a slider draft for a category.
func (s *Store) SaveSliders(c models.Category, values map[string]int) error {
	return s.SetValue(keySliders+string(c), values)
}

// RestoreSliders returns the slider draft of a category, or nil.
func (s *Store) RestoreSliders(c models.Category) (map[string]int, error) {
	var values map[string]int
	if _, err := s.Value(keySliders+string(c), &values); err != nil {
		return nil, err
	}
	return values, nil
}
